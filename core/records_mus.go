package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS is the MUS serializer for ID. IDs are varint-encoded.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// RecordMUS is the MUS serializer for Record.
var RecordMUS = recordMUS{}

type recordMUS struct{}

func (recordMUS) Marshal(r Record, bs []byte) (n int) {
	n = ord.String.Marshal(r.Source, bs)
	n += ord.String.Marshal(r.Title, bs[n:])
	n += ord.String.Marshal(r.URL, bs[n:])
	n += ord.String.Marshal(r.Description, bs[n:])
	return n
}

func (recordMUS) Unmarshal(bs []byte) (r Record, n int, err error) {
	var n1 int
	r.Source, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (recordMUS) Size(r Record) int {
	return ord.String.Size(r.Source) +
		ord.String.Size(r.Title) +
		ord.String.Size(r.URL) +
		ord.String.Size(r.Description)
}

func (recordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 4; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

// VectorMUS is the MUS serializer for embedding vectors.
var VectorMUS = ord.NewSliceSer[float32](raw.Float32)
