package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is derived from content, so identical URLs produce identical IDs.
type ID uint64

// IDFromURL generates a deterministic ID from a canonical URL using BLAKE2b hashing.
// The URL is the natural identity key of a listing, so the ID is stable across runs.
func IDFromURL(rawURL string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(rawURL))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RawRecord is the shape a source adapter produces for one listing,
// after per-source field extraction but before normalization.
// URL may be relative to the source's base URL. Description is optional.
type RawRecord struct {
	Title       string
	URL         string
	Description string
}

// Record is the canonical, validated representation of one opportunity listing.
// Once a Record has been added to a Corpus it is treated as read-only.
type Record struct {
	Source      string // originating institution label
	Title       string // trimmed, at least MinTitleLength characters
	URL         string // absolute, unique within a Corpus
	Description string // optional, defaults to empty
}

// ID returns the content-derived identifier of the record.
func (r *Record) ID() ID {
	return IDFromURL(r.URL)
}

// IndexText returns the text the record is embedded over.
func (r *Record) IndexText() string {
	return r.Title + " " + r.Description
}

// SearchResult represents a query hit with the record and its similarity score.
// Position is the record's corpus insertion position; it makes tie-breaks
// between equal scores deterministic (earlier-inserted wins).
type SearchResult struct {
	Record   *Record
	Score    float32
	Position int
}
