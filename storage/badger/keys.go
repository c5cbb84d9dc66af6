package badger

import "encoding/binary"

// Key prefixes for snapshot data
const (
	snapshotRecordPrefix = "snaprec"
	snapshotVectorPrefix = "snapvec"
	snapshotMetaCount    = "snapmeta:count"
	snapshotMetaDim      = "snapmeta:dim"
)

// makeRecordKey generates a key for the record at a corpus position.
// Positions are BigEndian so iteration yields corpus order.
func makeRecordKey(position int) []byte {
	return makePositionKey(snapshotRecordPrefix, position)
}

// makeVectorKey generates a key for the vector at a corpus position.
func makeVectorKey(position int) []byte {
	return makePositionKey(snapshotVectorPrefix, position)
}

func makePositionKey(prefix string, position int) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(position))
	return buf
}
