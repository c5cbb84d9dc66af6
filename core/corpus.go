package core

// Corpus is the deduplicated, ordered collection of retained records from all
// sources. Insertion order is first-seen order across sources. A Corpus is
// mutated only during a single consolidation pass and is treated as read-only
// afterward.
type Corpus struct {
	records []*Record
	seen    map[string]struct{}
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{
		seen: make(map[string]struct{}),
	}
}

// Add appends a record if its URL has not been seen yet.
// Returns false if the record is a duplicate (first-seen wins).
func (c *Corpus) Add(r *Record) bool {
	if _, ok := c.seen[r.URL]; ok {
		return false
	}
	c.seen[r.URL] = struct{}{}
	c.records = append(c.records, r)
	return true
}

// Contains reports whether a record with the given URL is already present.
func (c *Corpus) Contains(url string) bool {
	_, ok := c.seen[url]
	return ok
}

// Len returns the number of records in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// At returns the record at insertion position i.
func (c *Corpus) At(i int) *Record {
	return c.records[i]
}

// Records returns the records in insertion order.
// The returned slice must be treated as read-only.
func (c *Corpus) Records() []*Record {
	return c.records
}

// IndexedCorpus is a Corpus paired with one embedding vector per record,
// position-aligned: Vectors[i] belongs to Corpus.At(i). A nil vector marks a
// record that was dropped from the index during a degraded build. Dim is the
// embedding dimension, 0 when no record was embedded.
//
// An IndexedCorpus is built once from a finalized Corpus; if the corpus is
// regenerated, the index must be rebuilt.
type IndexedCorpus struct {
	Corpus  *Corpus
	Vectors [][]float32
	Dim     int
}

// Len returns the number of records in the underlying corpus.
func (ic *IndexedCorpus) Len() int {
	if ic == nil {
		return 0
	}
	return ic.Corpus.Len()
}
