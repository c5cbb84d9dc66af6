package consolidate

import "github.com/poiesic/prospect/core"

// SourceBatch is one source's ordered contribution of normalized, filtered
// records.
type SourceBatch struct {
	Label   string
	Records []*core.Record
}

// Consolidate merges per-source batches into one deduplicated corpus.
//
// Batches are processed in the given order, records within a batch in the
// order produced. The first record seen for a URL wins; later duplicates,
// even from a different source, are dropped silently. URL equality is exact
// string equality after normalization; two different URLs serving the same
// listing are treated as distinct (documented limitation).
//
// On return the corpus invariant holds: no two records share a URL. The
// corpus is treated as immutable afterward.
func Consolidate(batches []SourceBatch) *core.Corpus {
	corpus := core.NewCorpus()
	for _, batch := range batches {
		for _, record := range batch.Records {
			corpus.Add(record)
		}
	}
	return corpus
}
