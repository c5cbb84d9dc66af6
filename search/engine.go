package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/prospect/ai"
	"github.com/poiesic/prospect/core"
)

// Engine answers semantic queries over an indexed corpus.
// An engine holds no index of its own; the caller passes the indexed corpus
// to each query, so one engine can serve any number of indexes.
type Engine struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new query engine.
// The embedder must be the same one the index was built with, otherwise
// query embeddings and record embeddings live in different spaces.
func NewEngine(embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Query returns up to maxHits records most similar to the query text,
// ranked by cosine similarity descending.
func (e *Engine) Query(ctx context.Context, idx *core.IndexedCorpus, query string, maxHits int) ([]*core.SearchResult, error) {
	return e.QueryWithMonitor(ctx, idx, query, maxHits, nil)
}

// QueryWithMonitor runs Query with monitoring callbacks at each stage.
//
// Scoring is exhaustive over every indexed record. Records dropped during the
// index build (nil vectors) are skipped. Ties in score are broken by corpus
// position ascending, so a query against a fixed index always returns the
// same ordering.
func (e *Engine) QueryWithMonitor(ctx context.Context, idx *core.IndexedCorpus, query string, maxHits int, monitor QueryMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if idx == nil || idx.Corpus == nil {
		return nil, ErrIndexRequired
	}
	if maxHits < 1 {
		return nil, ErrInvalidLimit
	}

	monitor.Start(query)

	if idx.Len() == 0 {
		monitor.Finish([]*core.SearchResult{})
		return []*core.SearchResult{}, nil
	}

	embedding, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(embedding))

	if len(embedding) != idx.Dim {
		return nil, fmt.Errorf("%w: query dim %d, index dim %d",
			ErrDimensionMismatch, len(embedding), idx.Dim)
	}

	results := make([]*core.SearchResult, 0, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		vector := idx.Vectors[i]
		if vector == nil {
			continue
		}

		results = append(results, &core.SearchResult{
			Record:   idx.Corpus.At(i),
			Score:    CosineSimilarity(embedding, vector),
			Position: i,
		})
	}
	monitor.AfterScoring(len(results))

	// Stable sort keeps equal scores in corpus order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}
