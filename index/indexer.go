package index

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/prospect/ai"
	"github.com/poiesic/prospect/core"
)

const (
	defaultBatchSize     = 32
	defaultMaxInputChars = 8000
	defaultMaxRetries    = 3
	defaultRetryDelay    = 1 * time.Second
	defaultBatchTimeout  = 2 * time.Minute
)

// Indexer builds an IndexedCorpus from a finalized corpus by embedding every
// record's text. Embedding is independent per record, so batches run in
// parallel on a worker pool; results are collected back into corpus order.
type Indexer struct {
	embedder      ai.Embedder
	pool          *ants.Pool
	batchSize     int
	maxInputChars int
	maxRetries    int
	retryDelay    time.Duration
	batchTimeout  time.Duration
	progress      *ProgressTracker
	logger        *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}

		if ix.pool != nil {
			ix.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records are embedded per batch call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		ix.batchSize = size
		return nil
	}
}

// WithMaxInputChars sets the embedding model's maximum supported input length
// in characters. Longer texts are truncated before embedding instead of
// failing the build. Default is 8000.
func WithMaxInputChars(max int) Option {
	return func(ix *Indexer) error {
		if max > 0 {
			ix.maxInputChars = max
		}
		return nil
	}
}

// WithRetry sets retry behavior for transient embedder failures.
// Defaults are 3 attempts with a 1s base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(ix *Indexer) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		ix.maxRetries = maxAttempts
		ix.retryDelay = baseDelay
		return nil
	}
}

// WithBatchTimeout caps how long one batch may spend embedding, retries
// included. On expiry the batch's records are dropped from the index instead
// of blocking the whole build. Zero disables the cap. Default is 2 minutes.
func WithBatchTimeout(timeout time.Duration) Option {
	return func(ix *Indexer) error {
		ix.batchTimeout = timeout
		return nil
	}
}

// WithProgress attaches a progress tracker that is started, incremented per
// record, and finished during BuildIndex.
func WithProgress(progress *ProgressTracker) Option {
	return func(ix *Indexer) error {
		ix.progress = progress
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates an indexer over the given embedding function.
func NewIndexer(embedder ai.Embedder, opts ...Option) (*Indexer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		embedder:      embedder,
		pool:          pool,
		batchSize:     defaultBatchSize,
		maxInputChars: defaultMaxInputChars,
		maxRetries:    defaultMaxRetries,
		retryDelay:    defaultRetryDelay,
		batchTimeout:  defaultBatchTimeout,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(ix); optErr != nil {
			ix.Release()
			return nil, optErr
		}
	}

	return ix, nil
}

// BuildIndex embeds every record of the corpus and returns the indexed corpus.
//
// The build is pure given a fixed embedding function and corpus: the corpus
// itself is never mutated, and position i of the vector store corresponds to
// position i of the corpus. Batches that keep failing after retries (or hit
// the batch timeout) are dropped from the index, leaving nil vectors at their
// positions, so a flaky embedder degrades the index instead of failing the
// whole build.
func (ix *Indexer) BuildIndex(ctx context.Context, corpus *core.Corpus) (*core.IndexedCorpus, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	n := corpus.Len()
	vectors := make([][]float32, n)
	if n == 0 {
		return &core.IndexedCorpus{Corpus: corpus, Vectors: vectors}, nil
	}

	if ix.progress != nil {
		ix.progress.SetTotal(n)
		ix.progress.Start()
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += ix.batchSize {
		end := min(start+ix.batchSize, n)

		wg.Add(1)
		task := func() {
			defer wg.Done()
			ix.embedBatch(ctx, corpus, vectors, start, end)
		}
		if err := ix.pool.Submit(task); err != nil {
			// Pool rejected the task (e.g. released); run inline so the
			// batch is still embedded.
			ix.logger.Warn("pool submit failed, embedding batch inline", "err", err)
			task()
		}
	}
	wg.Wait()

	if ix.progress != nil {
		ix.progress.Finish()
	}

	dim, dropped := 0, 0
	for i, v := range vectors {
		if v == nil {
			dropped++
			continue
		}
		if dim == 0 {
			dim = len(v)
			continue
		}
		if len(v) != dim {
			ix.logger.Warn("dropping record with inconsistent embedding dimension",
				"position", i, "dim", len(v), "expected", dim)
			vectors[i] = nil
			dropped++
		}
	}

	ix.logger.Info("index build complete",
		"records", n, "dropped", dropped, "dim", dim)

	return &core.IndexedCorpus{Corpus: corpus, Vectors: vectors, Dim: dim}, nil
}

// embedBatch embeds corpus records [start, end) into vectors.
func (ix *Indexer) embedBatch(ctx context.Context, corpus *core.Corpus, vectors [][]float32, start, end int) {
	texts := make([]string, end-start)
	for i := start; i < end; i++ {
		record := corpus.At(i)
		text := record.IndexText()
		if truncated := truncateRunes(text, ix.maxInputChars); len(truncated) < len(text) {
			ix.logger.Warn("embedding input truncated",
				"position", i, "url", record.URL, "chars", ix.maxInputChars)
			text = truncated
		}
		texts[i-start] = text
	}

	bctx := ctx
	if ix.batchTimeout > 0 {
		var cancel context.CancelFunc
		bctx, cancel = context.WithTimeout(ctx, ix.batchTimeout)
		defer cancel()
	}

	var embeddings [][]float32
	err := RetryWithBackoff(bctx, func() error {
		var embedErr error
		embeddings, embedErr = ix.embedder.EmbedTexts(bctx, texts)
		return embedErr
	}, ix.maxRetries, ix.retryDelay)
	if err != nil {
		ix.logger.Error("dropping batch from index",
			"start", start, "records", len(texts), "err", err)
		if ix.progress != nil {
			ix.progress.Increment(len(texts))
		}
		return
	}

	if len(embeddings) != len(texts) {
		ix.logger.Error("embedding count mismatch, dropping batch",
			"start", start, "expected", len(texts), "received", len(embeddings))
		if ix.progress != nil {
			ix.progress.Increment(len(texts))
		}
		return
	}

	for i, embedding := range embeddings {
		vectors[start+i] = NormalizeVector(embedding)
	}
	if ix.progress != nil {
		ix.progress.Increment(len(texts))
	}
}

// Release releases the worker pool.
// The indexer should not be used after calling Release.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}

// truncateRunes cuts s to at most max runes.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
