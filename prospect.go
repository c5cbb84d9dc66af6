// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prospect consolidates opportunity listings from heterogeneous
// sources into a deduplicated corpus and answers semantic queries over it.
//
// The Engine type ties the stages together: harvest and consolidate sources,
// build an embedding index, then serve top-k similarity queries. The corpus
// and index live in memory; an optional snapshot path persists a finished
// build so later query runs can skip harvesting and re-embedding.
package prospect

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/prospect/ai"
	"github.com/poiesic/prospect/ai/openai"
	"github.com/poiesic/prospect/consolidate"
	"github.com/poiesic/prospect/core"
	"github.com/poiesic/prospect/index"
	"github.com/poiesic/prospect/search"
	"github.com/poiesic/prospect/source"
	"github.com/poiesic/prospect/storage"
	"github.com/poiesic/prospect/storage/badger"
)

// ErrNotBuilt is returned by Query when no index has been built or loaded.
var ErrNotBuilt = errors.New("no index built; run Build or load a snapshot")

// Engine is the top-level facade over consolidation, indexing and search.
type Engine struct {
	provider  ai.AIProvider
	filterCfg *consolidate.FilterConfig
	indexOpts []index.Option

	backend   *badger.Backend
	snapshots storage.SnapshotRepository

	idx        *core.IndexedCorpus
	rejections []core.Rejection

	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig     *ai.Config
	provider     ai.AIProvider
	filterCfg    *consolidate.FilterConfig
	indexOpts    []index.Option
	snapshotPath string
	logger       *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
// Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a ready AI provider instead of the default
// OpenAI-compatible one. The engine takes ownership and closes it.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithFilterConfig overrides the default privacy and noise filter configuration.
func WithFilterConfig(cfg consolidate.FilterConfig) EngineOption {
	return func(o *engineOptions) {
		o.filterCfg = &cfg
	}
}

// WithIndexerOptions forwards options to the indexer used by Build.
func WithIndexerOptions(opts ...index.Option) EngineOption {
	return func(o *engineOptions) {
		o.indexOpts = append(o.indexOpts, opts...)
	}
}

// WithSnapshotPath enables snapshot persistence at the given BadgerDB
// directory. Build saves the index there and Query loads it when no index is
// in memory.
func WithSnapshotPath(path string) EngineOption {
	return func(o *engineOptions) {
		o.snapshotPath = path
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// New creates an engine.
func New(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	// The model's input limit travels with the AI config; explicit indexer
	// options may still override it.
	indexOpts := options.indexOpts
	if options.aiConfig != nil && options.aiConfig.MaxInputChars > 0 {
		indexOpts = append(
			[]index.Option{index.WithMaxInputChars(options.aiConfig.MaxInputChars)},
			indexOpts...)
	}

	e := &Engine{
		provider:  provider,
		filterCfg: options.filterCfg,
		indexOpts: indexOpts,
		logger:    options.logger,
	}

	if options.snapshotPath != "" {
		backend, err := badger.OpenBackend(options.snapshotPath, false)
		if err != nil {
			provider.Close()
			return nil, err
		}
		store, err := badger.NewSnapshotStore(backend)
		if err != nil {
			backend.Close()
			provider.Close()
			return nil, err
		}
		e.backend = backend
		e.snapshots = store
	}

	return e, nil
}

// Build harvests the sources, consolidates them into a corpus and builds the
// embedding index. When a snapshot path is configured the finished index is
// persisted. Rejections recorded during consolidation are available through
// Rejections afterward.
func (e *Engine) Build(ctx context.Context, sources []source.Source) error {
	pipelineOpts := []consolidate.Option{consolidate.WithLogger(e.logger)}
	if e.filterCfg != nil {
		pipelineOpts = append(pipelineOpts, consolidate.WithFilterConfig(*e.filterCfg))
	}
	pipeline, err := consolidate.NewPipeline(pipelineOpts...)
	if err != nil {
		return err
	}

	corpus, rejections := pipeline.Run(ctx, sources)

	indexOpts := append([]index.Option{index.WithLogger(e.logger)}, e.indexOpts...)
	indexer, err := index.NewIndexer(e.provider.Embedder(), indexOpts...)
	if err != nil {
		return err
	}
	defer indexer.Release()

	idx, err := indexer.BuildIndex(ctx, corpus)
	if err != nil {
		return err
	}

	e.idx = idx
	e.rejections = rejections

	if e.snapshots != nil {
		if err := e.snapshots.SaveSnapshot(ctx, idx); err != nil {
			return err
		}
		e.logger.Info("snapshot saved", "records", idx.Len())
	}

	return nil
}

// Query returns up to maxHits records most similar to the query text.
// If no index is in memory and a snapshot path is configured, the snapshot
// is loaded first. Returns ErrNotBuilt when neither is available.
func (e *Engine) Query(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	if e.idx == nil {
		if e.snapshots == nil {
			return nil, ErrNotBuilt
		}

		idx, err := e.snapshots.LoadSnapshot(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotBuilt
		}
		if err != nil {
			return nil, err
		}
		e.logger.Info("snapshot loaded", "records", idx.Len(), "dim", idx.Dim)
		e.idx = idx
	}

	engine, err := search.NewEngine(e.provider.Embedder(), search.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	return engine.Query(ctx, e.idx, query, maxHits)
}

// Index returns the indexed corpus from the last Build or snapshot load,
// or nil when none is available.
func (e *Engine) Index() *core.IndexedCorpus {
	return e.idx
}

// Corpus returns the consolidated corpus, or nil when none is available.
func (e *Engine) Corpus() *core.Corpus {
	if e.idx == nil {
		return nil
	}
	return e.idx.Corpus
}

// Rejections returns the rejections recorded by the last Build.
func (e *Engine) Rejections() []core.Rejection {
	return e.rejections
}

// Close releases the AI provider and, when configured, the snapshot backend.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing snapshot backend", "err", err)
			return err
		}
	}
	return nil
}
