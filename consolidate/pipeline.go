package consolidate

import (
	"context"
	"log/slog"

	"github.com/poiesic/prospect/core"
	"github.com/poiesic/prospect/source"
)

// Pipeline runs the consolidation pass: harvest each source in order,
// normalize and filter its records, then merge everything into one
// deduplicated corpus.
type Pipeline struct {
	normalizer *Normalizer
	filter     *Filter
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithFilterConfig sets the filter configuration shared by the normalizer and
// filter stages.
func WithFilterConfig(cfg FilterConfig) Option {
	return func(p *Pipeline) error {
		p.filter = NewFilter(cfg)
		p.normalizer = NewNormalizer(p.filter.Config().MinTitleLength)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a consolidation pipeline with the default filter
// configuration.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		normalizer: NewNormalizer(core.DefaultMinTitleLength),
		filter:     NewFilter(DefaultFilterConfig()),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Run consolidates the sources in the given order and returns the corpus plus
// every rejection recorded along the way.
//
// No condition is fatal: a source adapter failure degrades that source's
// contribution to empty (recorded as source_unavailable), and each normalizer
// or filter rejection removes exactly one candidate. The caller-supplied
// source order fixes first-seen-wins semantics, so results are reproducible
// across runs regardless of how harvesting was scheduled.
func (p *Pipeline) Run(ctx context.Context, sources []source.Source) (*core.Corpus, []core.Rejection) {
	var rejections []core.Rejection
	batches := make([]SourceBatch, 0, len(sources))

	for _, src := range sources {
		label := src.Label()

		raws, err := src.Produce(ctx)
		if err != nil {
			p.logger.Warn("source unavailable, contributing zero records",
				"source", label, "err", err)
			rejections = append(rejections, core.Rejection{
				Source: label,
				Reason: core.RejectSourceUnavailable,
			})
			continue
		}

		batch := SourceBatch{Label: label, Records: make([]*core.Record, 0, len(raws))}
		for _, raw := range raws {
			record, rejection := p.normalizer.Normalize(raw, label, src.BaseURL())
			if rejection != nil {
				p.logger.Debug("record rejected by normalizer",
					"source", label, "title", rejection.Title, "reason", rejection.Reason)
				rejections = append(rejections, *rejection)
				continue
			}

			if ok, reason := p.filter.Check(record); !ok {
				p.logger.Debug("record rejected by filter",
					"source", label, "title", record.Title, "reason", reason)
				rejections = append(rejections, core.Rejection{
					Source: record.Source,
					Title:  record.Title,
					URL:    record.URL,
					Reason: reason,
				})
				continue
			}

			batch.Records = append(batch.Records, record)
		}
		batches = append(batches, batch)
	}

	corpus := Consolidate(batches)

	kept := 0
	for _, b := range batches {
		kept += len(b.Records)
	}
	p.logger.Info("consolidation complete",
		"sources", len(sources),
		"records", corpus.Len(),
		"duplicates", kept-corpus.Len(),
		"rejections", len(rejections))

	return corpus, rejections
}
