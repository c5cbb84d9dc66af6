package source

import (
	"context"

	"github.com/poiesic/prospect/core"
)

// StaticSource serves a fixed list of raw records. It backs TOML-declared
// fixture sources and is the standard source double in tests.
type StaticSource struct {
	label   string
	baseURL string
	records []core.RawRecord
}

var _ Source = (*StaticSource)(nil)

// NewStaticSource creates a source producing the given records as-is.
func NewStaticSource(label, baseURL string, records []core.RawRecord) *StaticSource {
	return &StaticSource{
		label:   label,
		baseURL: baseURL,
		records: records,
	}
}

// Label returns the institution label.
func (s *StaticSource) Label() string { return s.label }

// BaseURL returns the base URL for relative record URLs.
func (s *StaticSource) BaseURL() string { return s.baseURL }

// Produce returns the configured records.
func (s *StaticSource) Produce(_ context.Context) ([]core.RawRecord, error) {
	return s.records, nil
}
