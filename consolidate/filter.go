package consolidate

import (
	"regexp"
	"strings"

	"github.com/poiesic/prospect/core"
)

// defaultEmailPattern matches standard email address shapes:
// local-part @ domain . TLD of 2+ letters. A conservative PII guard, not full
// PII detection; titles that happen to contain an email are rejected too.
var defaultEmailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// FilterConfig enumerates the filter's tunables in one place: the email
// pattern, the contact-link markers, the noise lexicon, and the minimum title
// length shared with the normalizer.
type FilterConfig struct {
	EmailPattern   *regexp.Regexp
	ContactMarkers []string
	NoiseLexicon   []string
	MinTitleLength int
}

// DefaultFilterConfig returns the standard configuration.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		EmailPattern:   defaultEmailPattern,
		ContactMarkers: []string{"mailto:", "tel:", "wa.me"},
		NoiseLexicon:   []string{"privacy", "terms", "cookies", "policy", "contact", "home"},
		MinTitleLength: core.DefaultMinTitleLength,
	}
}

// Filter rejects records that expose personal contact data or are
// administrative boilerplate rather than substantive listings.
//
// The filter is pure and order-independent: the decision depends only on the
// record's own fields, so applying it twice, or before/after deduplication,
// yields the same result.
type Filter struct {
	cfg FilterConfig
}

// NewFilter creates a filter. Zero-value config fields fall back to the
// defaults, so FilterConfig{NoiseLexicon: custom} tunes one knob at a time.
func NewFilter(cfg FilterConfig) *Filter {
	defaults := DefaultFilterConfig()
	if cfg.EmailPattern == nil {
		cfg.EmailPattern = defaults.EmailPattern
	}
	if cfg.ContactMarkers == nil {
		cfg.ContactMarkers = defaults.ContactMarkers
	}
	if cfg.NoiseLexicon == nil {
		cfg.NoiseLexicon = defaults.NoiseLexicon
	}
	if cfg.MinTitleLength < 1 {
		cfg.MinTitleLength = defaults.MinTitleLength
	}
	return &Filter{cfg: cfg}
}

// Config returns the filter's effective configuration.
func (f *Filter) Config() FilterConfig {
	return f.cfg
}

// Passes reports whether the record survives the filter.
func (f *Filter) Passes(record *core.Record) bool {
	ok, _ := f.Check(record)
	return ok
}

// Check reports whether the record survives, and if not, why.
func (f *Filter) Check(record *core.Record) (bool, core.RejectReason) {
	lowerURL := strings.ToLower(record.URL)
	for _, marker := range f.cfg.ContactMarkers {
		if strings.Contains(lowerURL, marker) {
			return false, core.RejectPrivacyViolation
		}
	}

	if f.cfg.EmailPattern.MatchString(record.Title) || f.cfg.EmailPattern.MatchString(record.Description) {
		return false, core.RejectPrivacyViolation
	}

	lowerTitle := strings.ToLower(record.Title)
	for _, entry := range f.cfg.NoiseLexicon {
		if strings.Contains(lowerTitle, entry) {
			return false, core.RejectNoiseMatch
		}
	}

	return true, ""
}
