package consolidate

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/prospect/core"
)

// Normalizer converts raw source records into canonical Records.
// It is a pure function of its inputs: no side effects, no shared state.
type Normalizer struct {
	minTitleLength int
}

// NewNormalizer creates a normalizer. A minTitleLength below 1 falls back to
// core.DefaultMinTitleLength.
func NewNormalizer(minTitleLength int) *Normalizer {
	if minTitleLength < 1 {
		minTitleLength = core.DefaultMinTitleLength
	}
	return &Normalizer{minTitleLength: minTitleLength}
}

// Normalize converts one raw record into a canonical Record, resolving its URL
// against the source's base URL. On rejection the record is nil and the
// rejection carries the reason: malformed_url when the URL cannot be resolved
// to an absolute URL, title_too_short when the trimmed title is below the
// minimum length.
func (n *Normalizer) Normalize(raw core.RawRecord, label, baseURL string) (*core.Record, *core.Rejection) {
	title := strings.TrimSpace(raw.Title)
	description := strings.TrimSpace(raw.Description)

	rawURL := strings.TrimSpace(raw.URL)
	if rawURL == "" {
		return nil, reject(label, title, rawURL, core.RejectMalformedURL)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, reject(label, title, rawURL, core.RejectMalformedURL)
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return nil, reject(label, title, rawURL, core.RejectMalformedURL)
	}
	resolved := base.ResolveReference(ref)
	if !resolved.IsAbs() {
		return nil, reject(label, title, rawURL, core.RejectMalformedURL)
	}

	if utf8.RuneCountInString(title) < n.minTitleLength {
		return nil, reject(label, title, rawURL, core.RejectTitleTooShort)
	}

	return &core.Record{
		Source:      label,
		Title:       title,
		URL:         resolved.String(),
		Description: description,
	}, nil
}

func reject(source, title, url string, reason core.RejectReason) *core.Rejection {
	return &core.Rejection{
		Source: source,
		Title:  title,
		URL:    url,
		Reason: reason,
	}
}
