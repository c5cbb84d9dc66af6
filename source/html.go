package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/poiesic/prospect/core"
)

// DefaultTimeout is the default HTTP request timeout for HTML sources.
const DefaultTimeout = 30 * time.Second

// defaultUserAgent identifies the harvester to listing sites.
const defaultUserAgent = "Mozilla/5.0 (compatible; Prospect/1.0)"

// Selectors describes how listing fields are located within a page.
// Item selects one element per listing; the remaining selectors are evaluated
// within each item. An empty Link selector falls back to the first anchor in
// the item; an empty Description selector leaves descriptions empty.
type Selectors struct {
	Item        string
	Title       string
	Link        string
	Description string
}

// HTMLSource harvests listings from a single HTML page using CSS selectors.
// Field extraction only: URL resolution and all validation happen later in
// the normalizer.
type HTMLSource struct {
	label     string
	baseURL   string
	pageURL   string
	selectors Selectors
	client    *http.Client
	logger    *slog.Logger
}

var _ Source = (*HTMLSource)(nil)

// HTMLOption configures an HTMLSource.
type HTMLOption func(*HTMLSource)

// WithHTTPClient sets a custom HTTP client.
// Default is a client with DefaultTimeout.
func WithHTTPClient(client *http.Client) HTMLOption {
	return func(s *HTMLSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) HTMLOption {
	return func(s *HTMLSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHTMLSource creates an HTML source for one listing page.
func NewHTMLSource(label, baseURL, pageURL string, selectors Selectors, opts ...HTMLOption) (*HTMLSource, error) {
	if label == "" {
		return nil, ErrLabelRequired
	}
	if pageURL == "" {
		return nil, ErrPageURLRequired
	}
	if selectors.Item == "" || selectors.Title == "" {
		return nil, ErrSelectorsRequired
	}

	s := &HTMLSource{
		label:     label,
		baseURL:   baseURL,
		pageURL:   pageURL,
		selectors: selectors,
		client:    &http.Client{Timeout: DefaultTimeout},
		logger:    slog.Default().With("source", label),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Label returns the institution label.
func (s *HTMLSource) Label() string { return s.label }

// BaseURL returns the base URL for relative record URLs.
func (s *HTMLSource) BaseURL() string { return s.baseURL }

// Produce fetches the page and extracts one raw record per item selector match.
func (s *HTMLSource) Produce(ctx context.Context) ([]core.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", s.pageURL, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnexpectedStatus, s.pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.pageURL, err)
	}

	records := s.extract(doc)
	s.logger.Debug("harvested page", "url", s.pageURL, "records", len(records))
	return records, nil
}

// extract pulls raw records out of a parsed document.
func (s *HTMLSource) extract(doc *goquery.Document) []core.RawRecord {
	var records []core.RawRecord

	doc.Find(s.selectors.Item).Each(func(_ int, item *goquery.Selection) {
		title := strings.TrimSpace(item.Find(s.selectors.Title).First().Text())

		var href string
		if s.selectors.Link != "" {
			href, _ = item.Find(s.selectors.Link).First().Attr("href")
		} else {
			href, _ = item.Find("a[href]").First().Attr("href")
		}

		var description string
		if s.selectors.Description != "" {
			description = strings.TrimSpace(item.Find(s.selectors.Description).First().Text())
		}

		if title == "" && href == "" {
			// Not a listing item, skip silently.
			return
		}

		records = append(records, core.RawRecord{
			Title:       title,
			URL:         href,
			Description: description,
		})
	})

	return records
}
