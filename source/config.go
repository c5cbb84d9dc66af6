package source

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/prospect/core"
)

// Config declares one source in a TOML source list.
type Config struct {
	Label   string `toml:"label"`
	BaseURL string `toml:"base_url"`
	// Kind selects the adapter: "html" or "static".
	Kind string `toml:"kind"`
	// Page is the listing page URL, html kind only.
	Page      string          `toml:"page"`
	Selectors SelectorsConfig `toml:"selectors"`
	// Records are inline fixture records, static kind only.
	Records []RecordConfig `toml:"records"`
}

// SelectorsConfig holds the CSS selectors for an html source.
type SelectorsConfig struct {
	Item        string `toml:"item"`
	Title       string `toml:"title"`
	Link        string `toml:"link"`
	Description string `toml:"description"`
}

// RecordConfig is one inline record of a static source.
type RecordConfig struct {
	Title       string `toml:"title"`
	URL         string `toml:"url"`
	Description string `toml:"description"`
}

type sourcesFile struct {
	Sources []Config `toml:"sources"`
}

// LoadSources reads a TOML source list and builds the declared sources in
// file order. The file order is the consolidation order, so deduplication
// stays reproducible across runs.
//
// Example file:
//
//	[[sources]]
//	label = "Example Foundation"
//	base_url = "https://example.org/"
//	kind = "html"
//	page = "https://example.org/calls"
//	[sources.selectors]
//	item = "div.call-item"
//	title = "h3"
//	link = "a"
//	description = "p.summary"
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source list %s: %w", path, err)
	}

	var file sourcesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing source list %s: %w", path, err)
	}

	sources := make([]Source, 0, len(file.Sources))
	for i, cfg := range file.Sources {
		src, err := Build(cfg)
		if err != nil {
			return nil, fmt.Errorf("source %d (%q): %w", i, cfg.Label, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// Build constructs a Source from its configuration.
func Build(cfg Config) (Source, error) {
	switch cfg.Kind {
	case "html":
		return NewHTMLSource(cfg.Label, cfg.BaseURL, cfg.Page, Selectors{
			Item:        cfg.Selectors.Item,
			Title:       cfg.Selectors.Title,
			Link:        cfg.Selectors.Link,
			Description: cfg.Selectors.Description,
		})
	case "static":
		if cfg.Label == "" {
			return nil, ErrLabelRequired
		}
		records := make([]core.RawRecord, len(cfg.Records))
		for i, r := range cfg.Records {
			records[i] = core.RawRecord{
				Title:       r.Title,
				URL:         r.URL,
				Description: r.Description,
			}
		}
		return NewStaticSource(cfg.Label, cfg.BaseURL, records), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSourceKind, cfg.Kind)
	}
}
