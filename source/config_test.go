package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceListTOML = `
[[sources]]
label = "Example Foundation"
base_url = "https://example.org/"
kind = "html"
page = "https://example.org/calls"

[sources.selectors]
item = "div.call-item"
title = "h3"
link = "a"
description = "p.summary"

[[sources]]
label = "Seed Data"
base_url = "https://seed.example.com/"
kind = "static"

[[sources.records]]
title = "Grant for Youth Employment"
url = "/call/123"
description = "Funding for youth employment programs."
`

func writeSourceList(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadSources(t *testing.T) {
	sources, err := LoadSources(writeSourceList(t, sourceListTOML))
	require.NoError(t, err)
	require.Len(t, sources, 2)

	// File order is consolidation order.
	assert.Equal(t, "Example Foundation", sources[0].Label())
	assert.Equal(t, "https://example.org/", sources[0].BaseURL())
	assert.IsType(t, (*HTMLSource)(nil), sources[0])

	assert.Equal(t, "Seed Data", sources[1].Label())
	assert.IsType(t, (*StaticSource)(nil), sources[1])
}

func TestLoadSources_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSources(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		_, err := LoadSources(writeSourceList(t, "[[sources]\nlabel ="))
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := LoadSources(writeSourceList(t, "[[sources]]\nlabel = \"X\"\nkind = \"rss\"\n"))
		assert.ErrorIs(t, err, ErrUnknownSourceKind)
	})
}

func TestBuild_Static(t *testing.T) {
	src, err := Build(Config{
		Label:   "Seed",
		BaseURL: "https://seed.example.com/",
		Kind:    "static",
		Records: []RecordConfig{
			{Title: "Grant for Youth Employment", URL: "/call/123"},
		},
	})
	require.NoError(t, err)

	records, err := src.Produce(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Grant for Youth Employment", records[0].Title)
	assert.Equal(t, "/call/123", records[0].URL)
}

func TestBuild_StaticRequiresLabel(t *testing.T) {
	_, err := Build(Config{Kind: "static"})
	assert.ErrorIs(t, err, ErrLabelRequired)
}
