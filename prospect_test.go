package prospect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/prospect/ai/mock"
	"github.com/poiesic/prospect/core"
	"github.com/poiesic/prospect/source"
)

func testSources() []source.Source {
	uniA := source.NewStaticSource("uni-a", "https://a.example.edu", []core.RawRecord{
		{
			Title:       "Postdoctoral fellowship in machine learning",
			URL:         "/positions/ml-postdoc",
			Description: "Two-year funded research position on deep learning methods.",
		},
		{
			Title:       "Travel grant for doctoral students",
			URL:         "/grants/travel",
			Description: "Covers conference attendance costs.",
		},
		{
			Title: "Privacy policy",
			URL:   "/privacy",
		},
	})

	uniB := source.NewStaticSource("uni-b", "https://b.example.edu", []core.RawRecord{
		{
			Title:       "Travel grant for doctoral students",
			URL:         "https://a.example.edu/grants/travel", // duplicate of uni-a's listing
			Description: "Covers conference attendance costs.",
		},
		{
			Title:       "Research internship in marine biology",
			URL:         "/internships/marine",
			Description: "Summer internship aboard the research vessel.",
		},
	})

	return []source.Source{uniA, uniB}
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()

	opts = append([]EngineOption{WithProvider(mock.NewMockProvider())}, opts...)
	engine, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngine_BuildAndQuery(t *testing.T) {
	engine := newTestEngine(t)

	require.NoError(t, engine.Build(context.Background(), testSources()))

	corpus := engine.Corpus()
	require.NotNil(t, corpus)
	assert.Equal(t, 3, corpus.Len(), "noise and duplicate listings are removed")
	assert.True(t, corpus.Contains("https://a.example.edu/positions/ml-postdoc"))
	assert.True(t, corpus.Contains("https://a.example.edu/grants/travel"))
	assert.True(t, corpus.Contains("https://b.example.edu/internships/marine"))

	// The duplicate keeps uni-a's attribution (first seen).
	for _, record := range corpus.Records() {
		if record.URL == "https://a.example.edu/grants/travel" {
			assert.Equal(t, "uni-a", record.Source)
		}
	}

	results, err := engine.Query(context.Background(), "funding for research travel", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.NotNil(t, result.Record)
	}
}

func TestEngine_QueryBeforeBuild(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Query(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestEngine_RejectionsRecorded(t *testing.T) {
	engine := newTestEngine(t)

	require.NoError(t, engine.Build(context.Background(), testSources()))

	rejections := engine.Rejections()
	require.Len(t, rejections, 1)
	assert.Equal(t, core.RejectNoiseMatch, rejections[0].Reason)
	assert.Equal(t, "Privacy policy", rejections[0].Title)
}

func TestEngine_SnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	builder, err := New(
		WithProvider(mock.NewMockProvider()),
		WithSnapshotPath(dir),
	)
	require.NoError(t, err)
	require.NoError(t, builder.Build(context.Background(), testSources()))
	require.NoError(t, builder.Close())

	// A fresh engine with the same snapshot path answers queries without
	// rebuilding.
	querier, err := New(
		WithProvider(mock.NewMockProvider()),
		WithSnapshotPath(dir),
	)
	require.NoError(t, err)
	defer querier.Close()

	results, err := querier.Query(context.Background(), "marine research internship", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 3, querier.Corpus().Len())
}

func TestEngine_QueryDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.Build(context.Background(), testSources()))

	first, err := engine.Query(context.Background(), "doctoral funding", 3)
	require.NoError(t, err)
	second, err := engine.Query(context.Background(), "doctoral funding", 3)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Record.URL, second[i].Record.URL)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}
