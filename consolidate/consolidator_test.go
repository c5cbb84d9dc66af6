package consolidate

import (
	"testing"

	"github.com/poiesic/prospect/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidate(t *testing.T) {
	batches := []SourceBatch{
		{Label: "A", Records: []*core.Record{
			{Source: "A", Title: "Grant for Youth", URL: "https://example.org/g1"},
			{Source: "A", Title: "Research Fellowship", URL: "https://example.org/g2"},
		}},
		{Label: "B", Records: []*core.Record{
			{Source: "B", Title: "Youth Grant (mirror)", URL: "https://example.org/g1"},
			{Source: "B", Title: "Culture Fund", URL: "https://example.org/g3"},
		}},
	}

	corpus := Consolidate(batches)
	require.Equal(t, 3, corpus.Len())

	t.Run("uniqueness", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, r := range corpus.Records() {
			assert.False(t, seen[r.URL])
			seen[r.URL] = true
		}
	})

	t.Run("first-seen wins", func(t *testing.T) {
		assert.Equal(t, "A", corpus.At(0).Source)
		assert.Equal(t, "Grant for Youth", corpus.At(0).Title)
	})

	t.Run("insertion order across sources", func(t *testing.T) {
		assert.Equal(t, "https://example.org/g1", corpus.At(0).URL)
		assert.Equal(t, "https://example.org/g2", corpus.At(1).URL)
		assert.Equal(t, "https://example.org/g3", corpus.At(2).URL)
	})

	t.Run("source order decides the winner", func(t *testing.T) {
		reversed := Consolidate([]SourceBatch{batches[1], batches[0]})
		assert.Equal(t, "B", reversed.At(0).Source)
		assert.Equal(t, "Youth Grant (mirror)", reversed.At(0).Title)
	})
}

func TestConsolidate_Empty(t *testing.T) {
	assert.Equal(t, 0, Consolidate(nil).Len())
	assert.Equal(t, 0, Consolidate([]SourceBatch{{Label: "A"}}).Len())
}
