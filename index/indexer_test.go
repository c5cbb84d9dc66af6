package index

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/prospect/ai/mock"
	"github.com/poiesic/prospect/core"
)

func testCorpus(t *testing.T, n int) *core.Corpus {
	t.Helper()

	corpus := core.NewCorpus()
	for i := 0; i < n; i++ {
		added := corpus.Add(&core.Record{
			Source:      "test",
			Title:       fmt.Sprintf("Listing %d", i),
			URL:         fmt.Sprintf("https://example.com/listing/%d", i),
			Description: fmt.Sprintf("Description for listing %d", i),
		})
		require.True(t, added)
	}
	return corpus
}

func TestNewIndexer_RequiresEmbedder(t *testing.T) {
	_, err := NewIndexer(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestNewIndexer_InvalidRetry(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	_, err := NewIndexer(embedder, WithRetry(0, time.Millisecond))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestBuildIndex_RequiresCorpus(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	indexer, err := NewIndexer(embedder)
	require.NoError(t, err)
	defer indexer.Release()

	_, err = indexer.BuildIndex(context.Background(), nil)
	assert.ErrorIs(t, err, ErrCorpusRequired)
}

func TestBuildIndex_EmptyCorpus(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	indexer, err := NewIndexer(embedder)
	require.NoError(t, err)
	defer indexer.Release()

	idx, err := indexer.BuildIndex(context.Background(), core.NewCorpus())
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Vectors)
	assert.Equal(t, 0, embedder.CallCount(), "should not call embedder for empty corpus")
}

func TestBuildIndex_VectorsAlignedWithCorpus(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	indexer, err := NewIndexer(embedder)
	require.NoError(t, err)
	defer indexer.Release()

	corpus := testCorpus(t, 10)
	idx, err := indexer.BuildIndex(context.Background(), corpus)
	require.NoError(t, err)

	require.Len(t, idx.Vectors, 10)
	assert.Equal(t, 384, idx.Dim)
	for i, v := range idx.Vectors {
		require.NotNil(t, v, "record %d should have a vector", i)
		assert.Len(t, v, 384)
	}

	// Vector at position i must correspond to the record at position i:
	// re-embedding record 7's text directly must match the stored vector.
	expected, err := embedder.EmbedText(context.Background(), corpus.At(7).IndexText())
	require.NoError(t, err)
	assert.Equal(t, NormalizeVector(expected), idx.Vectors[7])
}

func TestBuildIndex_Deterministic(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	indexer, err := NewIndexer(embedder, WithBatchSize(3))
	require.NoError(t, err)
	defer indexer.Release()

	corpus := testCorpus(t, 10)

	first, err := indexer.BuildIndex(context.Background(), corpus)
	require.NoError(t, err)
	second, err := indexer.BuildIndex(context.Background(), corpus)
	require.NoError(t, err)

	assert.Equal(t, first.Vectors, second.Vectors, "same corpus and embedder must yield identical index")
}

func TestBuildIndex_DoesNotMutateCorpus(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	indexer, err := NewIndexer(embedder)
	require.NoError(t, err)
	defer indexer.Release()

	corpus := testCorpus(t, 3)
	before := make([]core.Record, corpus.Len())
	for i := 0; i < corpus.Len(); i++ {
		before[i] = *corpus.At(i)
	}

	_, err = indexer.BuildIndex(context.Background(), corpus)
	require.NoError(t, err)

	require.Equal(t, len(before), corpus.Len())
	for i := range before {
		assert.Equal(t, before[i], *corpus.At(i))
	}
}

func TestBuildIndex_FailedBatchDegradesIndex(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		for _, text := range texts {
			if strings.Contains(text, "Listing 2") {
				return nil, errors.New("model overloaded")
			}
		}
		embeddings := make([][]float32, len(texts))
		for i := range texts {
			v := make([]float32, 8)
			v[0] = 1
			embeddings[i] = v
		}
		return embeddings, nil
	}

	indexer, err := NewIndexer(embedder,
		WithBatchSize(1),
		WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	defer indexer.Release()

	corpus := testCorpus(t, 5)
	idx, err := indexer.BuildIndex(context.Background(), corpus)
	require.NoError(t, err, "failed batches degrade the index, they do not fail the build")

	require.Len(t, idx.Vectors, 5)
	assert.Nil(t, idx.Vectors[2], "failed record should be dropped from the index")
	for _, i := range []int{0, 1, 3, 4} {
		assert.NotNil(t, idx.Vectors[i], "record %d should still be indexed", i)
	}
	assert.Equal(t, 8, idx.Dim)
}

func TestBuildIndex_AllBatchesFail(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("connection refused")
	}

	indexer, err := NewIndexer(embedder, WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	defer indexer.Release()

	idx, err := indexer.BuildIndex(context.Background(), testCorpus(t, 4))
	require.NoError(t, err)

	require.Len(t, idx.Vectors, 4)
	for i, v := range idx.Vectors {
		assert.Nil(t, v, "record %d should be dropped", i)
	}
	assert.Equal(t, 0, idx.Dim)
}

func TestBuildIndex_EmbeddingCountMismatchDropsBatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		// One embedding short.
		embeddings := make([][]float32, len(texts)-1)
		for i := range embeddings {
			embeddings[i] = []float32{1, 0}
		}
		return embeddings, nil
	}

	indexer, err := NewIndexer(embedder, WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	defer indexer.Release()

	idx, err := indexer.BuildIndex(context.Background(), testCorpus(t, 3))
	require.NoError(t, err)
	for _, v := range idx.Vectors {
		assert.Nil(t, v)
	}
}

func TestBuildIndex_InconsistentDimensionsDropped(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	var mu sync.Mutex
	call := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		mu.Lock()
		call++
		dim := 4
		if call > 1 {
			dim = 6
		}
		mu.Unlock()

		embeddings := make([][]float32, len(texts))
		for i := range texts {
			v := make([]float32, dim)
			v[0] = 1
			embeddings[i] = v
		}
		return embeddings, nil
	}

	indexer, err := NewIndexer(embedder, WithBatchSize(2), WithPoolSize(1))
	require.NoError(t, err)
	defer indexer.Release()

	idx, err := indexer.BuildIndex(context.Background(), testCorpus(t, 4))
	require.NoError(t, err)

	require.Len(t, idx.Vectors, 4)
	assert.NotNil(t, idx.Vectors[0])
	assert.NotNil(t, idx.Vectors[1])
	assert.Nil(t, idx.Vectors[2], "mismatched dimension should be dropped")
	assert.Nil(t, idx.Vectors[3], "mismatched dimension should be dropped")
	assert.Equal(t, 4, idx.Dim)
}

func TestBuildIndex_TruncatesLongInput(t *testing.T) {
	var mu sync.Mutex
	var received []string

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		mu.Lock()
		received = append(received, texts...)
		mu.Unlock()

		embeddings := make([][]float32, len(texts))
		for i := range texts {
			embeddings[i] = []float32{1, 0}
		}
		return embeddings, nil
	}

	indexer, err := NewIndexer(embedder, WithMaxInputChars(50))
	require.NoError(t, err)
	defer indexer.Release()

	corpus := core.NewCorpus()
	corpus.Add(&core.Record{
		Source:      "test",
		Title:       "Long listing",
		URL:         "https://example.com/long",
		Description: strings.Repeat("very long description ", 100),
	})

	_, err = indexer.BuildIndex(context.Background(), corpus)
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, 50, len([]rune(received[0])), "input should be truncated to max chars")
}

func TestBuildIndex_VectorsAreNormalized(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		embeddings := make([][]float32, len(texts))
		for i := range texts {
			embeddings[i] = []float32{3, 4} // magnitude 5
		}
		return embeddings, nil
	}

	indexer, err := NewIndexer(embedder)
	require.NoError(t, err)
	defer indexer.Release()

	idx, err := indexer.BuildIndex(context.Background(), testCorpus(t, 1))
	require.NoError(t, err)

	require.Len(t, idx.Vectors, 1)
	assert.InDelta(t, 0.6, idx.Vectors[0][0], 1e-6)
	assert.InDelta(t, 0.8, idx.Vectors[0][1], 1e-6)
}

func TestBuildIndex_WithProgress(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	var buf strings.Builder
	tracker := NewProgressTracker(&buf, 0, 1)

	indexer, err := NewIndexer(embedder, WithBatchSize(2), WithProgress(tracker))
	require.NoError(t, err)
	defer indexer.Release()

	_, err = indexer.BuildIndex(context.Background(), testCorpus(t, 6))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "6/6", "progress should reach the corpus size")
}
