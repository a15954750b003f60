package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflix/internal/catalog"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"crime", "shows", "dramas", "josé", "garcía"},
		tokenize("Crime TV Shows, Dramas | José García, Jr"))
	assert.Empty(t, tokenize(""))
}

func TestDocumentSkipsMissing(t *testing.T) {
	e := catalog.Entry{Genres: "Dramas", Director: catalog.Missing, Cast: "Ann", Country: catalog.Missing, Description: "A story"}
	assert.Equal(t, "Dramas Ann A story", Document(e))
}

func TestVectorizeNormalized(t *testing.T) {
	vecs := Vectorize([]string{"space drama space", "space comedy", ""})
	require.Len(t, vecs, 3)

	for _, v := range vecs[:2] {
		var norm float64
		for _, w := range v.Weights {
			norm += w * w
		}
		assert.InDelta(t, 1, norm, 1e-12)
		for k := 1; k < len(v.Terms); k++ {
			assert.Less(t, v.Terms[k-1], v.Terms[k])
		}
	}
	assert.Empty(t, vecs[2].Terms)
}

func TestCosineMatrix(t *testing.T) {
	docs := []string{
		"Dramas Thrillers detective murder",
		"Dramas Thrillers detective heist",
		"Comedies Romantic wedding",
		"",
	}
	vecs := Vectorize(docs)

	for _, workers := range []int{0, 1, 3} {
		m := CosineMatrix(vecs, workers)
		r, c := m.Dims()
		require.Equal(t, 4, r)
		require.Equal(t, 4, c)

		for i := 0; i < 3; i++ {
			assert.InDelta(t, 1, m.At(i, i), 1e-12)
		}
		assert.Equal(t, 0.0, m.At(3, 3))
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				assert.InDelta(t, m.At(i, j), m.At(j, i), 1e-12)
				assert.False(t, math.IsNaN(m.At(i, j)))
			}
		}
		assert.Greater(t, m.At(0, 1), m.At(0, 2))
		assert.Equal(t, 0.0, m.At(0, 2))
	}

	assert.Nil(t, CosineMatrix(nil, 2))
}
