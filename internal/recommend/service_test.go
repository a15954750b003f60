package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"goflix/internal/catalog"
)

// A is most similar to D, then B, then E, then C.
func fixtureStore(t *testing.T) *catalog.Store {
	t.Helper()
	entries := []catalog.Entry{
		{Title: "A", Genres: "Dramas, Thrillers", ReleaseYear: 2019, Type: "Movie", AgeGroup: "Adults"},
		{Title: "B", Genres: "Crime TV Shows, Dramas", ReleaseYear: 2020, Type: "TV Show", AgeGroup: "Adults"},
		{Title: "C", Genres: "Comedies", ReleaseYear: 2019, Type: "Movie", AgeGroup: "Kids"},
		{Title: "D", Genres: "Thrillers", ReleaseYear: 2018, Type: "Movie", AgeGroup: "Teens"},
		{Title: "E", Genres: "Docuseries", ReleaseYear: 2019, Type: "TV Show", AgeGroup: "Teens"},
	}
	sim := mat.NewDense(5, 5, []float64{
		1.0, 0.6, 0.1, 0.9, 0.3,
		0.6, 1.0, 0.2, 0.5, 0.4,
		0.1, 0.2, 1.0, 0.1, 0.7,
		0.9, 0.5, 0.1, 1.0, 0.2,
		0.3, 0.4, 0.7, 0.2, 1.0,
	})
	store, err := catalog.NewStore(entries, sim)
	require.NoError(t, err)
	return store
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestRecommendOrder(t *testing.T) {
	svc := NewService(fixtureStore(t))

	items, err := svc.Recommend(context.Background(), "A", Filters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "B", "E", "C"}, titles(items))

	first := items[0]
	assert.Equal(t, "Thrillers", first.Genres)
	assert.Equal(t, 2018, first.ReleaseYear)
	assert.Equal(t, "Teens", first.AgeGroup)
}

func TestRecommendTypeFilterKeepsOrder(t *testing.T) {
	svc := NewService(fixtureStore(t))

	items, err := svc.Recommend(context.Background(), "A", Filters{Type: "movie"})
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C"}, titles(items))
}

func TestRecommendFilters(t *testing.T) {
	svc := NewService(fixtureStore(t))
	ctx := context.Background()

	tests := []struct {
		name string
		f    Filters
		want []string
	}{
		{"genre substring case-insensitive", Filters{Genre: "drama"}, []string{"B"}},
		{"genre partial word", Filters{Genre: "THRILL"}, []string{"D"}},
		{"year", Filters{Year: 2019}, []string{"E", "C"}},
		{"age group", Filters{AgeGroup: "teens"}, []string{"D", "E"}},
		{"combined", Filters{Type: "TV SHOW", Year: 2019}, []string{"E"}},
		{"no match", Filters{Genre: "Anime"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := svc.Recommend(ctx, "A", tt.f)
			require.NoError(t, err)
			require.NotNil(t, items)
			assert.Equal(t, tt.want, titles(items))
		})
	}
}

func TestRecommendUnknownTitle(t *testing.T) {
	svc := NewService(fixtureStore(t))

	items, err := svc.Recommend(context.Background(), "Z", Filters{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, items)

	_, err = svc.Recommend(context.Background(), "a", Filters{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func bigStore(t *testing.T, n int) *catalog.Store {
	t.Helper()
	entries := make([]catalog.Entry, n)
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		typ := "Movie"
		if i%3 == 0 {
			typ = "TV Show"
		}
		entries[i] = catalog.Entry{Title: fmt.Sprintf("Title %02d", i), Type: typ, Genres: "Dramas"}
		for j := 0; j < n; j++ {
			// the diagonal is deliberately not the maximum for row 0
			data[i*n+j] = math.Mod(float64((i+1)*(j+3)), 7) / 7
		}
	}
	store, err := catalog.NewStore(entries, mat.NewDense(n, n, data))
	require.NoError(t, err)
	return store
}

func TestRecommendProperties(t *testing.T) {
	store := bigStore(t, 40)
	svc := NewService(store).(*recommendService)
	ctx := context.Background()

	for i := 0; i < store.Len(); i++ {
		title := store.Entry(i).Title
		items, err := svc.Recommend(ctx, title, Filters{})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(items), MaxResults)
		for _, it := range items {
			assert.NotEqual(t, title, it.Title, "self must never be recommended")
		}

		ranked := svc.rank(i)
		require.Len(t, ranked, store.Len()-1)
		for k := 1; k < len(ranked); k++ {
			assert.GreaterOrEqual(t, ranked[k-1].score, ranked[k].score)
			if ranked[k-1].score == ranked[k].score {
				assert.Less(t, ranked[k-1].idx, ranked[k].idx, "ties keep row order")
			}
		}
		for k, it := range items {
			assert.Equal(t, store.Entry(ranked[k].idx).Title, it.Title)
		}
	}
}

func TestRecommendFilterIdempotent(t *testing.T) {
	store := bigStore(t, 30)
	svc := NewService(store)
	f := Filters{Type: "tv show"}

	items, err := svc.Recommend(context.Background(), "Title 01", f)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	for _, it := range items {
		i, ok := store.Lookup(it.Title)
		require.True(t, ok)
		assert.True(t, f.match(store.Entry(i)))
	}
}

func TestRankNaNLast(t *testing.T) {
	entries := []catalog.Entry{{Title: "A"}, {Title: "B"}, {Title: "C"}}
	sim := mat.NewDense(3, 3, []float64{
		1, math.NaN(), 0.1,
		0, 1, 0,
		0, 0, 1,
	})
	store, err := catalog.NewStore(entries, sim)
	require.NoError(t, err)

	items, err := NewService(store).Recommend(context.Background(), "A", Filters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, titles(items))
}

func TestSuggest(t *testing.T) {
	entries := []catalog.Entry{
		{Title: "The Dark Knight"}, {Title: "Dark"}, {Title: "Dark"}, {Title: "Darkness Falls"},
		{Title: "Light"}, {Title: "Into the Dark"}, {Title: "DARK Waters"}, {Title: "Dark City"},
	}
	store, err := catalog.NewStore(entries, mat.NewDense(len(entries), len(entries), nil))
	require.NoError(t, err)
	svc := NewService(store)
	ctx := context.Background()

	got, err := svc.Suggest(ctx, "dark")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Dark Knight", "Dark", "Darkness Falls", "Into the Dark", "DARK Waters"}, got)

	got, err = svc.Suggest(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = svc.Suggest(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.Suggest(ctx, "LIG")
	require.NoError(t, err)
	assert.Equal(t, []string{"Light"}, got)
	for _, s := range got {
		assert.Contains(t, strings.ToLower(s), "lig")
	}
}

func TestYearUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Year
	}{
		{`{"year": 2019}`, 2019},
		{`{"year": "2019"}`, 2019},
		{`{"year": " 2020 "}`, 2020},
		{`{"year": 2019.7}`, 2019},
		{`{"year": "2019.5"}`, 0},
		{`{"year": "abc"}`, 0},
		{`{"year": ""}`, 0},
		{`{"year": null}`, 0},
		{`{"year": true}`, 0},
		{`{"year": 1e300}`, 0},
		{`{}`, 0},
	}
	for _, tt := range tests {
		var f Filters
		require.NoError(t, json.Unmarshal([]byte(tt.in), &f), tt.in)
		assert.Equal(t, tt.want, f.Year, tt.in)
	}
}
