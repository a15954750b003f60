package recommend

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"goflix/internal/catalog"
)

const (
	MaxResults     = 10
	MaxSuggestions = 5
)

// ErrNotFound is the only domain error: the title is not in the catalog.
var ErrNotFound = errors.New("recommend: title not found")

// NotFoundMessage is the text clients receive for ErrNotFound.
const NotFoundMessage = "No such Movie/TV Show found"

// Item is the public projection of a catalog row.
type Item struct {
	Title       string `json:"title"`
	Genres      string `json:"listed_in"`
	ReleaseYear int    `json:"release_year"`
	Type        string `json:"type"`
	AgeGroup    string `json:"age_group"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
}

func itemFrom(e catalog.Entry) Item {
	return Item{
		Title:       e.Title,
		Genres:      e.Genres,
		ReleaseYear: e.ReleaseYear,
		Type:        e.Type,
		AgeGroup:    e.AgeGroup,
		Director:    e.Director,
		Cast:        e.Cast,
		Rating:      e.Rating,
		Duration:    e.Duration,
	}
}

// Service defines the contract for recommendation logic.
type Service interface {
	Recommend(ctx context.Context, title string, f Filters) ([]Item, error)
	Suggest(ctx context.Context, query string) ([]string, error)
}

type recommendService struct {
	store *catalog.Store
}

func NewService(store *catalog.Store) Service {
	return &recommendService{store: store}
}

type neighbor struct {
	idx   int
	score float64
}

// rank devuelve todos los demás títulos ordenados por similitud descendente.
// El propio título se excluye por índice, no por posición tras ordenar.
// Empates conservan el orden de fila (sort estable); NaN va al final.
func (s *recommendService) rank(idx int) []neighbor {
	row := s.store.Scores(idx)
	out := make([]neighbor, 0, len(row)-1)
	for j, v := range row {
		if j == idx {
			continue
		}
		if math.IsNaN(v) {
			v = math.Inf(-1)
		}
		out = append(out, neighbor{idx: j, score: v})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].score > out[b].score })
	return out
}

func (s *recommendService) Recommend(_ context.Context, title string, f Filters) ([]Item, error) {
	idx, ok := s.store.Lookup(title)
	if !ok {
		return nil, ErrNotFound
	}

	items := make([]Item, 0, MaxResults)
	for _, n := range s.rank(idx) {
		e := s.store.Entry(n.idx)
		if !f.match(e) {
			continue
		}
		items = append(items, itemFrom(e))
		if len(items) == MaxResults {
			break
		}
	}
	return items, nil
}

func (s *recommendService) Suggest(_ context.Context, query string) ([]string, error) {
	out := []string{}
	q := strings.ToLower(query)
	if q == "" {
		return out, nil
	}

	seen := make(map[string]struct{}, MaxSuggestions)
	for _, e := range s.store.Entries() {
		if _, dup := seen[e.Title]; dup {
			continue
		}
		if strings.Contains(strings.ToLower(e.Title), q) {
			seen[e.Title] = struct{}{}
			out = append(out, e.Title)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out, nil
}
