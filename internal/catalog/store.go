package catalog

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"
)

// Store bundles the catalog rows, the similarity matrix and the title index.
// It is built once at startup and never mutated; any number of goroutines
// may read it concurrently.
type Store struct {
	entries     []Entry
	sim         *mat.Dense
	index       map[string]int
	facets      Facets
	fingerprint string
}

// Facets lists the distinct values used to populate the filter UI.
type Facets struct {
	Genres    []string `json:"genres"`
	Years     []int    `json:"years"`
	Types     []string `json:"types"`
	AgeGroups []string `json:"age_groups"`
}

// NewStore checks that the matrix is aligned with entries and builds the
// title index. Duplicate titles keep the first row.
func NewStore(entries []Entry, sim *mat.Dense) (*Store, error) {
	if sim == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrNotSquare)
	}
	r, c := sim.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	if r != len(entries) {
		return nil, fmt.Errorf("catalog: matrix is %dx%d but catalog has %d rows", r, c, len(entries))
	}

	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, ok := index[e.Title]; !ok {
			index[e.Title] = i
		}
	}

	s := &Store{entries: entries, sim: sim, index: index}
	s.facets = buildFacets(entries)
	s.fingerprint = fingerprint(entries, sim)
	return s, nil
}

func (s *Store) Len() int { return len(s.entries) }

// Lookup returns the row of title.
func (s *Store) Lookup(title string) (int, bool) {
	i, ok := s.index[title]
	return i, ok
}

func (s *Store) Entry(i int) Entry { return s.entries[i] }

// Entries exposes the backing slice. Callers must not modify it.
func (s *Store) Entries() []Entry { return s.entries }

// Scores returns row i of the similarity matrix without copying.
// Callers must not modify it.
func (s *Store) Scores(i int) []float64 { return s.sim.RawRowView(i) }

func (s *Store) Facets() Facets { return s.facets }

// Fingerprint identifies the loaded artifacts; it changes whenever a row
// field or a matrix value changes.
func (s *Store) Fingerprint() string { return s.fingerprint }

func buildFacets(entries []Entry) Facets {
	genres := map[string]struct{}{}
	years := map[int]struct{}{}
	types := map[string]struct{}{}
	ages := map[string]struct{}{}

	for _, e := range entries {
		for _, g := range e.GenreList() {
			genres[g] = struct{}{}
		}
		if e.ReleaseYear != 0 {
			years[e.ReleaseYear] = struct{}{}
		}
		if e.Type != Missing {
			types[e.Type] = struct{}{}
		}
		if e.AgeGroup != Missing {
			ages[e.AgeGroup] = struct{}{}
		}
	}

	f := Facets{
		Genres:    sortedKeys(genres),
		Years:     make([]int, 0, len(years)),
		Types:     sortedKeys(types),
		AgeGroups: sortedKeys(ages),
	}
	for y := range years {
		f.Years = append(f.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(f.Years)))
	return f
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// fingerprint hashes every served or filtered field plus the raw matrix, so
// any change to the artifacts yields a new cache namespace.
func fingerprint(entries []Entry, sim *mat.Dense) string {
	h := xxhash.New()
	var buf [8]byte
	writeInt := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeStr := func(v string) {
		writeInt(uint64(len(v)))
		_, _ = h.WriteString(v)
	}

	r, c := sim.Dims()
	writeInt(uint64(r))
	writeInt(uint64(c))
	for _, e := range entries {
		writeStr(e.Title)
		writeStr(e.Genres)
		writeInt(uint64(int64(e.ReleaseYear)))
		writeStr(e.Type)
		writeStr(e.AgeGroup)
		writeStr(e.Director)
		writeStr(e.Cast)
		writeStr(e.Rating)
		writeStr(e.Duration)
	}
	for i := 0; i < r; i++ {
		for _, v := range sim.RawRowView(i) {
			writeInt(math.Float64bits(v))
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Dims returns the size of the loaded similarity matrix.
func (s *Store) Dims() (int, int) { return s.sim.Dims() }
