package recommend

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"goflix/internal/catalog"
)

// Filters are the optional facets applied after ranking. The zero value of
// every field means "no filter".
type Filters struct {
	Genre    string `json:"genre,omitempty"`
	Year     Year   `json:"year,omitempty"`
	Type     string `json:"type,omitempty"`
	AgeGroup string `json:"age_group,omitempty"`
}

// Year accepts either a JSON number or a numeric string. Anything it cannot
// read becomes 0, which disables the year filter instead of failing the request.
type Year int

func (y *Year) UnmarshalJSON(b []byte) error {
	*y = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*y = Year(n)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) < math.MaxInt32 {
		*y = Year(int(f))
	}
	return nil
}

func (f Filters) match(e catalog.Entry) bool {
	if f.Genre != "" && !strings.Contains(strings.ToLower(e.Genres), strings.ToLower(f.Genre)) {
		return false
	}
	if f.Year != 0 && e.ReleaseYear != int(f.Year) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(e.Type, f.Type) {
		return false
	}
	if f.AgeGroup != "" && !strings.EqualFold(e.AgeGroup, f.AgeGroup) {
		return false
	}
	return true
}
