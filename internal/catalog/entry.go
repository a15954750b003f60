package catalog

import "strings"

// Missing es el valor que reemplaza cualquier celda vacía del catálogo.
const Missing = "NA"

// Entry is one row of the catalog. Row position is its identity: it is the
// same index used by the similarity matrix.
type Entry struct {
	Title       string
	Genres      string // listed_in, separado por comas
	ReleaseYear int    // 0 when the source value was missing or not a number
	Type        string
	AgeGroup    string
	Director    string
	Cast        string
	Rating      string
	Duration    string
	Country     string
	Description string
}

// GenreList splits the comma separated genres, trimmed, without the sentinel.
func (e Entry) GenreList() []string {
	if e.Genres == Missing {
		return nil
	}
	parts := strings.Split(e.Genres, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != Missing {
			out = append(out, p)
		}
	}
	return out
}

// naValues son los marcadores de celda vacía habituales en exportaciones CSV.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func orMissing(s string) string {
	if _, ok := naValues[strings.TrimSpace(s)]; ok {
		return Missing
	}
	return s
}

func normalize(e Entry) Entry {
	e.Title = orMissing(e.Title)
	e.Genres = orMissing(e.Genres)
	e.Type = orMissing(e.Type)
	e.AgeGroup = orMissing(e.AgeGroup)
	e.Director = orMissing(e.Director)
	e.Cast = orMissing(e.Cast)
	e.Rating = orMissing(e.Rating)
	e.Duration = orMissing(e.Duration)
	e.Country = orMissing(e.Country)
	e.Description = orMissing(e.Description)
	return e
}
