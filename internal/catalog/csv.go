package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrMissingTitleColumn = errors.New("catalog: header has no title column")

// LoadCSV lee el dataset (estilo Netflix titles) y devuelve las filas en el
// mismo orden del archivo. Ese orden es el de la matriz de similitud.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo catálogo: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses a catalog from r. Columns are located by header name so
// extra or reordered columns are fine; only "title" is required.
func ReadCSV(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leyendo encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	if _, ok := cols["title"]; !ok {
		return nil, ErrMissingTitleColumn
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var entries []Entry
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leyendo registro %d: %w", len(entries)+1, err)
		}

		year, _ := strconv.Atoi(strings.TrimSpace(field(rec, "release_year")))
		entries = append(entries, normalize(Entry{
			Title:       field(rec, "title"),
			Genres:      field(rec, "listed_in"),
			ReleaseYear: year,
			Type:        field(rec, "type"),
			AgeGroup:    field(rec, "age_group"),
			Director:    field(rec, "director"),
			Cast:        field(rec, "cast"),
			Rating:      field(rec, "rating"),
			Duration:    field(rec, "duration"),
			Country:     field(rec, "country"),
			Description: field(rec, "description"),
		}))
	}

	if len(entries) == 0 {
		return nil, errors.New("catalog: dataset has no rows")
	}
	return entries, nil
}
