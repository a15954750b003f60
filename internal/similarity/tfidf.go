// Package similarity builds a content similarity matrix from catalog text:
// TF-IDF vectors over genres, people, country and description, compared
// with cosine similarity.
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"goflix/internal/catalog"
)

const minTokenLen = 3

// Vector es un vector TF-IDF disperso, normalizado (L2) y ordenado por término.
type Vector struct {
	Terms   []int
	Weights []float64
}

// Document joins the text fields of e that feed the vectorizer.
func Document(e catalog.Entry) string {
	fields := []string{e.Genres, e.Director, e.Cast, e.Country, e.Description}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != catalog.Missing {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) >= minTokenLen {
			out = append(out, w)
		}
	}
	return out
}

// Vectorize calcula TF-IDF con idf suavizado: ln((1+n)/(1+df)) + 1.
// Los documentos sin tokens producen un vector vacío.
func Vectorize(docs []string) []Vector {
	vocab := make(map[string]int)
	counts := make([]map[int]int, len(docs))
	df := make(map[int]int)

	for i, d := range docs {
		c := make(map[int]int)
		for _, tok := range tokenize(d) {
			id, ok := vocab[tok]
			if !ok {
				id = len(vocab)
				vocab[tok] = id
			}
			c[id]++
		}
		for id := range c {
			df[id]++
		}
		counts[i] = c
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for id, f := range df {
		idf[id] = math.Log((1+n)/(1+float64(f))) + 1
	}

	vecs := make([]Vector, len(docs))
	for i, c := range counts {
		v := Vector{Terms: make([]int, 0, len(c)), Weights: make([]float64, 0, len(c))}
		for id := range c {
			v.Terms = append(v.Terms, id)
		}
		sort.Ints(v.Terms)

		var norm float64
		for _, id := range v.Terms {
			w := float64(c[id]) * idf[id]
			v.Weights = append(v.Weights, w)
			norm += w * w
		}
		if norm > 0 {
			inv := 1 / math.Sqrt(norm)
			for k := range v.Weights {
				v.Weights[k] *= inv
			}
		}
		vecs[i] = v
	}
	return vecs
}
