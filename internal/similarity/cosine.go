package similarity

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// dot de dos vectores dispersos ordenados (merge por término).
// Como están normalizados, es directamente el coseno.
func dot(a, b Vector) float64 {
	var s float64
	i, j := 0, 0
	for i < len(a.Terms) && j < len(b.Terms) {
		switch {
		case a.Terms[i] == b.Terms[j]:
			s += a.Weights[i] * b.Weights[j]
			i++
			j++
		case a.Terms[i] < b.Terms[j]:
			i++
		default:
			j++
		}
	}
	return s
}

// CosineMatrix computes the N×N cosine matrix of vecs. Rows are split in
// blocks handed to a pool of workers; each worker writes only its own rows.
// workers <= 0 uses runtime.NumCPU().
func CosineMatrix(vecs []Vector, workers int) *mat.Dense {
	n := len(vecs)
	if n == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := mat.NewDense(n, n, nil)

	// intenta dar ~4 bloques por worker
	block := (n + workers*4 - 1) / (workers * 4)
	if block < 16 {
		block = 16
	}

	type rng struct{ i0, i1 int }
	jobs := make(chan rng, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				for i := r.i0; i < r.i1; i++ {
					row := out.RawRowView(i)
					for j := 0; j < n; j++ {
						row[j] = dot(vecs[i], vecs[j])
					}
				}
			}
		}()
	}

	for i0 := 0; i0 < n; i0 += block {
		i1 := i0 + block
		if i1 > n {
			i1 = n
		}
		jobs <- rng{i0, i1}
	}
	close(jobs)
	wg.Wait()

	return out
}
