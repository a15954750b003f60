package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

var ErrNotSquare = errors.New("catalog: similarity matrix is not square")

// LoadMatrix lee la matriz de similitud precalculada (.npy de numpy).
func LoadMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo matriz: %w", err)
	}
	defer f.Close()
	return ReadMatrix(f)
}

// ReadMatrix decodes an N×N .npy array. float32 and Fortran ordered arrays
// are converted to a row-major float64 matrix.
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	rd, err := npyio.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("leyendo cabecera npy: %w", err)
	}
	shape := rd.Header.Descr.Shape
	if len(shape) != 2 || shape[0] != shape[1] || shape[0] == 0 {
		return nil, fmt.Errorf("%w: shape %v", ErrNotSquare, shape)
	}
	n := shape[0]

	var data []float64
	switch rd.Header.Descr.Type {
	case "<f4", "f4", ">f4":
		var raw []float32
		if err := rd.Read(&raw); err != nil {
			return nil, fmt.Errorf("leyendo datos npy: %w", err)
		}
		data = make([]float64, len(raw))
		for i, v := range raw {
			data[i] = float64(v)
		}
	default:
		if err := rd.Read(&data); err != nil {
			return nil, fmt.Errorf("leyendo datos npy: %w", err)
		}
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("catalog: matrix has %d values, want %d", len(data), n*n)
	}

	m := mat.NewDense(n, n, data)
	if rd.Header.Descr.Fortran {
		var t mat.Dense
		t.CloneFrom(m.T())
		return &t, nil
	}
	return m, nil
}

// WriteMatrix guarda m en formato .npy (float64, orden C).
func WriteMatrix(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creando %s: %w", path, err)
	}
	if err := npyio.Write(f, m); err != nil {
		f.Close()
		return fmt.Errorf("escribiendo npy: %w", err)
	}
	return f.Close()
}
