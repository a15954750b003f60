// Command simbuild genera una matriz de similitud coseno (TF-IDF) a partir
// del CSV del catálogo y la guarda en .npy, alineada con el orden de filas.
// Sirve para entornos de desarrollo; en producción la matriz viene del
// pipeline de entrenamiento.
package main

import (
	"flag"
	"log"
	"runtime"
	"time"

	"goflix/internal/catalog"
	"goflix/internal/config"
	"goflix/internal/similarity"
	"goflix/pkg/styles"
)

func main() {
	cfg := config.FromEnv()

	input := flag.String("input", cfg.DataPath, "Ruta al CSV del catálogo")
	output := flag.String("output", cfg.MatrixPath, "Ruta del .npy de salida")
	workers := flag.Int("workers", runtime.NumCPU(), "Goroutines para el cálculo de cosenos")
	flag.Parse()

	entries, err := catalog.LoadCSV(*input)
	if err != nil {
		log.Fatal(styles.SprintfS("error", "Error cargando CSV: %v", err))
	}
	styles.PrintFS("info", "Vectorizando %d títulos...", len(entries))

	docs := make([]string, len(entries))
	for i, e := range entries {
		docs[i] = similarity.Document(e)
	}

	start := time.Now()
	vecs := similarity.Vectorize(docs)
	m := similarity.CosineMatrix(vecs, *workers)
	styles.PrintFS("success", "Matriz %dx%d calculada en %v (%d workers)", len(entries), len(entries), time.Since(start), *workers)

	if err := catalog.WriteMatrix(*output, m); err != nil {
		log.Fatal(styles.SprintfS("error", "Error guardando matriz: %v", err))
	}
	styles.PrintFS("success", "Matriz guardada en %s", *output)
}
