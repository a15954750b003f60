package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"goflix/pkg/styles"
)

// Options says where the artifacts live. When Collection is set the rows
// come from MongoDB and DataPath is ignored.
type Options struct {
	DataPath   string
	MatrixPath string
	Collection *mongo.Collection
}

// Load reads the catalog and the similarity matrix and builds the Store.
// Any error means the process must not serve.
func Load(ctx context.Context, opts Options) (*Store, error) {
	start := time.Now()

	var (
		entries []Entry
		err     error
	)
	if opts.Collection != nil {
		entries, err = LoadMongo(ctx, opts.Collection)
	} else {
		entries, err = LoadCSV(opts.DataPath)
	}
	if err != nil {
		return nil, fmt.Errorf("cargando catálogo: %w", err)
	}

	sim, err := LoadMatrix(opts.MatrixPath)
	if err != nil {
		return nil, fmt.Errorf("cargando matriz %s: %w", opts.MatrixPath, err)
	}

	store, err := NewStore(entries, sim)
	if err != nil {
		return nil, err
	}

	r, c := store.Dims()
	log.Print(styles.SprintfS("success", "[CATALOG] %d títulos y matriz %dx%d cargados en %s",
		store.Len(), r, c, time.Since(start).Round(time.Millisecond)))
	return store, nil
}
