// Command seed sube el catálogo CSV a MongoDB conservando el orden de filas,
// para poder arrancar la API con CATALOG_SOURCE=mongo.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"goflix/internal/catalog"
	"goflix/internal/config"
	"goflix/internal/plattform"
	"goflix/pkg/styles"
)

func main() {
	cfg := config.FromEnv()

	csvPath := flag.String("input", cfg.DataPath, "Ruta al CSV del catálogo")
	uri := flag.String("uri", cfg.MongoURI, "URI de conexión a MongoDB")
	dbName := flag.String("db", cfg.MongoDBName, "Nombre de la base de datos")
	collName := flag.String("collection", cfg.MongoCollection, "Nombre de la colección")
	timeout := flag.Duration("timeout", 30*time.Minute, "Tiempo máximo de la carga")
	flag.Parse()

	styles.PrintFS("info", "Cargador de catálogo a MongoDB")

	entries, err := catalog.LoadCSV(*csvPath)
	if err != nil {
		log.Fatal(styles.SprintfS("error", "Error cargando CSV: %v", err))
	}
	styles.PrintFS("success", "Leídas %d filas desde %s", len(entries), *csvPath)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	mongoSvc, err := plattform.NewClient(ctx, *uri)
	if err != nil {
		log.Fatal(styles.SprintfS("error", "Error conectando a MongoDB: %v", err))
	}
	defer mongoSvc.Disconnect(context.Background())

	start := time.Now()
	n, err := catalog.SeedMongo(ctx, mongoSvc.GetCollection(*dbName, *collName), entries)
	if err != nil {
		log.Fatal(styles.SprintfS("error", "Error tras %d filas: %v", n, err))
	}
	styles.PrintFS("success", "%d filas escritas en %s.%s (%.2fs)", n, *dbName, *collName, time.Since(start).Seconds())
}
