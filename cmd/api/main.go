package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"goflix/internal/cache"
	"goflix/internal/catalog"
	"goflix/internal/config"
	"goflix/internal/health"
	"goflix/internal/httpserver"
	"goflix/internal/plattform"
	"goflix/internal/recommend"
	"goflix/pkg/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatal(styles.SprintfS("error", "%v", err))
	}
}

// run arranca el servicio; sus defers se ejecutan siempre antes de salir.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("[CONFIG] %w", err)
	}
	gin.SetMode(cfg.GinMode)

	deps := httpserver.Deps{}
	opts := catalog.Options{DataPath: cfg.DataPath, MatrixPath: cfg.MatrixPath}

	if cfg.CatalogSource == config.SourceMongo {
		mongoSvc, err := plattform.ConnectWithRetry(ctx, cfg.MongoURI, cfg.MongoRetryInterval, cfg.MongoMaxRetries)
		if err != nil {
			return fmt.Errorf("[MONGO] %w", err)
		}
		defer mongoSvc.Disconnect(context.Background())
		opts.Collection = mongoSvc.GetCollection(cfg.MongoDBName, cfg.MongoCollection)
		deps.Mongo = mongoSvc
	}

	store, err := catalog.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("[CATALOG] %w", err)
	}
	deps.Store = store
	deps.Recommend = recommend.NewService(store)

	if cfg.CacheEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Print(styles.SprintfS("warn", "[REDIS] Cache deshabilitada: %v", err))
		} else {
			defer rdb.Close()
			deps.Recommend = recommend.NewCachedService(deps.Recommend, rdb, cfg.CacheTTL, store.Fingerprint())
			deps.Redis = health.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		}
	}

	router := httpserver.NewRouter(cfg, deps)
	if err := httpserver.Run(ctx, cfg.HTTPAddr, router, cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("[HTTP] %w", err)
	}
	return nil
}
