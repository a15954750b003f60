package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"goflix/internal/catalog"
	"goflix/internal/config"
	"goflix/internal/health"
	"goflix/internal/home"
	"goflix/internal/monitoring"
	"goflix/internal/recommend"
	"goflix/pkg/styles"
)

// Deps is everything the router needs. Store and Recommend are required;
// Mongo and Redis are only used by the health check and may be nil.
type Deps struct {
	Store     *catalog.Store
	Recommend recommend.Service
	Mongo     health.Pinger
	Redis     health.Pinger
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(RequestID())
	r.Use(accessLog())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.CORSOrigins))

	root := &r.RouterGroup

	home.NewHandler(deps.Store, cfg.TMDB).RegisterRoutes(root)
	recommend.NewHandler(deps.Recommend).RegisterRoutes(root)
	health.NewHandler(health.NewService(deps.Store, deps.Mongo, deps.Redis)).RegisterRoutes(root)
	monitoring.NewHandler(monitoring.NewService(deps.Store)).RegisterRoutes(root)

	// Same endpoints under /api for clients behind a path-based proxy.
	api := r.Group("/api")
	recommend.NewHandler(deps.Recommend).RegisterRoutes(api)

	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowHeaders = append(c.AllowHeaders, requestIDHeader)
	c.ExposeHeaders = []string{requestIDHeader}
	return cors.New(c)
}

// Run sirve h en addr hasta que ctx se cancele y luego apaga el servidor
// esperando como máximo shutdownTimeout.
func Run(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Print(styles.SprintfS("info", "[HTTP] Escuchando en %s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Print(styles.SprintfS("info", "[HTTP] Apagando servidor..."))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
