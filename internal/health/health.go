package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goflix/internal/catalog"
)

type Status struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
}

// Pinger is satisfied by the MongoDB service and by a small adapter around
// the Redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Service interface {
	Check(ctx context.Context) Status
}

type healthService struct {
	store   *catalog.Store
	mongo   Pinger
	redis   Pinger
	timeout time.Duration
}

// NewService builds the checker. mongo and redis may be nil when the
// dependency is not configured; they are then reported as "disabled".
func NewService(store *catalog.Store, mongo, redis Pinger) Service {
	return &healthService{store: store, mongo: mongo, redis: redis, timeout: 2 * time.Second}
}

func (s *healthService) Check(ctx context.Context) Status {
	services := make(map[string]interface{})
	overall := "ok"

	services["catalog"] = map[string]interface{}{
		"status":      "ok",
		"titles":      s.store.Len(),
		"fingerprint": s.store.Fingerprint(),
	}

	for name, p := range map[string]Pinger{"mongodb": s.mongo, "redis": s.redis} {
		if p == nil {
			services[name] = map[string]string{"status": "disabled"}
			continue
		}
		pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := p.Ping(pingCtx)
		cancel()
		if err != nil {
			overall = "degraded"
			services[name] = map[string]string{"status": "down", "error": err.Error()}
			continue
		}
		services[name] = map[string]string{"status": "ok"}
	}

	return Status{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  services,
	}
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/health", h.HealthCheck)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	status := h.svc.Check(c.Request.Context())
	httpStatus := http.StatusOK
	if status.Status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, status)
}
