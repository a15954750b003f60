package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"goflix/internal/catalog"
)

type CatalogStats struct {
	Titles      int    `json:"titles"`
	MatrixDims  [2]int `json:"matrix_dims"`
	MatrixBytes int64  `json:"matrix_bytes"`
	Fingerprint string `json:"fingerprint"`
}

type SystemStats struct {
	// Process specific
	NumGoroutine int    `json:"num_goroutine"`
	Alloc        uint64 `json:"alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`

	// System wide
	TotalRAM        uint64                 `json:"total_ram"`
	AvailableRAM    uint64                 `json:"available_ram"`
	UsedRAMPercent  float64                `json:"used_ram_percent"`
	TotalCPUCores   int                    `json:"total_cpu_cores"`
	CPUUsagePercent []float64              `json:"cpu_usage_percent"`
	CPUTemperatures []host.TemperatureStat `json:"cpu_temperatures"`
}

type MonitoringStatus struct {
	Timestamp time.Time    `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Catalog   CatalogStats `json:"catalog"`
	System    SystemStats  `json:"system"`
}

type Service interface {
	GetStatus(ctx context.Context) MonitoringStatus
}

type monitoringService struct {
	store   *catalog.Store
	started time.Time
}

func NewService(store *catalog.Store) Service {
	return &monitoringService{store: store, started: time.Now()}
}

func (s *monitoringService) GetStatus(ctx context.Context) MonitoringStatus {
	n := s.store.Len()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	// Los errores de gopsutil se ignoran: en contenedores sin /sys algunos
	// sensores no existen y el resto de la información sigue siendo útil.
	vMem, _ := mem.VirtualMemoryWithContext(ctx)
	cpuPercent, _ := cpu.PercentWithContext(ctx, 0, true)
	temps, _ := host.SensorsTemperaturesWithContext(ctx)

	sysStats := SystemStats{
		NumGoroutine:    runtime.NumGoroutine(),
		Alloc:           memStats.Alloc,
		Sys:             memStats.Sys,
		NumGC:           memStats.NumGC,
		TotalCPUCores:   runtime.NumCPU(),
		CPUUsagePercent: cpuPercent,
		CPUTemperatures: temps,
	}
	if vMem != nil {
		sysStats.TotalRAM = vMem.Total
		sysStats.AvailableRAM = vMem.Available
		sysStats.UsedRAMPercent = vMem.UsedPercent
	}

	return MonitoringStatus{
		Timestamp: time.Now(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Catalog: CatalogStats{
			Titles:      n,
			MatrixDims:  [2]int{n, n},
			MatrixBytes: int64(n) * int64(n) * 8,
			Fingerprint: s.store.Fingerprint(),
		},
		System: sysStats,
	}
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/monitoring", h.GetMonitoringStatus)
}

func (h *Handler) GetMonitoringStatus(c *gin.Context) {
	status := h.svc.GetStatus(c.Request.Context())
	c.JSON(http.StatusOK, status)
}
