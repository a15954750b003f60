package recommend

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers POST /recommend and GET /suggest on g.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/recommend", h.Recommend)
	g.GET("/suggest", h.Suggest)
}

type recommendRequest struct {
	Title   string  `json:"title"`
	Filters Filters `json:"filters"`
}

func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload inválido"})
		return
	}

	items, err := h.svc.Recommend(c.Request.Context(), req.Title, req.Filters)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": NotFoundMessage})
			return
		}
		log.Printf("[HTTP] Error recomendando %q: %v", req.Title, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error al calcular recomendaciones"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Suggest(c *gin.Context) {
	titles, err := h.svc.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Printf("[HTTP] Error sugiriendo títulos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error al buscar sugerencias"})
		return
	}
	c.JSON(http.StatusOK, titles)
}
