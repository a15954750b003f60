// Package home serves the data the front-end needs to build its filter form.
package home

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goflix/internal/catalog"
	"goflix/internal/config"
)

type response struct {
	catalog.Facets
	TMDB config.TMDB `json:"tmdb"`
}

type Handler struct {
	resp response
}

// NewHandler precomputes the response; the catalog never changes after startup.
func NewHandler(store *catalog.Store, tmdb config.TMDB) *Handler {
	return &Handler{resp: response{Facets: store.Facets(), TMDB: tmdb}}
}

func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/", h.Index)
	g.GET("/facets", h.Index)
}

func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, h.resp)
}
