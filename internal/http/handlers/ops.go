package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyaktech/tlq/internal/service"
)

// Ops implements the liveness and stats endpoints: GET /healthz and
// GET /stats. Neither mutates queue state.
type Ops struct {
	stats *service.StatsService
}

// NewOps constructs an Ops handler bound to stats.
func NewOps(stats *service.StatsService) *Ops {
	return &Ops{stats: stats}
}

// Healthz handles GET /healthz.
func (h *Ops) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Stats handles GET /stats.
func (h *Ops) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Snapshot())
}
