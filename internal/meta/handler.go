package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/config"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/database"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 5 * time.Second

// Handler serves /health
type Handler struct {
	cfg *config.Config
	db  *database.DB
}

func NewHandler(cfg *config.Config, db *database.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}

type serviceInfo struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
	Port        int    `json:"port,omitempty"`
}

type databaseCheck struct {
	Status    string              `json:"status"`
	Driver    string              `json:"driver"`
	LatencyMs int64               `json:"latency_ms,omitempty"`
	Pool      *database.PoolStats `json:"pool,omitempty"`
	Error     string              `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string      `json:"status"`
	Service serviceInfo `json:"service"`
	Checks  struct {
		Database databaseCheck `json:"database"`
	} `json:"checks"`
}

// Health pings the database; 503 when it is unreachable
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	response := healthResponse{
		Status:  "healthy",
		Service: serviceInfo{Name: h.cfg.App.Name, Environment: h.cfg.App.Env},
	}
	response.Checks.Database = databaseCheck{Status: "up", Driver: h.db.Driver()}

	start := time.Now()
	pool, err := h.db.HealthCheck(ctx)
	if err != nil {
		slog.Error("Health check 실패", "error", err)

		response.Status = "unhealthy"
		response.Checks.Database.Status = "down"
		response.Checks.Database.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response.Service.Port = h.cfg.App.Port
	response.Checks.Database.LatencyMs = time.Since(start).Milliseconds()
	response.Checks.Database.Pool = &pool
	c.JSON(http.StatusOK, response)
}
