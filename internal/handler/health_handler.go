package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/systok/clip-feed-go/internal/db"
	"github.com/systok/clip-feed-go/internal/models"
	"github.com/systok/clip-feed-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	diagnosticsTableLimit = 10
	diagnosticsTimeout    = 2 * time.Second
)

// HealthHandler serves the root status message and the store connectivity
// diagnostic.
type HealthHandler struct {
	pool           *pgxpool.Pool
	databaseURLSet bool
}

// NewHealthHandler creates a new HealthHandler instance. pool may be nil
// when the store is not configured.
func NewHealthHandler(pool *pgxpool.Pool, databaseURLSet bool) *HealthHandler {
	return &HealthHandler{
		pool:           pool,
		databaseURLSet: databaseURLSet,
	}
}

// Root reports that the backend is running.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Message: "SysTok backend is running",
	})
}

// Diagnostics describes store connectivity: whether the database is
// reachable, which database is connected and which tables exist.
func (h *HealthHandler) Diagnostics(c *gin.Context) {
	resp := models.DiagnosticsResponse{
		Backend:          "running",
		Database:         "not available",
		DatabaseURLSet:   h.databaseURLSet,
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}

	if h.pool == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), diagnosticsTimeout)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		logger.Log.Warn("diagnostics ping failed", zap.Error(err))
		resp.Database = "error: " + truncate(err.Error(), 50)
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Database = "connected"
	resp.ConnectionStatus = "connected"
	resp.DatabaseName = h.pool.Config().ConnConfig.Database

	tables, err := db.ListCollections(ctx, h.pool, diagnosticsTableLimit)
	if err != nil {
		logger.Log.Warn("diagnostics table listing failed", zap.Error(err))
		resp.Database = "connected with errors: " + truncate(err.Error(), 50)
	} else {
		resp.Collections = tables
	}

	c.JSON(http.StatusOK, resp)
}
