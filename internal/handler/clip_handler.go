// Package handler contains the HTTP handlers for the clip feed API.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/systok/clip-feed-go/internal/metrics"
	"github.com/systok/clip-feed-go/internal/models"
	"github.com/systok/clip-feed-go/internal/service"
	"github.com/systok/clip-feed-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxStoreErrorLength bounds store failure detail leaked to clients.
const maxStoreErrorLength = 120

// ClipHandler handles clip CRUD and counter mutation requests.
type ClipHandler struct {
	clipService *service.ClipService
}

// NewClipHandler creates a new ClipHandler instance.
func NewClipHandler(clipService *service.ClipService) *ClipHandler {
	return &ClipHandler{
		clipService: clipService,
	}
}

// ListClips returns stored clips, newest first. Query parameters: topic
// (exact match), tag (membership), limit.
func (h *ClipHandler) ListClips(c *gin.Context) {
	topic := c.Query("topic")
	tag := c.Query("tag")

	limit := service.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.handleError(c, &service.ValidationError{Message: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	clips, err := h.clipService.ListClips(c.Request.Context(), topic, tag, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, clips)
}

// CreateClip validates and persists a new clip.
func (h *ClipHandler) CreateClip(c *gin.Context) {
	var req models.CreateClipRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, &service.ValidationError{Message: "invalid request payload: " + err.Error()})
		return
	}

	id, err := h.clipService.CreateClip(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	metrics.ClipsCreatedTotal.Inc()

	logger.Log.Info("clip created",
		zap.String("clipId", id),
		zap.String("topic", req.Topic),
	)

	c.JSON(http.StatusCreated, models.CreateClipResponse{ID: id})
}

// Like applies a like delta to a clip.
func (h *ClipHandler) Like(c *gin.Context) {
	h.applyCounter(c, models.CounterLikes)
}

// Bookmark applies a bookmark delta to a clip.
func (h *ClipHandler) Bookmark(c *gin.Context) {
	h.applyCounter(c, models.CounterBookmarks)
}

func (h *ClipHandler) applyCounter(c *gin.Context, counter models.Counter) {
	var req models.CounterActionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, &service.ValidationError{Message: "invalid request payload: " + err.Error()})
		return
	}

	if err := h.clipService.ApplyCounterDelta(c.Request.Context(), counter, &req); err != nil {
		h.handleError(c, err)
		return
	}

	metrics.CounterMutationsTotal.WithLabelValues(string(counter)).Inc()

	c.JSON(http.StatusOK, models.CounterActionResponse{OK: true})
}

// Seed inserts the fixed example clips when the store is empty.
func (h *ClipHandler) Seed(c *gin.Context) {
	resp, err := h.clipService.Seed(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	if resp.Inserted > 0 {
		logger.Log.Info("store seeded", zap.Int("inserted", resp.Inserted))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ClipHandler) handleError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *service.ValidationError:
		logger.Log.Warn("validation error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:    http.StatusBadRequest,
			Error:     "Bad Request",
			Message:   e.Message,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case *service.NotFoundError:
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:    http.StatusNotFound,
			Error:     "Not Found",
			Message:   "Clip not found",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case *service.StoreError:
		logger.Log.Error("store error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Message:   truncate(e.Error(), maxStoreErrorLength),
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	default:
		logger.Log.Error("unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     "Internal Server Error",
			Message:   "An unexpected error occurred",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
