// Package service provides business logic for the clip store gateway.
package service

import (
	"context"
	"time"

	"github.com/systok/clip-feed-go/internal/db"
	"github.com/systok/clip-feed-go/internal/db/repository"
	"github.com/systok/clip-feed-go/internal/models"
	"github.com/systok/clip-feed-go/internal/validation"
	"github.com/systok/clip-feed-go/pkg/logger"

	"go.uber.org/zap"
)

const (
	// DefaultListLimit applies when the caller does not supply a limit.
	DefaultListLimit = 20
	// MaxListLimit caps a caller-supplied limit.
	MaxListLimit = 100
)

// Engagement event names published to the broker.
const (
	EventClipCreated    = "clip.created"
	EventClipLiked      = "clip.liked"
	EventClipBookmarked = "clip.bookmarked"
)

// EngagementEvent is the message emitted after a successful store mutation.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type EngagementEvent struct {
	Event      string    `json:"event"`
	ClipID     string    `json:"clip_id"`
	Topic      string    `json:"topic,omitempty"`
	Delta      int64     `json:"delta,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes engagement events. Implementations must be safe
// for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, event *EngagementEvent) error
	Close() error
}

// ClipService implements the clip store gateway operations.
type ClipService struct {
	repo      repository.ClipRepository
	publisher EventPublisher
	validator *validation.Validator
}

// NewClipService creates a ClipService. publisher may be nil, in which case
// no engagement events are emitted.
func NewClipService(repo repository.ClipRepository, publisher EventPublisher, validator *validation.Validator) *ClipService {
	return &ClipService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
	}
}

// ListClips returns clips most-recently-stored-first. An out-of-range limit
// falls back to DefaultListLimit.
func (s *ClipService) ListClips(ctx context.Context, topic, tag string, limit int) ([]*models.Clip, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	clips, err := s.repo.List(ctx, repository.ClipFilters{
		Topic: topic,
		Tag:   tag,
		Limit: limit,
	})
	if err != nil {
		return nil, &StoreError{Message: "failed to list clips", Cause: err}
	}

	return clips, nil
}

// CreateClip validates and persists a clip, returning the store-assigned
// identifier.
func (s *ClipService) CreateClip(ctx context.Context, req *models.CreateClipRequest) (string, error) {
	if err := s.validator.ValidateClip(req); err != nil {
		return "", &ValidationError{Message: err.Error()}
	}

	clip := req.Clip()
	id, err := s.repo.Insert(ctx, clip)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return "", &ValidationError{Message: "a clip with this id already exists"}
		}
		return "", &StoreError{Message: "failed to create clip", Cause: err}
	}

	s.publish(ctx, &EngagementEvent{
		Event:      EventClipCreated,
		ClipID:     id.String(),
		Topic:      clip.Topic,
		OccurredAt: time.Now().UTC(),
	})

	return id.String(), nil
}

// ApplyCounterDelta applies a like or bookmark delta to the clip addressed
// by the request. The identifier is resolved native-first: a UUID matches
// the store key, anything else the document's own id field.
func (s *ClipService) ApplyCounterDelta(ctx context.Context, counter models.Counter, req *models.CounterActionRequest) error {
	if !counter.Valid() {
		return &ValidationError{Message: "unknown counter: " + string(counter)}
	}

	if err := s.validator.ValidateCounterAction(req); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	ref := models.ParseClipRef(req.ClipID)

	if err := s.repo.ApplyCounterDelta(ctx, counter, ref, req.Delta); err != nil {
		if db.IsNotFound(err) {
			return &NotFoundError{ClipID: req.ClipID}
		}
		return &StoreError{Message: "failed to apply counter delta", Cause: err}
	}

	event := EventClipLiked
	if counter == models.CounterBookmarks {
		event = EventClipBookmarked
	}
	s.publish(ctx, &EngagementEvent{
		Event:      event,
		ClipID:     req.ClipID,
		Delta:      req.Delta,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

// Seed inserts the fixed sample clips when the store is empty. Calling it
// again is a no-op.
func (s *ClipService) Seed(ctx context.Context) (*models.SeedResponse, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, &StoreError{Message: "failed to count clips", Cause: err}
	}

	if count > 0 {
		return &models.SeedResponse{Message: "Already seeded"}, nil
	}

	inserted, err := s.repo.InsertMany(ctx, seedClips())
	if err != nil {
		return nil, &StoreError{Message: "failed to seed clips", Cause: err}
	}

	return &models.SeedResponse{Inserted: inserted}, nil
}

// publish emits an engagement event best-effort. The store mutation already
// succeeded; a broker failure must not fail the request.
func (s *ClipService) publish(ctx context.Context, event *EngagementEvent) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Log.Warn("failed to publish engagement event",
			zap.Error(err),
			zap.String("event", event.Event),
			zap.String("clipId", event.ClipID),
		)
	}
}
