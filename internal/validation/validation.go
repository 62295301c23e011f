// Package validation checks incoming clip payloads against the store schema.
package validation

import (
	"fmt"
	"net/url"

	"github.com/systok/clip-feed-go/internal/models"
)

// Validator validates clip payloads and counter actions.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// ValidateClip checks a clip creation payload: required fields present,
// URLs well formed, counters non-negative. Difficulty is a convention label
// and is deliberately not enforced.
func (v *Validator) ValidateClip(req *models.CreateClipRequest) error {
	if req.Title == "" {
		return fmt.Errorf("title is required")
	}

	if req.Topic == "" {
		return fmt.Errorf("topic is required")
	}

	if req.VideoURL == "" {
		return fmt.Errorf("video_url is required")
	}

	if !isValidURL(req.VideoURL) {
		return fmt.Errorf("video_url is not a valid URL: %s", req.VideoURL)
	}

	if req.ThumbnailURL != "" && !isValidURL(req.ThumbnailURL) {
		return fmt.Errorf("thumbnail_url is not a valid URL: %s", req.ThumbnailURL)
	}

	if req.Likes < 0 {
		return fmt.Errorf("likes must not be negative")
	}

	if req.Bookmarks < 0 {
		return fmt.Errorf("bookmarks must not be negative")
	}

	return nil
}

// ValidateCounterAction checks a like/bookmark mutation request. Delta is
// restricted to exactly +1 or -1.
func (v *Validator) ValidateCounterAction(req *models.CounterActionRequest) error {
	if req.ClipID == "" {
		return fmt.Errorf("clip_id is required")
	}

	if req.Delta != 1 && req.Delta != -1 {
		return fmt.Errorf("delta must be +1 or -1, got %d", req.Delta)
	}

	return nil
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
