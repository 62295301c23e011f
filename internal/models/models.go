// Package models contains the data models and DTOs for the clip feed service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty labels used by convention on clips. The store does not enforce
// them; they exist so seed data and clients agree on spelling.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Counter identifies a mutable engagement counter on a clip.
type Counter string

// Counter constants name the two engagement counters.
const (
	CounterLikes     Counter = "likes"
	CounterBookmarks Counter = "bookmarks"
)

// Valid reports whether the counter is one of the known engagement counters.
func (c Counter) Valid() bool {
	return c == CounterLikes || c == CounterBookmarks
}

// Clip is a short vertical-video lesson about a system software topic.
//
// ClipID is the store-assigned identifier and is never serialized into feed
// responses. ExternalID carries an identifier supplied by an external system
// at creation time, stored on the document itself as the `id` field.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Clip struct {
	ClipID       uuid.UUID `json:"-"`
	ExternalID   string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Topic        string    `json:"topic"`
	Description  string    `json:"description,omitempty"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Tags         []string  `json:"tags"`
	Difficulty   string    `json:"difficulty,omitempty"`
	Likes        int64     `json:"likes"`
	Bookmarks    int64     `json:"bookmarks"`
	Author       string    `json:"author,omitempty"`
	UpdatedAt    int64     `json:"updated_at"`
	CreatedAt    time.Time `json:"-"`
}

// CreateClipRequest represents the request body for creating a clip.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type CreateClipRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Topic        string   `json:"topic"`
	Description  string   `json:"description"`
	VideoURL     string   `json:"video_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Tags         []string `json:"tags"`
	Difficulty   string   `json:"difficulty"`
	Likes        int64    `json:"likes"`
	Bookmarks    int64    `json:"bookmarks"`
	Author       string   `json:"author"`
}

// Clip converts the request into a Clip ready for insertion.
func (r *CreateClipRequest) Clip() *Clip {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Clip{
		ExternalID:   r.ID,
		Title:        r.Title,
		Topic:        r.Topic,
		Description:  r.Description,
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		Tags:         tags,
		Difficulty:   r.Difficulty,
		Likes:        r.Likes,
		Bookmarks:    r.Bookmarks,
		Author:       r.Author,
	}
}

// CreateClipResponse returns the store-assigned identifier of a new clip.
type CreateClipResponse struct {
	ID string `json:"id"`
}

// CounterActionRequest represents a like or bookmark mutation.
type CounterActionRequest struct {
	ClipID string `json:"clip_id"`
	Delta  int64  `json:"delta"`
}

// CounterActionResponse acknowledges a successful counter mutation.
type CounterActionResponse struct {
	OK bool `json:"ok"`
}

// SeedResponse reports the outcome of the seed routine. Exactly one of the
// fields is populated: Inserted after a first seed, Message when the store
// already held clips.
type SeedResponse struct {
	Message  string `json:"message,omitempty"`
	Inserted int    `json:"inserted,omitempty"`
}

// StatusResponse is the root health message.
type StatusResponse struct {
	Message string `json:"message"`
}

// DiagnosticsResponse describes store connectivity for GET /test.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURLSet   bool     `json:"database_url_set"`
	DatabaseName     string   `json:"database_name,omitempty"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
