package validation

import (
	"testing"

	"github.com/systok/clip-feed-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func validCreateRequest() *models.CreateClipRequest {
	return &models.CreateClipRequest{
		Title:    "What is a Kernel?",
		Topic:    "OS",
		VideoURL: "https://samplelib.com/lib/preview/mp4/sample-5s.mp4",
	}
}

func TestValidateClip(t *testing.T) {
	v := New()

	t.Run("accepts minimal valid payload", func(t *testing.T) {
		assert.NoError(t, v.ValidateClip(validCreateRequest()))
	})

	t.Run("accepts full payload", func(t *testing.T) {
		req := validCreateRequest()
		req.Description = "Monolithic vs microkernels."
		req.ThumbnailURL = "https://picsum.photos/seed/kernel/400/700"
		req.Tags = []string{"kernel", "os"}
		req.Difficulty = models.DifficultyBeginner
		req.Author = "SysTok"
		assert.NoError(t, v.ValidateClip(req))
	})

	t.Run("rejects missing title", func(t *testing.T) {
		req := validCreateRequest()
		req.Title = ""
		err := v.ValidateClip(req)
		assert.ErrorContains(t, err, "title")
	})

	t.Run("rejects missing topic", func(t *testing.T) {
		req := validCreateRequest()
		req.Topic = ""
		err := v.ValidateClip(req)
		assert.ErrorContains(t, err, "topic")
	})

	t.Run("rejects missing video_url", func(t *testing.T) {
		req := validCreateRequest()
		req.VideoURL = ""
		err := v.ValidateClip(req)
		assert.ErrorContains(t, err, "video_url")
	})

	t.Run("rejects malformed video_url", func(t *testing.T) {
		req := validCreateRequest()
		req.VideoURL = "not a url"
		err := v.ValidateClip(req)
		assert.ErrorContains(t, err, "video_url")
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		req := validCreateRequest()
		req.VideoURL = "ftp://example.com/clip.mp4"
		err := v.ValidateClip(req)
		assert.ErrorContains(t, err, "video_url")
	})

	t.Run("rejects malformed thumbnail_url", func(t *testing.T) {
		req := validCreateRequest()
		req.ThumbnailURL = "://bad"
		err := v.ValidateClip(req)
		assert.ErrorContains(t, err, "thumbnail_url")
	})

	t.Run("rejects negative counters", func(t *testing.T) {
		req := validCreateRequest()
		req.Likes = -1
		assert.ErrorContains(t, v.ValidateClip(req), "likes")

		req = validCreateRequest()
		req.Bookmarks = -5
		assert.ErrorContains(t, v.ValidateClip(req), "bookmarks")
	})

	t.Run("does not enforce difficulty labels", func(t *testing.T) {
		req := validCreateRequest()
		req.Difficulty = "wizard"
		assert.NoError(t, v.ValidateClip(req))
	})
}

func TestValidateCounterAction(t *testing.T) {
	v := New()

	t.Run("accepts plus one", func(t *testing.T) {
		assert.NoError(t, v.ValidateCounterAction(&models.CounterActionRequest{ClipID: "c1", Delta: 1}))
	})

	t.Run("accepts minus one", func(t *testing.T) {
		assert.NoError(t, v.ValidateCounterAction(&models.CounterActionRequest{ClipID: "c1", Delta: -1}))
	})

	t.Run("rejects zero delta", func(t *testing.T) {
		err := v.ValidateCounterAction(&models.CounterActionRequest{ClipID: "c1", Delta: 0})
		assert.ErrorContains(t, err, "delta")
	})

	t.Run("rejects large delta", func(t *testing.T) {
		err := v.ValidateCounterAction(&models.CounterActionRequest{ClipID: "c1", Delta: 50})
		assert.ErrorContains(t, err, "delta")
	})

	t.Run("rejects missing clip_id", func(t *testing.T) {
		err := v.ValidateCounterAction(&models.CounterActionRequest{Delta: 1})
		assert.ErrorContains(t, err, "clip_id")
	})
}
