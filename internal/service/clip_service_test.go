package service

import (
	"context"
	"errors"
	"testing"

	"github.com/systok/clip-feed-go/internal/db"
	"github.com/systok/clip-feed-go/internal/db/repository"
	"github.com/systok/clip-feed-go/internal/models"
	"github.com/systok/clip-feed-go/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClipRepo is an in-memory ClipRepository.
type mockClipRepo struct {
	clips      []*models.Clip
	insertErr  error
	listErr    error
	countErr   error
	lastFilter repository.ClipFilters
}

func newMockClipRepo() *mockClipRepo {
	return &mockClipRepo{}
}

func (m *mockClipRepo) Insert(ctx context.Context, clip *models.Clip) (uuid.UUID, error) {
	if m.insertErr != nil {
		return uuid.Nil, m.insertErr
	}
	for _, existing := range m.clips {
		if clip.ExternalID != "" && existing.ExternalID == clip.ExternalID {
			return uuid.Nil, db.ErrDuplicateKey
		}
	}
	clip.ClipID = uuid.New()
	m.clips = append(m.clips, clip)
	return clip.ClipID, nil
}

func (m *mockClipRepo) InsertMany(ctx context.Context, clips []*models.Clip) (int, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	for _, clip := range clips {
		clip.ClipID = uuid.New()
		m.clips = append(m.clips, clip)
	}
	return len(clips), nil
}

func (m *mockClipRepo) List(ctx context.Context, filters repository.ClipFilters) ([]*models.Clip, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.lastFilter = filters

	results := []*models.Clip{}
	for _, clip := range m.clips {
		if filters.Topic != "" && clip.Topic != filters.Topic {
			continue
		}
		if filters.Tag != "" && !contains(clip.Tags, filters.Tag) {
			continue
		}
		results = append(results, clip)
		if len(results) == filters.Limit {
			break
		}
	}
	return results, nil
}

func (m *mockClipRepo) ApplyCounterDelta(ctx context.Context, counter models.Counter, ref models.ClipRef, delta int64) error {
	for _, clip := range m.clips {
		var matched bool
		switch ref.Kind {
		case models.RefNative:
			matched = clip.ClipID == ref.Native
		case models.RefExternal:
			matched = clip.ExternalID != "" && clip.ExternalID == ref.External
		}
		if !matched {
			continue
		}

		switch counter {
		case models.CounterLikes:
			clip.Likes += delta
			if clip.Likes < 0 {
				clip.Likes = 0
			}
		case models.CounterBookmarks:
			clip.Bookmarks += delta
			if clip.Bookmarks < 0 {
				clip.Bookmarks = 0
			}
		}
		clip.UpdatedAt++
		return nil
	}
	return db.ErrNotFound
}

func (m *mockClipRepo) Count(ctx context.Context) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.clips)), nil
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []*EngagementEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event *EngagementEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newService(repo repository.ClipRepository, pub EventPublisher) *ClipService {
	return NewClipService(repo, pub, validation.New())
}

func validCreate() *models.CreateClipRequest {
	return &models.CreateClipRequest{
		Title:    "What is a Kernel?",
		Topic:    "OS",
		VideoURL: "https://samplelib.com/lib/preview/mp4/sample-5s.mp4",
		Tags:     []string{"kernel"},
	}
}

func TestClipService_CreateClip(t *testing.T) {
	ctx := context.Background()

	t.Run("returns store-assigned identifier", func(t *testing.T) {
		repo := newMockClipRepo()
		pub := &recordingPublisher{}
		svc := newService(repo, pub)

		id, err := svc.CreateClip(ctx, validCreate())
		require.NoError(t, err)

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, parsed)

		require.Len(t, pub.events, 1)
		assert.Equal(t, EventClipCreated, pub.events[0].Event)
		assert.Equal(t, id, pub.events[0].ClipID)
	})

	t.Run("missing video_url fails validation", func(t *testing.T) {
		svc := newService(newMockClipRepo(), nil)

		req := validCreate()
		req.VideoURL = ""
		_, err := svc.CreateClip(ctx, req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Message, "video_url")
	})

	t.Run("duplicate external id fails validation", func(t *testing.T) {
		repo := newMockClipRepo()
		svc := newService(repo, nil)

		req := validCreate()
		req.ID = "legacy-clip-1"
		_, err := svc.CreateClip(ctx, req)
		require.NoError(t, err)

		req = validCreate()
		req.ID = "legacy-clip-1"
		_, err = svc.CreateClip(ctx, req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("store failure surfaces as StoreError", func(t *testing.T) {
		repo := newMockClipRepo()
		repo.insertErr = errors.New("connection refused")
		svc := newService(repo, nil)

		_, err := svc.CreateClip(ctx, validCreate())

		var serr *StoreError
		require.ErrorAs(t, err, &serr)
	})

	t.Run("publisher failure does not fail the request", func(t *testing.T) {
		repo := newMockClipRepo()
		pub := &recordingPublisher{err: errors.New("broker down")}
		svc := newService(repo, pub)

		_, err := svc.CreateClip(ctx, validCreate())
		assert.NoError(t, err)
	})
}

func TestClipService_ListClips(t *testing.T) {
	ctx := context.Background()

	t.Run("applies default limit", func(t *testing.T) {
		repo := newMockClipRepo()
		svc := newService(repo, nil)

		_, err := svc.ListClips(ctx, "", "", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultListLimit, repo.lastFilter.Limit)
	})

	t.Run("caps excessive limit", func(t *testing.T) {
		repo := newMockClipRepo()
		svc := newService(repo, nil)

		_, err := svc.ListClips(ctx, "", "", 5000)
		require.NoError(t, err)
		assert.Equal(t, MaxListLimit, repo.lastFilter.Limit)
	})

	t.Run("passes filters through", func(t *testing.T) {
		repo := newMockClipRepo()
		svc := newService(repo, nil)

		_, err := svc.ListClips(ctx, "OS", "kernel", 5)
		require.NoError(t, err)
		assert.Equal(t, "OS", repo.lastFilter.Topic)
		assert.Equal(t, "kernel", repo.lastFilter.Tag)
		assert.Equal(t, 5, repo.lastFilter.Limit)
	})

	t.Run("store failure surfaces as StoreError", func(t *testing.T) {
		repo := newMockClipRepo()
		repo.listErr = errors.New("connection refused")
		svc := newService(repo, nil)

		_, err := svc.ListClips(ctx, "", "", 0)

		var serr *StoreError
		require.ErrorAs(t, err, &serr)
	})
}

func TestClipService_ApplyCounterDelta(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*ClipService, *mockClipRepo, *recordingPublisher, string) {
		repo := newMockClipRepo()
		pub := &recordingPublisher{}
		svc := newService(repo, pub)

		id, err := svc.CreateClip(ctx, validCreate())
		require.NoError(t, err)
		pub.events = nil
		return svc, repo, pub, id
	}

	t.Run("repeated likes accumulate", func(t *testing.T) {
		svc, repo, pub, id := setup(t)

		for i := 0; i < 3; i++ {
			err := svc.ApplyCounterDelta(ctx, models.CounterLikes, &models.CounterActionRequest{ClipID: id, Delta: 1})
			require.NoError(t, err)
		}

		assert.EqualValues(t, 3, repo.clips[0].Likes)
		assert.EqualValues(t, 3, repo.clips[0].UpdatedAt)

		require.Len(t, pub.events, 3)
		assert.Equal(t, EventClipLiked, pub.events[0].Event)
	})

	t.Run("bookmark publishes bookmark event", func(t *testing.T) {
		svc, repo, pub, id := setup(t)

		err := svc.ApplyCounterDelta(ctx, models.CounterBookmarks, &models.CounterActionRequest{ClipID: id, Delta: 1})
		require.NoError(t, err)

		assert.EqualValues(t, 1, repo.clips[0].Bookmarks)
		require.Len(t, pub.events, 1)
		assert.Equal(t, EventClipBookmarked, pub.events[0].Event)
	})

	t.Run("external identifier resolves via fallback", func(t *testing.T) {
		repo := newMockClipRepo()
		svc := newService(repo, nil)

		req := validCreate()
		req.ID = "legacy-clip-9"
		_, err := svc.CreateClip(ctx, req)
		require.NoError(t, err)

		err = svc.ApplyCounterDelta(ctx, models.CounterLikes, &models.CounterActionRequest{ClipID: "legacy-clip-9", Delta: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 1, repo.clips[0].Likes)
	})

	t.Run("unmatched clip returns NotFoundError", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		err := svc.ApplyCounterDelta(ctx, models.CounterLikes, &models.CounterActionRequest{ClipID: uuid.NewString(), Delta: 1})

		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
	})

	t.Run("delta outside plus or minus one is rejected", func(t *testing.T) {
		svc, _, _, id := setup(t)

		err := svc.ApplyCounterDelta(ctx, models.CounterLikes, &models.CounterActionRequest{ClipID: id, Delta: 10})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unknown counter is rejected", func(t *testing.T) {
		svc, _, _, id := setup(t)

		err := svc.ApplyCounterDelta(ctx, models.Counter("views"), &models.CounterActionRequest{ClipID: id, Delta: 1})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestClipService_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("first seed inserts fixed clips", func(t *testing.T) {
		repo := newMockClipRepo()
		svc := newService(repo, nil)

		resp, err := svc.Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Inserted)
		assert.Empty(t, resp.Message)
	})

	t.Run("second seed is a no-op", func(t *testing.T) {
		repo := newMockClipRepo()
		svc := newService(repo, nil)

		_, err := svc.Seed(ctx)
		require.NoError(t, err)

		resp, err := svc.Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Inserted)
		assert.Equal(t, "Already seeded", resp.Message)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})

	t.Run("store failure surfaces as StoreError", func(t *testing.T) {
		repo := newMockClipRepo()
		repo.countErr = errors.New("connection refused")
		svc := newService(repo, nil)

		_, err := svc.Seed(ctx)

		var serr *StoreError
		require.ErrorAs(t, err, &serr)
	})
}
