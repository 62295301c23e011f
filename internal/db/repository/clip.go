// Package repository implements data access for clips on PostgreSQL.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/systok/clip-feed-go/internal/db"
	"github.com/systok/clip-feed-go/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// clipsTable is resolved through the explicit entity-kind mapping.
var clipsTable = db.KindClip.Collection()

// ClipFilters narrow a clip listing. Topic is an exact match; Tag is a
// membership test against the tags array.
type ClipFilters struct {
	Topic string
	Tag   string
	Limit int
}

// ClipRepository defines operations for managing clips.
type ClipRepository interface {
	// Insert persists a new clip and returns its store-assigned identifier.
	Insert(ctx context.Context, clip *models.Clip) (uuid.UUID, error)

	// InsertMany persists a batch of clips in one transaction and returns
	// the number inserted.
	InsertMany(ctx context.Context, clips []*models.Clip) (int, error)

	// List retrieves clips most-recently-stored-first, applying filters.
	List(ctx context.Context, filters ClipFilters) ([]*models.Clip, error)

	// ApplyCounterDelta atomically adds delta to the named counter of the
	// clip addressed by ref and bumps the updated_at revision by one.
	// Returns db.ErrNotFound when no clip matched.
	ApplyCounterDelta(ctx context.Context, counter models.Counter, ref models.ClipRef, delta int64) error

	// Count returns the total number of stored clips.
	Count(ctx context.Context) (int64, error)
}

type clipRepository struct {
	pool *pgxpool.Pool
}

// NewClipRepository creates a new ClipRepository.
func NewClipRepository(pool *pgxpool.Pool) ClipRepository {
	return &clipRepository{pool: pool}
}

const clipColumns = `clip_id, COALESCE(external_id, ''), title, topic, description, video_url, thumbnail_url, tags, difficulty, likes, bookmarks, author, updated_at, created_at`

func (r *clipRepository) Insert(ctx context.Context, clip *models.Clip) (uuid.UUID, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (external_id, title, topic, description, video_url, thumbnail_url, tags, difficulty, likes, bookmarks, author)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING clip_id, updated_at, created_at
	`, clipsTable)

	err := r.pool.QueryRow(ctx, query,
		nullIfEmpty(clip.ExternalID),
		clip.Title,
		clip.Topic,
		clip.Description,
		clip.VideoURL,
		clip.ThumbnailURL,
		clip.Tags,
		clip.Difficulty,
		clip.Likes,
		clip.Bookmarks,
		clip.Author,
	).Scan(&clip.ClipID, &clip.UpdatedAt, &clip.CreatedAt)

	if err != nil {
		return uuid.Nil, db.WrapError(err, "insert clip")
	}

	return clip.ClipID, nil
}

func (r *clipRepository) InsertMany(ctx context.Context, clips []*models.Clip) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, db.WrapError(err, "begin insert many")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	query := fmt.Sprintf(`
		INSERT INTO %s (external_id, title, topic, description, video_url, thumbnail_url, tags, difficulty, likes, bookmarks, author)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING clip_id, updated_at, created_at
	`, clipsTable)

	for _, clip := range clips {
		err := tx.QueryRow(ctx, query,
			nullIfEmpty(clip.ExternalID),
			clip.Title,
			clip.Topic,
			clip.Description,
			clip.VideoURL,
			clip.ThumbnailURL,
			clip.Tags,
			clip.Difficulty,
			clip.Likes,
			clip.Bookmarks,
			clip.Author,
		).Scan(&clip.ClipID, &clip.UpdatedAt, &clip.CreatedAt)
		if err != nil {
			return 0, db.WrapError(err, "insert clip batch")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, db.WrapError(err, "commit insert many")
	}

	return len(clips), nil
}

func (r *clipRepository) List(ctx context.Context, filters ClipFilters) ([]*models.Clip, error) {
	var conditions []string
	var args []interface{}

	if filters.Topic != "" {
		args = append(args, filters.Topic)
		conditions = append(conditions, fmt.Sprintf("topic = $%d", len(args)))
	}

	if filters.Tag != "" {
		args = append(args, filters.Tag)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", clipColumns, clipsTable)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filters.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.WrapError(err, "list clips")
	}
	defer rows.Close()

	return scanClips(rows)
}

func (r *clipRepository) ApplyCounterDelta(ctx context.Context, counter models.Counter, ref models.ClipRef, delta int64) error {
	column, err := counterColumn(counter)
	if err != nil {
		return err
	}

	var query string
	var ident interface{}

	// Resolution policy: a native UUID matches the primary key; anything
	// else matches the externally supplied id stored on the document.
	switch ref.Kind {
	case models.RefNative:
		query = fmt.Sprintf(`
			UPDATE %s
			SET %s = GREATEST(%s + $2, 0), updated_at = updated_at + 1
			WHERE clip_id = $1
		`, clipsTable, column, column)
		ident = ref.Native
	case models.RefExternal:
		query = fmt.Sprintf(`
			UPDATE %s
			SET %s = GREATEST(%s + $2, 0), updated_at = updated_at + 1
			WHERE external_id = $1
		`, clipsTable, column, column)
		ident = ref.External
	default:
		return fmt.Errorf("apply counter delta: unknown ref kind %d", ref.Kind)
	}

	tag, err := r.pool.Exec(ctx, query, ident, delta)
	if err != nil {
		return db.WrapError(err, "apply counter delta")
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("apply counter delta: %w", db.ErrNotFound)
	}

	return nil
}

func (r *clipRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", clipsTable)

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, db.WrapError(err, "count clips")
	}

	return count, nil
}

// counterColumn maps a Counter to its storage column. The whitelist keeps
// counter names out of string interpolation paths.
func counterColumn(counter models.Counter) (string, error) {
	switch counter {
	case models.CounterLikes:
		return "likes", nil
	case models.CounterBookmarks:
		return "bookmarks", nil
	default:
		return "", fmt.Errorf("unknown counter %q", counter)
	}
}

func scanClips(rows pgx.Rows) ([]*models.Clip, error) {
	clips := []*models.Clip{}

	for rows.Next() {
		clip := &models.Clip{}
		err := rows.Scan(
			&clip.ClipID,
			&clip.ExternalID,
			&clip.Title,
			&clip.Topic,
			&clip.Description,
			&clip.VideoURL,
			&clip.ThumbnailURL,
			&clip.Tags,
			&clip.Difficulty,
			&clip.Likes,
			&clip.Bookmarks,
			&clip.Author,
			&clip.UpdatedAt,
			&clip.CreatedAt,
		)
		if err != nil {
			return nil, db.WrapError(err, "scan clip")
		}
		clips = append(clips, clip)
	}

	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err, "iterate clips")
	}

	return clips, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
