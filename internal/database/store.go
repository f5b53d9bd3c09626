package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations. Methods accept
// context.Context for cancellation and timeouts. Command handlers and
// the Notification Relay share one Store; SQLite serializes the access.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// AddCreatedPost records a submission id the bot just created.
	AddCreatedPost(ctx context.Context, postID string) error

	// ConsumeCreatedPost removes the submission id and reports whether it
	// was present. Each recorded id is consumed at most once.
	ConsumeCreatedPost(ctx context.Context, postID string) (bool, error)

	// SaveCookies upserts the serialized cookie blob for a host.
	SaveCookies(ctx context.Context, host string, data []byte) error

	// LoadAllCookies retrieves every persisted cookie blob, keyed by host.
	LoadAllCookies(ctx context.Context) (map[string][]byte, error)
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AddCreatedPost records a submission id the bot just created.
func (s *sqlxStore) AddCreatedPost(ctx context.Context, postID string) error {
	if postID == "" {
		return fmt.Errorf("cannot record empty post id")
	}

	query := `INSERT OR IGNORE INTO created_posts (post_id, created_at) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, query, postID, time.Now().UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record created post", "post_id", postID, "error", err)
		return fmt.Errorf("failed to record created post: %w", err)
	}

	s.logger.DebugContext(ctx, "Recorded created post", "post_id", postID)
	return nil
}

// ConsumeCreatedPost removes the submission id and reports whether it was present.
func (s *sqlxStore) ConsumeCreatedPost(ctx context.Context, postID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM created_posts WHERE post_id = ?`, postID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to consume created post", "post_id", postID, "error", err)
		return false, fmt.Errorf("failed to consume created post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// SaveCookies upserts the serialized cookie blob for a host.
func (s *sqlxStore) SaveCookies(ctx context.Context, host string, data []byte) error {
	if host == "" {
		return fmt.Errorf("cannot save cookies for empty host")
	}

	query := `INSERT INTO cookie_cache (host, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(host) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, host, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save cookies for %s: %w", host, err)
	}

	return nil
}

// LoadAllCookies retrieves every persisted cookie blob, keyed by host.
func (s *sqlxStore) LoadAllCookies(ctx context.Context) (map[string][]byte, error) {
	var blobs []CookieBlob
	if err := s.db.SelectContext(ctx, &blobs, `SELECT host, data, updated_at FROM cookie_cache`); err != nil {
		return nil, fmt.Errorf("failed to load cookie cache: %w", err)
	}

	cookies := make(map[string][]byte, len(blobs))
	for _, blob := range blobs {
		cookies[blob.Host] = blob.Data
	}

	return cookies, nil
}
