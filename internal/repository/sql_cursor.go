package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/fieldlog/internal/db"
	"github.com/alexanderramin/fieldlog/internal/domain"
)

// SQLCursorRepo implements CursorRepo over SQLite or PostgreSQL.
type SQLCursorRepo struct {
	db db.DBTX
}

func NewSQLCursorRepo(conn db.DBTX) *SQLCursorRepo {
	return &SQLCursorRepo{db: conn}
}

func (r *SQLCursorRepo) Get(ctx context.Context, userID, scope string) (*domain.ViewCursor, error) {
	query := `SELECT user_id, scope, last_viewed_at FROM view_cursors WHERE user_id = ? AND scope = ?`
	var c domain.ViewCursor
	var lastStr string
	err := r.db.QueryRowContext(ctx, query, userID, scope).Scan(&c.UserID, &c.Scope, &lastStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("view cursor: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning view cursor: %w", err)
	}
	if c.LastViewedAt, err = parseTime(lastStr); err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert stores the cursor, replacing any previous position for the scope.
func (r *SQLCursorRepo) Upsert(ctx context.Context, c *domain.ViewCursor) error {
	query := `INSERT INTO view_cursors (user_id, scope, last_viewed_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id, scope) DO UPDATE SET last_viewed_at = excluded.last_viewed_at`
	_, err := r.db.ExecContext(ctx, query, c.UserID, c.Scope, formatTime(c.LastViewedAt))
	if err != nil {
		return fmt.Errorf("upserting view cursor: %w", err)
	}
	return nil
}
