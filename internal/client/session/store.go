package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dspavlov/docshelf/internal/client/api"
	"github.com/dspavlov/docshelf/internal/client/session/migrations"
	"github.com/dspavlov/docshelf/internal/dbx"
)

// Store persists at most one session.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the session in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// OpenStore opens (creating if needed) the session database at dsn and
// migrates it.
func OpenStore(ctx context.Context, dsn string) (*SQLiteStore, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session db: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return NewSQLiteStore(db), db, nil
}

// Load returns the stored session, or nil when none is stored.
func (r *SQLiteStore) Load(ctx context.Context) (*Session, error) {
	var (
		token    string
		userJSON []byte
		saved    int64
		expires  int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_json, saved_at, expires_at FROM session WHERE id = 1`,
	).Scan(&token, &userJSON, &saved, &expires)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user api.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, fmt.Errorf("failed to decode stored user: %w", err)
	}
	return &Session{
		Token:     token,
		User:      user,
		SavedAt:   time.Unix(saved, 0).UTC(),
		ExpiresAt: time.Unix(expires, 0).UTC(),
	}, nil
}

// Save stores s, replacing any previous session. The replace runs in one
// transaction so a crash never leaves two sessions or none.
func (r *SQLiteStore) Save(ctx context.Context, s Session) error {
	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session (id, token, user_json, saved_at, expires_at)
			VALUES (1, ?, ?, ?, ?)
		`, s.Token, userJSON, s.SavedAt.Unix(), s.ExpiresAt.Unix())
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the stored session, if any.
func (r *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
