// Package store persists Spotify tokens in SQLite. The spotify client
// never persists tokens itself; the CLI saves every token it is handed.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jfmyers9/spindle/pkg/spotify"
	_ "modernc.org/sqlite"
)

// ErrNoToken is returned by Latest when nothing has been saved for a client.
var ErrNoToken = errors.New("no token stored")

// Store manages saved tokens using SQLite
type Store struct {
	db *sql.DB
}

// StoredToken represents a saved token row
type StoredToken struct {
	ID           int64
	ClientID     string
	AccessToken  string
	RefreshToken string
	Scope        string
	TokenType    string
	ExpiresAt    time.Time // zero if unknown
	CreatedAt    time.Time
}

// Expired reports whether the access token is past its expiry, with a
// margin for clock skew. Unknown expiry counts as not expired.
func (t *StoredToken) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(time.Minute).After(t.ExpiresAt)
}

// New creates a new token store backed by SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS tokens (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id TEXT NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT,
			scope TEXT,
			token_type TEXT,
			expires_at INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_client_created ON tokens(client_id, id);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records a token for the given client and returns its row id
func (s *Store) Save(ctx context.Context, clientID string, tok spotify.Token) (int64, error) {
	if tok.AccessToken == "" {
		return 0, fmt.Errorf("refusing to save empty access token")
	}

	var expiresAt int64
	if !tok.Expiry.IsZero() {
		expiresAt = tok.Expiry.Unix()
	} else if tok.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second).Unix()
	}

	query := `
		INSERT INTO tokens (client_id, access_token, refresh_token, scope, token_type, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		clientID,
		tok.AccessToken,
		tok.RefreshToken,
		tok.Scope,
		tok.TokenType,
		expiresAt,
		time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	return id, nil
}

// Latest returns the most recently saved token for the client
func (s *Store) Latest(ctx context.Context, clientID string) (*StoredToken, error) {
	query := `
		SELECT id, client_id, access_token, COALESCE(refresh_token, ''), COALESCE(scope, ''),
			COALESCE(token_type, ''), expires_at, created_at
		FROM tokens
		WHERE client_id = ?
		ORDER BY id DESC
		LIMIT 1
	`

	var t StoredToken
	var expiresUnix, createdUnix int64
	err := s.db.QueryRowContext(ctx, query, clientID).Scan(
		&t.ID,
		&t.ClientID,
		&t.AccessToken,
		&t.RefreshToken,
		&t.Scope,
		&t.TokenType,
		&expiresUnix,
		&createdUnix,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}

	if expiresUnix > 0 {
		t.ExpiresAt = time.Unix(expiresUnix, 0)
	}
	t.CreatedAt = time.Unix(createdUnix, 0)

	return &t, nil
}

// Prune deletes all but the newest keep tokens for the client
func (s *Store) Prune(ctx context.Context, clientID string, keep int) (int64, error) {
	query := `
		DELETE FROM tokens
		WHERE client_id = ?
		AND id NOT IN (
			SELECT id FROM tokens WHERE client_id = ? ORDER BY id DESC LIMIT ?
		)
	`

	result, err := s.db.ExecContext(ctx, query, clientID, clientID, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune tokens: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// Delete removes every token for the client
func (s *Store) Delete(ctx context.Context, clientID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tokens WHERE client_id = ?", clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tokens: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// Count returns the number of tokens stored for the client
func (s *Store) Count(ctx context.Context, clientID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tokens WHERE client_id = ?", clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}
	return count, nil
}
