package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS wallet_links (
	user_id TEXT PRIMARY KEY,
	wallet_address TEXT NOT NULL
)`

// SQLiteStore persists wallet links in a single sqlite table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init wallet schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, userID, address string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wallet_links (user_id, wallet_address) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET wallet_address = excluded.wallet_address`,
		userID, address)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, userID string) (string, bool, error) {
	var address string
	err := s.db.QueryRowContext(ctx,
		`SELECT wallet_address FROM wallet_links WHERE user_id = ?`, userID).Scan(&address)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return address, true, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
