// Package storage provides the SQLite-backed token reward ledger.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/skyflap/internal/reward"
)

// DefaultPath is the ledger location used when none is configured.
const DefaultPath = "~/.skyflap/rewards.db"

// Store manages the SQLite database connection for the reward ledger.
type Store struct {
	db *sql.DB
}

// RewardEntry is a single recorded grant.
type RewardEntry struct {
	ID        int64
	Account   string
	SessionID string
	Amount    int
	CreatedAt time.Time
}

// AccountTotal is the sum of grants for one account.
type AccountTotal struct {
	Account string
	Total   int64
	Grants  int
	LastAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// The worker and the CLI share one connection; sqlite serializes writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rewards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account TEXT NOT NULL,
			session_id TEXT NOT NULL DEFAULT '',
			amount INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rewards_account ON rewards(account);
		CREATE INDEX IF NOT EXISTS idx_rewards_session ON rewards(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordReward stores one grant and returns its ID.
// It implements reward.Ledger.
func (s *Store) RecordReward(ctx context.Context, g reward.Grant) (int64, error) {
	at := g.At
	if at.IsZero() {
		at = time.Now()
	}
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO rewards (account, session_id, amount, created_at) VALUES (?, ?, ?, ?)",
		g.Account, g.SessionID, g.Amount, at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record reward: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TotalRewards returns the sum of grants for an account. Unknown accounts total 0.
func (s *Store) TotalRewards(account string) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(
		"SELECT SUM(amount) FROM rewards WHERE account = ?",
		account,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query total: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Int64, nil
}

// SessionRewards returns the sum of grants recorded for one game session.
func (s *Store) SessionRewards(sessionID string) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(
		"SELECT SUM(amount) FROM rewards WHERE session_id = ?",
		sessionID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query session total: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Int64, nil
}

// RecentRewards returns the newest grants, for one account or for all when account is empty.
func (s *Store) RecentRewards(account string, limit int) ([]RewardEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, account, session_id, amount, created_at FROM rewards`
	args := []any{}
	if account != "" {
		query += ` WHERE account = ?`
		args = append(args, account)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rewards: %w", err)
	}
	defer rows.Close()

	var entries []RewardEntry
	for rows.Next() {
		var e RewardEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Account, &e.SessionID, &e.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// TopAccounts returns the accounts with the most tokens.
func (s *Store) TopAccounts(limit int) ([]AccountTotal, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT account, SUM(amount) AS total, COUNT(*), MAX(created_at)
		 FROM rewards
		 GROUP BY account
		 ORDER BY total DESC, account ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query accounts: %w", err)
	}
	defer rows.Close()

	var totals []AccountTotal
	for rows.Next() {
		var a AccountTotal
		var lastAt any
		if err := rows.Scan(&a.Account, &a.Total, &a.Grants, &lastAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.LastAt = parseTime(lastAt)
		totals = append(totals, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return totals, nil
}

// ClearRewards deletes all grants of an account.
func (s *Store) ClearRewards(account string) error {
	_, err := s.db.Exec("DELETE FROM rewards WHERE account = ?", account)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rewards: %w", err)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04:05.000"

// parseTime handles both time.Time and string datetimes returned by the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
