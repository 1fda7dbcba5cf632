package aiusage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db      *pgxpool.Pool
	monthly int
	now     func() time.Time
}

// NewStore returns a Store backed by the given connection pool.
// monthly <= 0 selects DefaultTokens.
func NewStore(db *pgxpool.Pool, monthly int) *Store {
	if monthly <= 0 {
		monthly = DefaultTokens
	}
	return &Store{db: db, monthly: monthly, now: time.Now}
}

func (s *Store) currentMonth() string {
	return s.now().UTC().Format(monthLayout)
}

// UseToken atomically checks the monthly allowance and deducts one generation.
// The counter is reset when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when no row is updated (allowance exhausted or caller absent).
func (s *Store) UseToken(ctx context.Context, uid string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, s.currentMonth(), s.monthly, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a new ai_usage row for uid with the full allowance.
// An existing row is left untouched.
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, s.monthly, s.currentMonth())
	return err
}

// Remaining returns the generations left for uid in the current month.
// A caller without a row, or whose row is from an earlier month, has the full allowance.
func (s *Store) Remaining(ctx context.Context, uid string) (int, error) {
	var (
		remaining int
		month     string
	)
	err := s.db.QueryRow(ctx, `SELECT tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1`, uid).Scan(&remaining, &month)
	if err != nil {
		if isNoRows(err) {
			return s.monthly, nil
		}
		return 0, err
	}
	if month < s.currentMonth() {
		return s.monthly, nil
	}
	return remaining, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
