package daily

import (
	"context"
	"database/sql"
	"fmt"
)

// Result is one player's finished daily challenge, won, lost or forfeited.
// Only the summary is kept; individual attempts are never stored.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Won       bool   `json:"won"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	if err != nil {
		return false, fmt.Errorf("query daily_results: %w", err)
	}
	return cnt > 0, nil
}

// InsertResult records a result. A second result for the same user and date
// is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, won, guesses, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.UserID, r.Date, r.Won, r.Guesses, r.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("insert daily result: %w", err)
	}
	return nil
}

type LBRow struct {
	UserID    string `json:"userId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the best wins for date: fewest guesses first, then
// fastest, then earliest. limit <= 0 means 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, guesses, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND won=1
		 ORDER BY guesses ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
