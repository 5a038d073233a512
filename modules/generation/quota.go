package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// quotaDB is the subset of pgxpool.Pool the quota needs.
type quotaDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Quota enforces the per-address generation allowance over a trailing time
// window, backed by the generation_logs table. The check and the record are
// separate statements: an event is only written after the provider call
// succeeds, so a failed generation never consumes quota. Two concurrent
// requests from the same address can therefore both pass the check; the
// window is a cost guard, not a strict counter.
type Quota struct {
	db     quotaDB
	limit  int
	window time.Duration
}

// NewQuota creates a quota over the given database handle.
func NewQuota(db quotaDB, limit int, window time.Duration) *Quota {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Quota{db: db, limit: limit, window: window}
}

// Check returns ErrQuotaExceeded when the address has no allowance left.
// A query failure fails closed with ErrQuotaUnavailable.
func (q *Quota) Check(ctx context.Context, ip string) error {
	used, err := q.used(ctx, ip)
	if err != nil {
		return errors.Join(ErrQuotaUnavailable, err)
	}
	if used >= q.limit {
		return ErrQuotaExceeded
	}
	return nil
}

// Record writes a generation event for the address. Called only after a
// successful generation.
func (q *Quota) Record(ctx context.Context, ip string) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO generation_logs (ip, created_at) VALUES ($1, now())`, ip)
	if err != nil {
		return fmt.Errorf("failed to record generation event: %w", err)
	}
	return nil
}

// Remaining returns how many generations the address has left in the window,
// never below zero.
func (q *Quota) Remaining(ctx context.Context, ip string) (int, error) {
	used, err := q.used(ctx, ip)
	if err != nil {
		return 0, errors.Join(ErrQuotaUnavailable, err)
	}
	if used >= q.limit {
		return 0, nil
	}
	return q.limit - used, nil
}

func (q *Quota) used(ctx context.Context, ip string) (int, error) {
	var count int
	err := q.db.QueryRow(ctx,
		`SELECT count(*) FROM generation_logs WHERE ip = $1 AND created_at > now() - make_interval(secs => $2)`,
		ip, q.window.Seconds(),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
