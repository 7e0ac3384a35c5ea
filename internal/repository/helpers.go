package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised when an insert hits
// a unique constraint. The composite-key constraints on favorites,
// watch_later and ratings are the correctness backstop for concurrent
// upserts, so repositories translate this into domain conflicts.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// countAsync starts the count query concurrently with the caller's page
// fetch. The two queries share no transaction; both are independent
// point-in-time reads. The returned func blocks until the count is in.
func countAsync(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) func() (int64, error) {
	type result struct {
		total int64
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		var total int64
		err := db.GetContext(ctx, &total, query, args...)
		ch <- result{total, err}
	}()
	return func() (int64, error) {
		r := <-ch
		return r.total, r.err
	}
}
