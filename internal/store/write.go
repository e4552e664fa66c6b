package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/parsemapper/internal/parse"
)

// Record appends a completed call to the journal and returns its seq.
// The query is stored in its URL-encoded form.
func (s *Store) Record(ctx context.Context, call parse.Call) (int64, error) {
	var errText string
	if call.Err != nil {
		errText = call.Err.Error()
	}
	var query string
	if call.Query != nil {
		query = call.Query.Encode()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO calls
		(method, path, query, status, duration_ms, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		call.Method,
		call.Path,
		query,
		call.Status,
		call.Duration.Milliseconds(),
		errText,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("record call: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record call: last insert id: %w", err)
	}
	return seq, nil
}

// Observer returns a parse.Observer that journals every call.
// Write failures are passed to onErr, which may be nil.
func (s *Store) Observer(ctx context.Context, onErr func(error)) parse.Observer {
	return func(call parse.Call) {
		if _, err := s.Record(ctx, call); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
