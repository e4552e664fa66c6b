package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Entry is one journaled call.
type Entry struct {
	Seq        int64         `json:"seq"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	Query      string        `json:"query,omitempty"`
	Status     int           `json:"status"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Failed reports whether the call errored or returned a non-2xx status.
func (e Entry) Failed() bool {
	return e.Error != "" || e.Status < 200 || e.Status > 299
}

// ListOptions narrows List.
type ListOptions struct {
	PathPrefix string // only calls whose path starts with this
	FailedOnly bool
	Limit      int // zero means no limit
}

// List returns journal entries ordered by seq ASC.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)
	if opts.PathPrefix != "" {
		clauses = append(clauses, "substr(path, 1, ?) = ?")
		args = append(args, len(opts.PathPrefix), opts.PathPrefix)
	}
	if opts.FailedOnly {
		clauses = append(clauses, "(error != '' OR status < 200 OR status > 299)")
	}

	query := `
		SELECT seq, method, path, query, status, duration_ms, error, recorded_at
		FROM calls`
	if len(clauses) > 0 {
		query += "\n\t\tWHERE " + strings.Join(clauses, " AND ")
	}
	query += "\n\t\tORDER BY seq ASC"
	if opts.Limit > 0 {
		query += "\n\t\tLIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return entries, nil
}

// Count returns the number of journaled calls.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM calls").Scan(&n); err != nil {
		return 0, fmt.Errorf("count calls: %w", err)
	}
	return n, nil
}

// scanEntry scans a row into an Entry.
func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e          Entry
		durationMS int64
		recordedAt string
	)
	if err := rows.Scan(
		&e.Seq, &e.Method, &e.Path, &e.Query, &e.Status,
		&durationMS, &e.Error, &recordedAt,
	); err != nil {
		return Entry{}, fmt.Errorf("scan call: %w", err)
	}

	e.Duration = time.Duration(durationMS) * time.Millisecond
	t, err := time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("scan call %d: recorded_at: %w", e.Seq, err)
	}
	e.RecordedAt = t
	return e, nil
}
