package adapter

import "github.com/roach88/parsemapper/internal/condition"

// Record is one Parse object as seen by the adapter.
type Record struct {
	ClassName  string
	ID         string
	Attributes map[string]any
}

// NewRecord creates an unsaved record.
func NewRecord(className string, attrs map[string]any) *Record {
	return &Record{ClassName: className, Attributes: attrs}
}

// Hydrate turns raw result rows into records, moving objectId into ID.
func Hydrate(className string, rows []map[string]any) []*Record {
	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		id, _ := row[condition.PrimaryKey].(string)
		records = append(records, &Record{
			ClassName:  className,
			ID:         id,
			Attributes: without(row, condition.PrimaryKey),
		})
	}
	return records
}

// without returns a copy of attrs minus the given keys.
func without(attrs map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
