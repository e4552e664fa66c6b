package adapter

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/parsemapper/internal/condition"
	"github.com/roach88/parsemapper/internal/ir"
	"github.com/roach88/parsemapper/internal/parse"
	"github.com/roach88/parsemapper/internal/where"
)

// ErrMissingID is returned when a record without identity is updated or deleted.
var ErrMissingID = errors.New("record has no objectId")

// ErrMissingClass is returned when a record names no class.
var ErrMissingClass = errors.New("record has no class name")

// Adapter maps records and queries onto Parse REST calls.
type Adapter struct {
	client *parse.Client
	logger *zap.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// New creates an Adapter that talks to Parse through client.
func New(client *parse.Client, opts ...Option) *Adapter {
	a := &Adapter{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Create saves each record as a new object and assigns the identity the
// server returns. Server-managed fields are never sent.
//
// Returns the number of records created.
func (a *Adapter) Create(ctx context.Context, records []*Record) (int, error) {
	for i, rec := range records {
		if rec.ClassName == "" {
			return i, fmt.Errorf("create record %d: %w", i, ErrMissingClass)
		}
		params := without(rec.Attributes, condition.PrimaryKey, condition.CreatedAt, condition.UpdatedAt)

		result, err := a.client.Resource(rec.ClassName).Post(ctx, params)
		if err != nil {
			a.logger.Error("create failed",
				zap.String("class", rec.ClassName), zap.Int("index", i), zap.Error(err))
			return i, fmt.Errorf("create record %d: %w", i, err)
		}

		id, _ := result[condition.PrimaryKey].(string)
		if id == "" {
			return i, fmt.Errorf("create record %d: response carries no objectId", i)
		}
		rec.ID = id
		a.logger.Debug("created", zap.String("class", rec.ClassName), zap.String("id", id))
	}

	a.logger.Info("create complete", zap.Int("records", len(records)))
	return len(records), nil
}

// Read runs q and returns the raw result rows for the caller to hydrate.
// Pagination is validated before any network call.
func (a *Adapter) Read(ctx context.Context, q condition.Query) ([]map[string]any, error) {
	if q.ClassName == "" {
		return nil, fmt.Errorf("read: %w", ErrMissingClass)
	}
	params, err := where.BuildParams(q)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", q.ClassName, err)
	}
	values, err := params.Values()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", q.ClassName, err)
	}

	a.logger.Debug("read",
		zap.String("class", q.ClassName),
		zap.Int("limit", params.Limit),
		zap.Int("skip", params.Skip),
		zap.String("order", params.Order),
		zap.Stringer("where", params.Where))

	response, err := a.client.Resource(q.ClassName).Get(ctx, values)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", q.ClassName, err)
	}

	rows, err := results(response)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", q.ClassName, err)
	}
	a.logger.Info("read complete", zap.String("class", q.ClassName), zap.Int("results", len(rows)))
	return rows, nil
}

// Get fetches a single object by identity.
func (a *Adapter) Get(ctx context.Context, className, id string) (*Record, error) {
	if id == "" {
		return nil, fmt.Errorf("get %s: %w", className, ErrMissingID)
	}
	row, err := a.client.Resource(className).Object(id).Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", className, id, err)
	}
	return Hydrate(className, []map[string]any{row})[0], nil
}

// Update writes attrs to each record. Timestamps are never sent.
//
// Returns the number of records updated.
func (a *Adapter) Update(ctx context.Context, attrs map[string]any, records []*Record) (int, error) {
	params := without(attrs, condition.CreatedAt, condition.UpdatedAt)

	for i, rec := range records {
		res, err := a.objectResource(rec)
		if err != nil {
			return i, fmt.Errorf("update record %d: %w", i, err)
		}
		if _, err := res.Put(ctx, params); err != nil {
			a.logger.Error("update failed",
				zap.String("class", rec.ClassName), zap.String("id", rec.ID), zap.Error(err))
			return i, fmt.Errorf("update record %d (%s): %w", i, rec.ID, err)
		}
		for k, v := range params {
			if rec.Attributes == nil {
				rec.Attributes = make(map[string]any, len(params))
			}
			rec.Attributes[k] = v
		}
		a.logger.Debug("updated", zap.String("class", rec.ClassName), zap.String("id", rec.ID))
	}

	a.logger.Info("update complete", zap.Int("records", len(records)))
	return len(records), nil
}

// Delete removes each record.
//
// Returns the number of records deleted.
func (a *Adapter) Delete(ctx context.Context, records []*Record) (int, error) {
	for i, rec := range records {
		res, err := a.objectResource(rec)
		if err != nil {
			return i, fmt.Errorf("delete record %d: %w", i, err)
		}
		if _, err := res.Delete(ctx); err != nil {
			a.logger.Error("delete failed",
				zap.String("class", rec.ClassName), zap.String("id", rec.ID), zap.Error(err))
			return i, fmt.Errorf("delete record %d (%s): %w", i, rec.ID, err)
		}
		a.logger.Debug("deleted", zap.String("class", rec.ClassName), zap.String("id", rec.ID))
	}

	a.logger.Info("delete complete", zap.Int("records", len(records)))
	return len(records), nil
}

// UploadFile stores content on Parse and returns the file value to assign
// to a record attribute.
func (a *Adapter) UploadFile(ctx context.Context, name, contentType string, content []byte) (ir.IRFile, error) {
	file, err := a.client.UploadFile(ctx, name, contentType, content)
	if err != nil {
		return ir.IRFile{}, fmt.Errorf("upload %s: %w", name, err)
	}
	a.logger.Info("uploaded", zap.String("name", file.Name), zap.Int("bytes", len(content)))
	return file, nil
}

func (a *Adapter) objectResource(rec *Record) (*parse.Resource, error) {
	if rec.ClassName == "" {
		return nil, ErrMissingClass
	}
	if rec.ID == "" {
		return nil, ErrMissingID
	}
	return a.client.Resource(rec.ClassName).Object(rec.ID), nil
}

// results extracts the "results" array of a query response.
func results(response map[string]any) ([]map[string]any, error) {
	raw, ok := response["results"].([]any)
	if !ok {
		return nil, fmt.Errorf("response has no results array")
	}
	rows := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("results[%d] is %T, not an object", i, item)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
