package where

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/roach88/parsemapper/internal/condition"
)

// Parse accepts limits from 1 to 1000; an unset limit asks for the maximum.
const (
	MinLimit     = 1
	MaxLimit     = 1000
	DefaultLimit = MaxLimit
)

// Params is the parameter set of a Parse query request.
//
// Wire form (query string):
//
//	limit=<int>&where=<JSON>&skip=<int>&order=<fields>
//
// where, skip and order are omitted when empty.
type Params struct {
	Limit int     `json:"limit"`
	Where *Filter `json:"where,omitempty"`
	Skip  int     `json:"skip,omitempty"`
	Order string  `json:"order,omitempty"`
}

// BuildParams assembles request parameters for q.
//
// Pagination is validated before the condition tree is translated, so an
// invalid limit fails without inspecting conditions.
func BuildParams(q condition.Query) (Params, error) {
	limit, err := buildLimit(q.Limit)
	if err != nil {
		return Params{}, err
	}
	if q.Offset < 0 {
		return Params{}, &ValidationError{
			Code:    ErrCodeInvalidOffset,
			Message: fmt.Sprintf("offset must not be negative, got %d", q.Offset),
		}
	}

	filter, err := Translate(q.Conditions)
	if err != nil {
		return Params{}, fmt.Errorf("translate conditions: %w", err)
	}

	return Params{
		Limit: limit,
		Where: filter,
		Skip:  q.Offset,
		Order: BuildOrder(q.Order),
	}, nil
}

// buildLimit applies the default and checks the Parse range.
func buildLimit(limit *int) (int, error) {
	if limit == nil {
		return DefaultLimit, nil
	}
	if *limit < MinLimit || *limit > MaxLimit {
		return 0, &ValidationError{
			Code:    ErrCodeInvalidLimit,
			Message: fmt.Sprintf("Parse limit: only number from %d to %d is valid, got %d", MinLimit, MaxLimit, *limit),
		}
	}
	return *limit, nil
}

// BuildOrder formats sort keys as Parse's order parameter.
//
// Entries on the primary key are dropped since Parse cannot sort by it.
// Descending keys are prefixed with "-". Returns "" when nothing remains.
func BuildOrder(orders []condition.Order) string {
	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.Field == condition.PrimaryKey {
			continue
		}
		if o.Direction == condition.Desc {
			parts = append(parts, "-"+o.Field)
		} else {
			parts = append(parts, o.Field)
		}
	}
	return strings.Join(parts, ",")
}

// Values encodes p as URL query values, with where as a JSON string.
func (p Params) Values() (url.Values, error) {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(p.Limit))
	if p.Where != nil {
		data, err := p.Where.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode where: %w", err)
		}
		v.Set("where", string(data))
	}
	if p.Skip > 0 {
		v.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	return v, nil
}
