package where

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/parsemapper/internal/ir"
)

// Parse where operators.
const (
	OpNe    = "$ne"
	OpGt    = "$gt"
	OpGte   = "$gte"
	OpLt    = "$lt"
	OpLte   = "$lte"
	OpIn    = "$in"
	OpNin   = "$nin"
	OpRegex = "$regex"
	OpOr    = "$or"
)

// opEq marks equality, which Parse expresses as a bare value.
const opEq = ""

// Filter is a Parse where clause under construction.
//
// Top-level keys are an implicit AND. Keys marshal in the order they were
// first added, so a tree of And-combined comparisons keeps its field order.
type Filter struct {
	keys    []string
	entries map[string]entry
}

// entry is one top-level key of a Filter.
type entry interface {
	marshal() ([]byte, error)
}

// equality is a bare-value entry: {"field": value}.
type equality struct {
	value ir.IRValue
}

// constraint is an operator object entry: {"field": {"$gt": 1, "$lt": 9}}.
type constraint struct {
	ops    []string
	values map[string]ir.IRValue
}

// disjunction is the "$or" entry: {"$or": [{...}, {...}]}.
type disjunction []*Filter

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{entries: make(map[string]entry)}
}

// Len returns the number of top-level keys.
func (f *Filter) Len() int {
	return len(f.keys)
}

// Keys returns the top-level keys in insertion order.
func (f *Filter) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Equality returns the bare value for field, if field is an equality entry.
func (f *Filter) Equality(field string) (ir.IRValue, bool) {
	eq, ok := f.entries[field].(equality)
	return eq.value, ok
}

// Operator returns the value stored under op for field, if present.
func (f *Filter) Operator(field, op string) (ir.IRValue, bool) {
	c, ok := f.entries[field].(*constraint)
	if !ok {
		return nil, false
	}
	v, ok := c.values[op]
	return v, ok
}

// Or returns the sub-filters of the "$or" entry, if present.
func (f *Filter) Or() ([]*Filter, bool) {
	d, ok := f.entries[OpOr].(disjunction)
	return d, ok
}

// add records op(value) on field, merging operator constraints on the same
// field into one object.
func (f *Filter) add(field, op string, value ir.IRValue) error {
	existing, ok := f.entries[field]
	if !ok {
		f.keys = append(f.keys, field)
		if op == opEq {
			f.entries[field] = equality{value: value}
			return nil
		}
		f.entries[field] = &constraint{
			ops:    []string{op},
			values: map[string]ir.IRValue{op: value},
		}
		return nil
	}

	c, isConstraint := existing.(*constraint)
	if !isConstraint || op == opEq {
		return conflict(field, "equality cannot be combined with another constraint on the same field")
	}
	if _, dup := c.values[op]; dup {
		return conflict(field, fmt.Sprintf("operator %s applied twice", op))
	}
	c.ops = append(c.ops, op)
	c.values[op] = value
	return nil
}

// addOr attaches a disjunction of sub-filters.
func (f *Filter) addOr(subs []*Filter) error {
	if _, ok := f.entries[OpOr]; ok {
		return conflict(OpOr, "only one disjunction allowed per filter")
	}
	f.keys = append(f.keys, OpOr)
	f.entries[OpOr] = disjunction(subs)
	return nil
}

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (f *Filter) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := f.entries[k].marshal()
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the compact JSON form, as sent in the where parameter.
func (f *Filter) String() string {
	if f == nil {
		return "null"
	}
	data, err := f.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid filter: %v>", err)
	}
	return string(data)
}

func (e equality) marshal() ([]byte, error) {
	return ir.MarshalIRValue(e.value)
}

func (c *constraint) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, op := range c.ops {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"` + op + `":`)
		valBytes, err := ir.MarshalIRValue(c.values[op])
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d disjunction) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, sub := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		subBytes, err := sub.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("$or[%d]: %w", i, err)
		}
		buf.Write(subBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
