package where

import (
	"github.com/roach88/parsemapper/internal/condition"
	"github.com/roach88/parsemapper/internal/ir"
)

// directOps maps each comparison to the Parse operator it emits in direct mode.
var directOps = map[condition.Operator]string{
	condition.Equal:              opEq,
	condition.NotEqual:           OpNe,
	condition.GreaterThan:        OpGt,
	condition.GreaterThanOrEqual: OpGte,
	condition.LessThan:           OpLt,
	condition.LessThanOrEqual:    OpLte,
	condition.Included:           OpIn,
	condition.MatchesRegex:       OpRegex,
}

// negatedOps maps each comparison to the inverse operator emitted in negated
// mode. MatchesRegex is absent: Parse has no "does not match".
var negatedOps = map[condition.Operator]string{
	condition.Equal:              OpNe,
	condition.NotEqual:           opEq,
	condition.GreaterThan:        OpLte,
	condition.GreaterThanOrEqual: OpLt,
	condition.LessThan:           OpGte,
	condition.LessThanOrEqual:    OpGt,
	condition.Included:           OpNin,
}

// Translate converts a condition tree into a Parse where filter.
//
// Returns (nil, nil) when the tree places no constraint: a nil tree, or a
// boolean node without children.
//
// Translate is a pure function with no side effects.
func Translate(c condition.Condition) (*Filter, error) {
	node := deref(c)
	if isBlank(node) {
		return nil, nil
	}

	f := NewFilter()
	var err error

	switch n := node.(type) {
	case condition.Not:
		err = feedNegated(f, n.Children)
	case condition.And:
		err = feedDirect(f, n.Children)
	case condition.Or:
		var subs []*Filter
		if subs, err = feedOr(n.Children); err == nil {
			err = f.addOr(subs)
		}
	case condition.Comparison:
		err = feedComparison(f, n, directOps)
	default:
		err = unsupportedCondition("unknown condition type %T", c)
	}

	if err != nil {
		return nil, err
	}
	return f, nil
}

// feedDirect adds each condition to f in direct mode.
func feedDirect(f *Filter, children []condition.Condition) error {
	for _, child := range children {
		if err := feedCondition(f, child); err != nil {
			return err
		}
	}
	return nil
}

// feedCondition adds one condition to f in direct mode.
func feedCondition(f *Filter, c condition.Condition) error {
	switch n := deref(c).(type) {
	case condition.Comparison:
		return feedComparison(f, n, directOps)
	case condition.Not:
		return feedNegated(f, n.Children)
	case condition.And:
		return feedDirect(f, n.Children)
	case condition.Or:
		subs, err := feedOr(n.Children)
		if err != nil {
			return err
		}
		return f.addOr(subs)
	default:
		return unsupportedCondition("unknown condition type %T", c)
	}
}

// feedNegated adds each condition to f in negated mode.
//
// A nested Not cancels back to direct mode. A nested And keeps negating each
// of its children individually.
func feedNegated(f *Filter, children []condition.Condition) error {
	for _, child := range children {
		var err error
		switch n := deref(child).(type) {
		case condition.Comparison:
			if n.Op == condition.MatchesRegex {
				return unsupportedNegation("a regex comparison", n.Field)
			}
			err = feedComparison(f, n, negatedOps)
		case condition.Not:
			err = feedDirect(f, n.Children)
		case condition.And:
			err = feedNegated(f, n.Children)
		case condition.Or:
			return unsupportedNegation("a disjunction", "")
		default:
			return unsupportedCondition("unknown condition type %T", child)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// feedOr translates each child into its own direct-mode sub-filter.
func feedOr(children []condition.Condition) ([]*Filter, error) {
	subs := make([]*Filter, 0, len(children))
	for _, child := range children {
		sub := NewFilter()
		if err := feedCondition(sub, child); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// feedComparison adds a single comparison using the given operator table.
func feedComparison(f *Filter, cmp condition.Comparison, ops map[condition.Operator]string) error {
	op, ok := ops[cmp.Op]
	if !ok {
		return &TranslationError{
			Code:    ErrCodeUnsupportedCondition,
			Message: "unknown operator " + string(cmp.Op),
			Field:   cmp.Field,
		}
	}
	if cmp.Field == "" {
		return unsupportedCondition("comparison %s without field", cmp.Op)
	}

	value := cmp.Value
	if value == nil {
		value = ir.IRNull{}
	}
	if err := checkValue(cmp.Field, op, value); err != nil {
		return err
	}
	return f.add(cmp.Field, op, value)
}

// checkValue rejects values Parse would reject for the operator.
func checkValue(field, op string, value ir.IRValue) error {
	switch op {
	case OpIn, OpNin:
		if _, ok := value.(ir.IRArray); !ok {
			return &TranslationError{
				Code:    ErrCodeInvalidValue,
				Message: op + " requires an array value",
				Field:   field,
			}
		}
	case OpRegex:
		if _, ok := value.(ir.IRString); !ok {
			return &TranslationError{
				Code:    ErrCodeInvalidValue,
				Message: op + " requires a string pattern",
				Field:   field,
			}
		}
	}
	return nil
}

// isBlank reports whether a (dereferenced) tree places no constraint.
func isBlank(c condition.Condition) bool {
	switch n := c.(type) {
	case nil:
		return true
	case condition.And:
		return len(n.Children) == 0
	case condition.Or:
		return len(n.Children) == 0
	case condition.Not:
		return len(n.Children) == 0
	}
	return false
}

// deref turns pointer nodes into value nodes so translation sites switch
// over one form. A nil pointer becomes a nil Condition.
func deref(c condition.Condition) condition.Condition {
	switch n := c.(type) {
	case *condition.And:
		if n == nil {
			return nil
		}
		return *n
	case *condition.Or:
		if n == nil {
			return nil
		}
		return *n
	case *condition.Not:
		if n == nil {
			return nil
		}
		return *n
	case *condition.Comparison:
		if n == nil {
			return nil
		}
		return *n
	}
	return c
}
