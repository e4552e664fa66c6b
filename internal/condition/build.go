package condition

import "github.com/roach88/parsemapper/internal/ir"

func compare(op Operator, field string, value ir.IRValue) Comparison {
	return Comparison{Op: op, Field: ir.NormalizeName(field), Value: value}
}

// Eq builds field == value.
func Eq(field string, value ir.IRValue) Comparison { return compare(Equal, field, value) }

// Ne builds field != value.
func Ne(field string, value ir.IRValue) Comparison { return compare(NotEqual, field, value) }

// Gt builds field > value.
func Gt(field string, value ir.IRValue) Comparison { return compare(GreaterThan, field, value) }

// Gte builds field >= value.
func Gte(field string, value ir.IRValue) Comparison {
	return compare(GreaterThanOrEqual, field, value)
}

// Lt builds field < value.
func Lt(field string, value ir.IRValue) Comparison { return compare(LessThan, field, value) }

// Lte builds field <= value.
func Lte(field string, value ir.IRValue) Comparison {
	return compare(LessThanOrEqual, field, value)
}

// In builds "field is one of values".
func In(field string, values ...ir.IRValue) Comparison {
	return compare(Included, field, ir.IRArray(values))
}

// Regex builds "field matches pattern".
func Regex(field, pattern string) Comparison {
	return compare(MatchesRegex, field, ir.IRString(pattern))
}

// AllOf builds a conjunction.
func AllOf(children ...Condition) And { return And{Children: children} }

// AnyOf builds a disjunction.
func AnyOf(children ...Condition) Or { return Or{Children: children} }

// Negate wraps a single condition in Not.
func Negate(child Condition) Not { return Not{Children: []Condition{child}} }
