package condition

import (
	"fmt"

	"github.com/roach88/parsemapper/internal/ir"
)

// Condition represents a node in a query's condition tree.
//
// This is a sealed interface - only types in this package implement it.
//
// Condition types:
//   - And: all children must hold
//   - Or: at least one child must hold
//   - Not: the children must not hold
//   - Comparison: one field tested against one literal value
type Condition interface {
	conditionNode() // Marker method - seals interface to this package
}

// And is a conjunction of child conditions.
// An And with no children places no constraint.
type And struct {
	Children []Condition
}

func (And) conditionNode() {}

// Or is a disjunction of child conditions.
type Or struct {
	Children []Condition
}

func (Or) conditionNode() {}

// Not negates its children. It normally holds exactly one child; when it
// holds several, each is negated in turn.
type Not struct {
	Children []Condition
}

func (Not) conditionNode() {}

// Comparison tests one field against one literal value.
//
// Example:
//
//	Comparison{Op: GreaterThan, Field: "score", Value: ir.IRInt(1000)}
type Comparison struct {
	Op    Operator
	Field string
	Value ir.IRValue
}

func (Comparison) conditionNode() {}

// Operator identifies the comparison a Comparison node performs.
type Operator string

const (
	Equal              Operator = "eq"
	NotEqual           Operator = "ne"
	GreaterThan        Operator = "gt"
	GreaterThanOrEqual Operator = "gte"
	LessThan           Operator = "lt"
	LessThanOrEqual    Operator = "lte"
	Included           Operator = "in"
	MatchesRegex       Operator = "regex"
)

// Operators lists every supported comparison operator.
var Operators = []Operator{
	Equal, NotEqual, GreaterThan, GreaterThanOrEqual,
	LessThan, LessThanOrEqual, Included, MatchesRegex,
}

// Valid reports whether op is one of the supported operators.
func (op Operator) Valid() bool {
	for _, known := range Operators {
		if op == known {
			return true
		}
	}
	return false
}

// ParseOperator converts an operator name to an Operator.
func ParseOperator(name string) (Operator, error) {
	op := Operator(name)
	if !op.Valid() {
		return "", fmt.Errorf("unknown operator %q", name)
	}
	return op, nil
}
