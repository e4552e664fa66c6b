package condition

import (
	"fmt"

	"github.com/roach88/parsemapper/internal/ir"
)

// ValidationResult contains the structural analysis of a condition tree.
//
// Validate never fails: a tree with warnings may still translate, or may be
// rejected later by the translator. Warnings tell the caller why.
type ValidationResult struct {
	// IsWellFormed is true when no warnings were produced.
	IsWellFormed bool

	// Warnings lists structural problems found in the tree.
	Warnings []string
}

// Validate checks a condition tree for structural problems.
//
// Rules:
//  1. Every Comparison names a field and uses a known operator
//  2. Included compares against an array
//  3. MatchesRegex compares against a string
//  4. Not holds exactly one child
//  5. Or holds at least one child
//  6. No child is nil
//
// Validate is a pure function with no side effects.
func Validate(c Condition) ValidationResult {
	v := &validator{
		warnings: []string{},
	}
	if c != nil {
		v.validate(c, "")
	}

	return ValidationResult{
		IsWellFormed: len(v.warnings) == 0,
		Warnings:     v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
}

func (v *validator) addWarning(path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if path != "" {
		msg = path + ": " + msg
	}
	v.warnings = append(v.warnings, msg)
}

func (v *validator) validate(c Condition, path string) {
	switch node := c.(type) {
	case nil:
		v.addWarning(path, "nil condition")
	case And:
		v.validateChildren("and", node.Children, path)
	case *And:
		v.validateChildren("and", node.Children, path)
	case Or:
		v.validateOr(node, path)
	case *Or:
		v.validateOr(*node, path)
	case Not:
		v.validateNot(node, path)
	case *Not:
		v.validateNot(*node, path)
	case Comparison:
		v.validateComparison(node, path)
	case *Comparison:
		v.validateComparison(*node, path)
	default:
		v.addWarning(path, "unknown condition type %T", c)
	}
}

func (v *validator) validateChildren(kind string, children []Condition, path string) {
	for i, child := range children {
		v.validate(child, fmt.Sprintf("%s%s[%d]", prefix(path), kind, i))
	}
}

func (v *validator) validateOr(or Or, path string) {
	if len(or.Children) == 0 {
		v.addWarning(path, "or without children matches nothing")
	}
	v.validateChildren("or", or.Children, path)
}

func (v *validator) validateNot(not Not, path string) {
	if len(not.Children) != 1 {
		v.addWarning(path, "not should hold exactly one child, has %d", len(not.Children))
	}
	v.validateChildren("not", not.Children, path)
}

func (v *validator) validateComparison(cmp Comparison, path string) {
	if cmp.Field == "" {
		v.addWarning(path, "comparison without field")
	}
	if !cmp.Op.Valid() {
		v.addWarning(path, "unknown operator %q on field %q", cmp.Op, cmp.Field)
		return
	}
	switch cmp.Op {
	case Included:
		if _, ok := cmp.Value.(ir.IRArray); !ok {
			v.addWarning(path, "field %q: %s expects an array, got %T", cmp.Field, cmp.Op, cmp.Value)
		}
	case MatchesRegex:
		if _, ok := cmp.Value.(ir.IRString); !ok {
			v.addWarning(path, "field %q: %s expects a string pattern, got %T", cmp.Field, cmp.Op, cmp.Value)
		}
	}
}

func prefix(path string) string {
	if path == "" {
		return ""
	}
	return path + "."
}
