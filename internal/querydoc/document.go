package querydoc

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/parsemapper/internal/condition"
	"github.com/roach88/parsemapper/internal/ir"
)

// Document is the decoded form of a query file.
type Document struct {
	Class  string   `yaml:"class" json:"class" validate:"required"`
	Where  *Node    `yaml:"where,omitempty" json:"where,omitempty"`
	Order  []string `yaml:"order,omitempty" json:"order,omitempty" validate:"dive,required"`
	Limit  *int     `yaml:"limit,omitempty" json:"limit,omitempty"`
	Offset int      `yaml:"offset,omitempty" json:"offset,omitempty"`
}

// Node is one element of a where tree.
type Node struct {
	And []Node `yaml:"and,omitempty" json:"and,omitempty"`
	Or  []Node `yaml:"or,omitempty" json:"or,omitempty"`
	Not []Node `yaml:"not,omitempty" json:"not,omitempty"`

	Field string `yaml:"field,omitempty" json:"field,omitempty"`
	Op    string `yaml:"op,omitempty" json:"op,omitempty"`
	Value any    `yaml:"value,omitempty" json:"value,omitempty"`
}

// DocumentError reports a malformed document. Path locates the offending
// node, e.g. "where.and[1].not[0]".
type DocumentError struct {
	Path    string
	Message string
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Query converts the document to a condition.Query.
//
// Pagination values are carried over unchecked; where.BuildParams owns
// their validation.
func (d Document) Query() (condition.Query, error) {
	if err := validate.Struct(d); err != nil {
		return condition.Query{}, &DocumentError{Message: fieldErrors(err)}
	}

	q := condition.NewQuery(d.Class)
	if d.Where != nil {
		c, err := d.Where.Condition("where")
		if err != nil {
			return condition.Query{}, err
		}
		q = q.Where(c)
	}

	orders := make([]condition.Order, 0, len(d.Order))
	for _, key := range d.Order {
		if field, ok := strings.CutPrefix(key, "-"); ok {
			orders = append(orders, condition.Descending(field))
		} else {
			orders = append(orders, condition.Ascending(key))
		}
	}
	if len(orders) > 0 {
		q = q.OrderBy(orders...)
	}

	if d.Limit != nil {
		q = q.WithLimit(*d.Limit)
	}
	return q.WithOffset(d.Offset), nil
}

// Condition converts the node and its children. path prefixes error messages.
func (n Node) Condition(path string) (condition.Condition, error) {
	kinds := 0
	for _, set := range []bool{n.And != nil, n.Or != nil, n.Not != nil, n.Field != "" || n.Op != ""} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, &DocumentError{Path: path, Message: "node must hold exactly one of and, or, not, field"}
	}

	switch {
	case n.And != nil:
		children, err := convertChildren(path+".and", n.And)
		return condition.And{Children: children}, err
	case n.Or != nil:
		children, err := convertChildren(path+".or", n.Or)
		return condition.Or{Children: children}, err
	case n.Not != nil:
		children, err := convertChildren(path+".not", n.Not)
		return condition.Not{Children: children}, err
	}

	if n.Field == "" {
		return nil, &DocumentError{Path: path, Message: "comparison without field"}
	}
	op, err := condition.ParseOperator(n.Op)
	if err != nil {
		return nil, &DocumentError{Path: path, Message: err.Error()}
	}
	value, err := ir.ToIRValue(n.Value)
	if err != nil {
		return nil, &DocumentError{Path: path + ".value", Message: err.Error()}
	}
	return condition.Comparison{Op: op, Field: ir.NormalizeName(n.Field), Value: value}, nil
}

func convertChildren(path string, nodes []Node) ([]condition.Condition, error) {
	children := make([]condition.Condition, 0, len(nodes))
	for i, child := range nodes {
		c, err := child.Condition(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, nil
}

func fieldErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Namespace()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
