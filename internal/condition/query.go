package condition

import "github.com/roach88/parsemapper/internal/ir"

const (
	// PrimaryKey is the identity field of every Parse object.
	// Parse does not accept it as a sort key.
	PrimaryKey = "objectId"

	// CreatedAt and UpdatedAt are maintained by the server.
	CreatedAt = "createdAt"
	UpdatedAt = "updatedAt"

	// UserClass is the storage name of the built-in user class, which is
	// served from /users instead of /classes/_User.
	UserClass = "_User"
)

// Direction is the sort direction of an Order entry.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is one sort key of a query.
type Order struct {
	Field     string
	Direction Direction
}

// Ascending builds an ascending sort key.
func Ascending(field string) Order {
	return Order{Field: ir.NormalizeName(field), Direction: Asc}
}

// Descending builds a descending sort key.
func Descending(field string) Order {
	return Order{Field: ir.NormalizeName(field), Direction: Desc}
}

// Query is a read request against one Parse class.
//
// Semantics:
//
//	SELECT * FROM <ClassName> WHERE <Conditions> ORDER BY <Order> LIMIT <Limit> OFFSET <Offset>
//
// Conditions may be nil (no filter). Limit nil means the service maximum.
// Offset 0 means no skip.
type Query struct {
	ClassName  string
	Conditions Condition
	Order      []Order
	Limit      *int
	Offset     int
}

// NewQuery creates a query against className with no conditions.
func NewQuery(className string) Query {
	return Query{ClassName: ir.NormalizeName(className)}
}

// Where returns a copy of q with the given conditions.
func (q Query) Where(c Condition) Query {
	q.Conditions = c
	return q
}

// OrderBy returns a copy of q with the given sort keys appended.
func (q Query) OrderBy(orders ...Order) Query {
	q.Order = append(append([]Order(nil), q.Order...), orders...)
	return q
}

// WithLimit returns a copy of q with the given limit.
func (q Query) WithLimit(n int) Query {
	q.Limit = &n
	return q
}

// WithOffset returns a copy of q with the given offset.
func (q Query) WithOffset(n int) Query {
	q.Offset = n
	return q
}
