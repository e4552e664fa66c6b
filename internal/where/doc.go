// Package where translates condition trees into Parse REST query
// parameters.
//
// The translator walks the tree in one of two modes:
//
//	direct   - comparisons are emitted with their own operator
//	negated  - comparisons are emitted with the inverse operator
//
// Parse's where grammar has no general negation, so a Not node is realized
// by switching mode rather than by emitting a wrapper:
//
//	Condition                      Parse where
//	---------                      -----------
//	And(a == 1, b > 2)             {"a": 1, "b": {"$gt": 2}}
//	Or(a == 1, a == 2)             {"$or": [{"a": 1}, {"a": 2}]}
//	Not(a > 2)                     {"a": {"$lte": 2}}
//	Not(Not(a == 1))               {"a": 1}
//	Not(a in [1, 2])               {"a": {"$nin": [1, 2]}}
//
// An Or is accepted anywhere in direct mode, not only at the top: below an
// And it becomes a "$or" key next to the And's other fields, so
// And(c == 1, Or(a == 1)) yields {"c": 1, "$or": [{"a": 1}]}. Parse allows
// a single "$or" per object, so a second Or under the same And fails with
// CONFLICTING_CONSTRAINT.
//
// A negated And negates every child in place; it is NOT rewritten into an
// Or of negated children. A negated Or or a negated regex has no Parse
// equivalent and fails with an UNSUPPORTED_NEGATION error.
//
// Translation is a pure function; BuildParams adds limit, skip and order.
package where
