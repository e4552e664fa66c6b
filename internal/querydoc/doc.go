// Package querydoc loads query documents written in YAML, JSON or CUE.
//
// A document names a class and optionally a condition tree, sort keys and
// pagination:
//
//	class: GameScore
//	where:
//	  and:
//	    - {field: score, op: gte, value: 1000}
//	    - not:
//	        - {field: cheatMode, op: eq, value: true}
//	order: [-score, createdAt]
//	limit: 50
//	offset: 100
//
// Each where node holds exactly one of and, or, not, or a field comparison.
// Values use Parse's JSON encoding, so dates and pointers are written as
// {__type: Date, iso: ...} and {__type: Pointer, className: ..., objectId: ...}.
package querydoc
