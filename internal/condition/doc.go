// Package condition provides the abstract query model that the where
// translator consumes: a boolean condition tree, ordering and pagination.
//
// ARCHITECTURE:
//
//	[query document / caller] → [condition.Query] → [where.BuildParams] → Parse REST params
//
// SEALED INTERFACES:
//
// Condition is a sealed interface using the marker method pattern. Only
// And, Or, Not and Comparison implement it, so translators can switch
// exhaustively and treat anything else as an error:
//
//	switch c := cond.(type) {
//	case condition.And:
//	case condition.Or:
//	case condition.Not:
//	case condition.Comparison:
//	default:
//	    // unsupported - fail, never guess
//	}
//
// Both value and pointer forms of each node are accepted by the translator.
package condition
