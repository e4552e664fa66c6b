// Package ir provides the literal value types that appear on the right-hand
// side of query comparisons and in record attributes sent to Parse.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - IRValue is sealed: only the types in this package implement it
//   - Every value marshals to the JSON shape the Parse REST API expects
//   - Parse typed values (Date, Pointer, File) carry their "__type" marker
//   - Field and class names are NFC-normalized before they reach the wire
package ir
