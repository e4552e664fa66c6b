// Package adapter performs create, read, update and delete against Parse.
//
// Reads translate a condition.Query with where.BuildParams and issue a
// single GET. Writes round-trip one record at a time: there is no batching
// and no transaction, so when a call fails the records before it are
// already committed on the server. The error is returned together with the
// number of records that succeeded.
package adapter
