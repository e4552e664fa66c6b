// Package store provides a SQLite journal of Parse REST calls.
//
// Every request the parse client completes can be appended as one row
// holding the method, path, encoded query string, HTTP status, duration and
// error text. Rows are ordered by an autoincrement seq and never updated.
//
// The journal runs in WAL mode with a 5 second busy timeout, so `parsemapper
// journal` can read it while another invocation is writing. Schema steps
// are applied on Open, one transaction each, and tracked with PRAGMA
// user_version.
package store
