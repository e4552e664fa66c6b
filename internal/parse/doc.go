// Package parse is the HTTP collaborator for the Parse REST API.
//
// A Client carries the connection configuration and authentication headers.
// Resources are pre-scoped to a path:
//
//	/1/classes/<ClassName>           class collection
//	/1/classes/<ClassName>/<id>      single object
//	/1/users                         the _User class
//	/1/users/<id>                    single user
//
// Every call is one blocking round trip. There are no retries; transport
// errors are returned wrapped with the method and path, and non-2xx
// responses are returned as *APIError.
package parse
