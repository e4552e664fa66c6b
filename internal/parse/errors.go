package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Parse error codes the adapter reacts to.
const (
	CodeObjectNotFound = 101
	CodeInvalidQuery   = 102
)

// APIError is a non-2xx response from Parse.
//
// Parse error bodies look like:
//
//	{"code": 101, "error": "object not found for update"}
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("parse: %s (code=%d, status=%d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("parse: %s (status=%d)", e.Message, e.Status)
}

// IsNotFound returns true if err reports a missing object.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Code == CodeObjectNotFound || ae.Status == http.StatusNotFound
	}
	return false
}

// IsAPIError returns true if err is (or wraps) an *APIError.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

func decodeAPIError(status int, body []byte) *APIError {
	ae := &APIError{}
	if err := json.Unmarshal(body, ae); err != nil || ae.Message == "" {
		ae.Message = http.StatusText(status)
	}
	ae.Status = status
	return ae
}
