package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// Fixed timestamps returned by the fake server.
const (
	FakeCreatedAt = "2024-01-01T00:00:00.000Z"
	FakeUpdatedAt = "2024-01-02T00:00:00.000Z"
)

// Credentials the fake server accepts.
const (
	FakeAppID     = "test-app"
	FakeRESTKey   = "test-rest-key"
	FakeMasterKey = "test-master-key"
)

// Request is one request received by the fake server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   map[string]any
	Raw    []byte
}

type failure struct {
	status  int
	code    int
	message string
}

// FakeParse is an in-memory stand-in for the Parse REST API.
//
// It serves /1/classes/<Class>[/<id>], /1/users[/<id>] and /1/files/<name>.
// Collection GETs return every stored object in insertion order; the where,
// order, limit and skip parameters are recorded, not evaluated.
type FakeParse struct {
	*httptest.Server

	mu       sync.Mutex
	ids      *IDSequence
	objects  map[string]map[string]map[string]any // collection → id → object
	order    map[string][]string                  // collection → ids in insertion order
	requests []Request
	failures map[string]failure // "METHOD path" → failure
}

// NewFakeParse starts a fake server that is closed when the test ends.
func NewFakeParse(t *testing.T) *FakeParse {
	t.Helper()
	f := &FakeParse{
		ids:      NewIDSequence(""),
		objects:  make(map[string]map[string]map[string]any),
		order:    make(map[string][]string),
		failures: make(map[string]failure),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Seed stores an object directly, bypassing the API.
func (f *FakeParse) Seed(className, id string, attrs map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj := copyObject(attrs)
	obj["objectId"] = id
	f.put(collectionFor(className), id, obj)
}

// Object returns a stored object.
func (f *FakeParse) Object(className, id string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[collectionFor(className)][id]
	if !ok {
		return nil, false
	}
	return copyObject(obj), true
}

// Count returns the number of stored objects of a class.
func (f *FakeParse) Count(className string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects[collectionFor(className)])
}

// Requests returns every request received so far.
func (f *FakeParse) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// FailOn makes every request with this method and path fail with a Parse
// error body.
func (f *FakeParse) FailOn(method, path string, status, code int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = failure{status: status, code: code, message: message}
}

func collectionFor(className string) string {
	if className == "_User" {
		return "users"
	}
	return "classes/" + className
}

func (f *FakeParse) put(collection, id string, obj map[string]any) {
	if f.objects[collection] == nil {
		f.objects[collection] = make(map[string]map[string]any)
	}
	if _, exists := f.objects[collection][id]; !exists {
		f.order[collection] = append(f.order[collection], id)
	}
	f.objects[collection][id] = obj
}

func (f *FakeParse) remove(collection, id string) {
	delete(f.objects[collection], id)
	ids := f.order[collection]
	for i, existing := range ids {
		if existing == id {
			f.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

func (f *FakeParse) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Raw:    raw,
	}
	if len(raw) > 0 && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(raw, &req.Body)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)

	if fail, ok := f.failures[r.Method+" "+r.URL.Path]; ok {
		writeError(w, fail.status, fail.code, fail.message)
		return
	}
	if !authorized(r.Header) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, "/1/")
	if !ok {
		writeError(w, http.StatusNotFound, 0, "unknown api version")
		return
	}

	switch {
	case strings.HasPrefix(rest, "files/"):
		f.serveFile(w, r, strings.TrimPrefix(rest, "files/"), raw)
	case rest == "users":
		f.serveCollection(w, r, "users", req.Body)
	case strings.HasPrefix(rest, "users/"):
		f.serveObject(w, r, "users", strings.TrimPrefix(rest, "users/"), req.Body)
	case strings.HasPrefix(rest, "classes/"):
		parts := strings.SplitN(strings.TrimPrefix(rest, "classes/"), "/", 2)
		collection := "classes/" + parts[0]
		if len(parts) == 1 {
			f.serveCollection(w, r, collection, req.Body)
		} else {
			f.serveObject(w, r, collection, parts[1], req.Body)
		}
	default:
		writeError(w, http.StatusNotFound, 0, "unknown resource")
	}
}

func authorized(h http.Header) bool {
	if h.Get("X-Parse-Application-Id") != FakeAppID {
		return false
	}
	return h.Get("X-Parse-REST-API-Key") == FakeRESTKey || h.Get("X-Parse-Master-Key") == FakeMasterKey
}

func (f *FakeParse) serveCollection(w http.ResponseWriter, r *http.Request, collection string, body map[string]any) {
	switch r.Method {
	case http.MethodGet:
		results := make([]map[string]any, 0, len(f.order[collection]))
		for _, id := range f.order[collection] {
			results = append(results, f.objects[collection][id])
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	case http.MethodPost:
		id := f.ids.Next()
		obj := copyObject(body)
		obj["objectId"] = id
		obj["createdAt"] = FakeCreatedAt
		obj["updatedAt"] = FakeCreatedAt
		f.put(collection, id, obj)
		writeJSON(w, http.StatusCreated, map[string]any{"objectId": id, "createdAt": FakeCreatedAt})
	default:
		writeError(w, http.StatusMethodNotAllowed, 0, "method not allowed")
	}
}

func (f *FakeParse) serveObject(w http.ResponseWriter, r *http.Request, collection, id string, body map[string]any) {
	obj, ok := f.objects[collection][id]
	if !ok {
		writeError(w, http.StatusNotFound, 101, "object not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, obj)
	case http.MethodPut:
		for k, v := range body {
			obj[k] = v
		}
		obj["updatedAt"] = FakeUpdatedAt
		writeJSON(w, http.StatusOK, map[string]any{"updatedAt": FakeUpdatedAt})
	case http.MethodDelete:
		f.remove(collection, id)
		writeJSON(w, http.StatusOK, map[string]any{})
	default:
		writeError(w, http.StatusMethodNotAllowed, 0, "method not allowed")
	}
}

func (f *FakeParse) serveFile(w http.ResponseWriter, r *http.Request, name string, content []byte) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, 0, "method not allowed")
		return
	}
	stored := fmt.Sprintf("tfss-%d-%s", len(content), name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"name": stored,
		"url":  f.URL + "/files/" + FakeAppID + "/" + stored,
	})
}

func copyObject(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status, code int, message string) {
	body := map[string]any{"error": message}
	if code != 0 {
		body["code"] = code
	}
	writeJSON(w, status, body)
}
