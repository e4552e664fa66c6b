package parse

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is a Client scoped to one REST path.
type Resource struct {
	client *Client
	path   string
}

// Path returns the resource path relative to the host.
func (r *Resource) Path() string {
	return r.path
}

// Object returns the resource for a single object of this collection.
func (r *Resource) Object(id string) *Resource {
	return &Resource{client: r.client, path: r.path + "/" + url.PathEscape(id)}
}

// Get fetches the resource with the given query parameters.
func (r *Resource) Get(ctx context.Context, params url.Values) (map[string]any, error) {
	return r.client.request(ctx, http.MethodGet, r.path, params, nil)
}

// Post creates an object from body.
func (r *Resource) Post(ctx context.Context, body any) (map[string]any, error) {
	return r.client.request(ctx, http.MethodPost, r.path, nil, body)
}

// Put updates the object with the fields in body.
func (r *Resource) Put(ctx context.Context, body any) (map[string]any, error) {
	return r.client.request(ctx, http.MethodPut, r.path, nil, body)
}

// Delete removes the object.
func (r *Resource) Delete(ctx context.Context) (map[string]any, error) {
	return r.client.request(ctx, http.MethodDelete, r.path, nil, nil)
}
