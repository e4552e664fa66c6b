package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/roach88/parsemapper/internal/condition"
	"github.com/roach88/parsemapper/internal/ir"
)

const (
	DefaultHost    = "https://api.parse.com"
	DefaultVersion = "1"

	AppIDHeader     = "X-Parse-Application-Id"
	APIKeyHeader    = "X-Parse-REST-API-Key"
	MasterKeyHeader = "X-Parse-Master-Key"
	RequestIDHeader = "X-Parse-Request-Id"
)

// Config holds the connection settings for a Parse application.
type Config struct {
	AppID  string
	APIKey string

	// Master selects the master-key header scheme instead of the REST key.
	Master bool

	Host    string // defaults to DefaultHost
	Version string // defaults to DefaultVersion

	Timeout time.Duration // zero means no client-side timeout
}

// KeyHeader returns the header name the API key is sent under.
func (c Config) KeyHeader() string {
	if c.Master {
		return MasterKeyHeader
	}
	return APIKeyHeader
}

// Call describes one completed round trip. It is handed to the Observer.
type Call struct {
	Method   string
	Path     string
	Query    url.Values
	Status   int // 0 when the transport failed
	Duration time.Duration
	Err      error
}

// Observer receives every completed call.
type Observer func(Call)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through hc instead of a default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// WithObserver registers fn to be called after every request.
func WithObserver(fn Observer) Option {
	return func(c *Client) {
		c.observer = fn
	}
}

// Client performs authenticated requests against one Parse application.
type Client struct {
	http     *resty.Client
	version  string
	observer Observer
}

// New creates a Client for cfg.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{http: resty.New()}
	for _, opt := range opts {
		opt(c)
	}

	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	c.version = cfg.Version
	if c.version == "" {
		c.version = DefaultVersion
	}

	c.http.
		SetBaseURL(strings.TrimRight(host, "/")).
		SetHeader(AppIDHeader, cfg.AppID).
		SetHeader(cfg.KeyHeader(), cfg.APIKey).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		c.http.SetTimeout(cfg.Timeout)
	}
	return c
}

// Resource returns the collection resource for a class.
// The user class is served from /users.
func (c *Client) Resource(className string) *Resource {
	className = ir.NormalizeName(className)
	if className == condition.UserClass {
		return &Resource{client: c, path: "/" + c.version + "/users"}
	}
	return &Resource{client: c, path: "/" + c.version + "/classes/" + url.PathEscape(className)}
}

// UploadFile stores content under name and returns the file reference to
// attach to a record.
func (c *Client) UploadFile(ctx context.Context, name, contentType string, content []byte) (ir.IRFile, error) {
	path := "/" + c.version + "/files/" + url.PathEscape(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(bytes.NewReader(content))

	result, err := c.execute(req, http.MethodPost, path, nil)
	if err != nil {
		return ir.IRFile{}, err
	}

	file := ir.IRFile{}
	file.Name, _ = result["name"].(string)
	file.URL, _ = result["url"].(string)
	if file.Name == "" || file.URL == "" {
		return ir.IRFile{}, fmt.Errorf("POST %s: response missing name or url", path)
	}
	return file, nil
}

// request sends a JSON request and decodes a JSON object response.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) (map[string]any, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if method == http.MethodPost || method == http.MethodPut {
		req.SetHeader(RequestIDHeader, uuid.NewString())
	}
	return c.execute(req, method, path, query)
}

func (c *Client) execute(req *resty.Request, method, path string, query url.Values) (map[string]any, error) {
	start := time.Now()
	resp, err := req.Execute(method, path)

	call := Call{
		Method:   method,
		Path:     path,
		Query:    query,
		Duration: time.Since(start),
	}
	defer func() {
		if c.observer != nil {
			c.observer(call)
		}
	}()

	if err != nil {
		call.Err = fmt.Errorf("%s %s: %w", method, path, err)
		return nil, call.Err
	}
	call.Status = resp.StatusCode()

	if resp.IsError() {
		call.Err = decodeAPIError(resp.StatusCode(), resp.Body())
		return nil, call.Err
	}

	result, err := decodeObject(resp.Body())
	if err != nil {
		call.Err = fmt.Errorf("%s %s: decode response: %w", method, path, err)
		return nil, call.Err
	}
	return result, nil
}

// decodeObject decodes a JSON object, keeping numbers as json.Number so
// integers survive intact.
func decodeObject(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var result map[string]any
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}
	if result == nil {
		result = map[string]any{}
	}
	return result, nil
}
