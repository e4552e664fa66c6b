package parse

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/parsemapper/internal/ir"
	"github.com/roach88/parsemapper/internal/testutil"
)

func newTestClient(t *testing.T, master bool, opts ...Option) (*Client, *testutil.FakeParse) {
	t.Helper()
	fake := testutil.NewFakeParse(t)
	key := testutil.FakeRESTKey
	if master {
		key = testutil.FakeMasterKey
	}
	cfg := Config{AppID: testutil.FakeAppID, APIKey: key, Master: master, Host: fake.URL}
	opts = append([]Option{WithHTTPClient(fake.Client())}, opts...)
	return New(cfg, opts...), fake
}

func TestConfig_KeyHeader(t *testing.T) {
	assert.Equal(t, APIKeyHeader, Config{}.KeyHeader())
	assert.Equal(t, MasterKeyHeader, Config{Master: true}.KeyHeader())
}

func TestResource_Paths(t *testing.T) {
	c := New(Config{AppID: "a", APIKey: "k"})

	assert.Equal(t, "/1/classes/GameScore", c.Resource("GameScore").Path())
	assert.Equal(t, "/1/classes/GameScore/abc", c.Resource("GameScore").Object("abc").Path())
	assert.Equal(t, "/1/users", c.Resource("_User").Path())
	assert.Equal(t, "/1/users/u1", c.Resource("_User").Object("u1").Path())
	assert.Equal(t, "/1/classes/Odd%20Name", c.Resource("Odd Name").Path())

	v2 := New(Config{AppID: "a", APIKey: "k", Version: "2"})
	assert.Equal(t, "/2/classes/GameScore", v2.Resource("GameScore").Path())
}

func TestClient_RESTKeyHeaders(t *testing.T) {
	c, fake := newTestClient(t, false)

	_, err := c.Resource("GameScore").Get(context.Background(), nil)
	require.NoError(t, err)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, testutil.FakeAppID, reqs[0].Header.Get(AppIDHeader))
	assert.Equal(t, testutil.FakeRESTKey, reqs[0].Header.Get(APIKeyHeader))
	assert.Empty(t, reqs[0].Header.Get(MasterKeyHeader))
}

func TestClient_MasterKeyHeaders(t *testing.T) {
	c, fake := newTestClient(t, true)

	_, err := c.Resource("GameScore").Get(context.Background(), nil)
	require.NoError(t, err)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, testutil.FakeMasterKey, reqs[0].Header.Get(MasterKeyHeader))
	assert.Empty(t, reqs[0].Header.Get(APIKeyHeader))
}

func TestResource_GetSendsQuery(t *testing.T) {
	c, fake := newTestClient(t, false)
	fake.Seed("GameScore", "s1", map[string]any{"score": 10})

	params := url.Values{}
	params.Set("limit", "5")
	params.Set("where", `{"score":{"$gt":1}}`)

	result, err := c.Resource("GameScore").Get(context.Background(), params)
	require.NoError(t, err)

	results, ok := result["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)

	reqs := fake.Requests()
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/1/classes/GameScore", reqs[0].Path)
	assert.Equal(t, "5", reqs[0].Query.Get("limit"))
	assert.Equal(t, `{"score":{"$gt":1}}`, reqs[0].Query.Get("where"))
}

func TestResource_PostPutDelete(t *testing.T) {
	c, fake := newTestClient(t, false)
	ctx := context.Background()
	res := c.Resource("GameScore")

	created, err := res.Post(ctx, map[string]any{"score": ir.IRInt(1337), "when": ir.NewIRDate(time.Unix(0, 0))})
	require.NoError(t, err)
	id, _ := created["objectId"].(string)
	require.NotEmpty(t, id)

	_, err = res.Object(id).Put(ctx, map[string]any{"score": 1338})
	require.NoError(t, err)

	obj, ok := fake.Object("GameScore", id)
	require.True(t, ok)
	assert.EqualValues(t, 1338, obj["score"])

	_, err = res.Object(id).Delete(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, fake.Count("GameScore"))

	reqs := fake.Requests()
	require.Len(t, reqs, 3)
	assert.NotEmpty(t, reqs[0].Header.Get(RequestIDHeader))
	assert.NotEmpty(t, reqs[1].Header.Get(RequestIDHeader))
	assert.NotEqual(t, reqs[0].Header.Get(RequestIDHeader), reqs[1].Header.Get(RequestIDHeader))
	assert.Empty(t, reqs[2].Header.Get(RequestIDHeader))
	assert.Equal(t, map[string]any{"__type": "Date", "iso": "1970-01-01T00:00:00.000Z"}, reqs[0].Body["when"])
}

func TestResource_APIError(t *testing.T) {
	c, _ := newTestClient(t, false)

	_, err := c.Resource("GameScore").Object("missing").Put(context.Background(), map[string]any{"a": 1})
	require.Error(t, err)
	assert.True(t, IsAPIError(err))
	assert.True(t, IsNotFound(err))

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, CodeObjectNotFound, ae.Code)
	assert.Equal(t, "object not found", ae.Message)
	assert.Equal(t, "parse: object not found (code=101, status=404)", ae.Error())
}

func TestResource_Unauthorized(t *testing.T) {
	fake := testutil.NewFakeParse(t)
	c := New(Config{AppID: testutil.FakeAppID, APIKey: "wrong", Host: fake.URL}, WithHTTPClient(fake.Client()))

	_, err := c.Resource("GameScore").Get(context.Background(), nil)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "unauthorized", ae.Message)
	assert.False(t, IsNotFound(err))
}

func TestResource_TransportError(t *testing.T) {
	fake := testutil.NewFakeParse(t)
	c := New(Config{AppID: testutil.FakeAppID, APIKey: testutil.FakeRESTKey, Host: fake.URL}, WithHTTPClient(fake.Client()))
	fake.Close()

	_, err := c.Resource("GameScore").Get(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, IsAPIError(err))
	assert.Contains(t, err.Error(), "GET /1/classes/GameScore")
}

func TestClient_Observer(t *testing.T) {
	var calls []Call
	c, fake := newTestClient(t, false, WithObserver(func(call Call) {
		calls = append(calls, call)
	}))
	fake.FailOn(http.MethodDelete, "/1/classes/GameScore/x", http.StatusBadRequest, 102, "bad")

	params := url.Values{"limit": {"1"}}
	_, err := c.Resource("GameScore").Get(context.Background(), params)
	require.NoError(t, err)
	_, err = c.Resource("GameScore").Object("x").Delete(context.Background())
	require.Error(t, err)

	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "/1/classes/GameScore", calls[0].Path)
	assert.Equal(t, params, calls[0].Query)
	assert.Equal(t, http.StatusOK, calls[0].Status)
	assert.NoError(t, calls[0].Err)

	assert.Equal(t, http.MethodDelete, calls[1].Method)
	assert.Equal(t, http.StatusBadRequest, calls[1].Status)
	assert.Error(t, calls[1].Err)
}

func TestClient_UploadFile(t *testing.T) {
	c, fake := newTestClient(t, false)

	file, err := c.UploadFile(context.Background(), "hello.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "tfss-5-hello.txt", file.Name)
	assert.Contains(t, file.URL, "/files/")

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/1/files/hello.txt", reqs[0].Path)
	assert.Equal(t, "text/plain", reqs[0].Header.Get("Content-Type"))
	assert.Equal(t, []byte("hello"), reqs[0].Raw)
}

func TestDecodeObject_KeepsIntegers(t *testing.T) {
	obj, err := decodeObject([]byte(`{"big": 9007199254740993}`))
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", obj["big"].(interface{ String() string }).String())

	obj, err = decodeObject(nil)
	require.NoError(t, err)
	assert.Empty(t, obj)
}

func TestDecodeAPIError_FallsBackToStatusText(t *testing.T) {
	ae := decodeAPIError(http.StatusBadGateway, []byte("<html>"))
	assert.Equal(t, http.StatusBadGateway, ae.Status)
	assert.Equal(t, "Bad Gateway", ae.Message)
	assert.Equal(t, "parse: Bad Gateway (status=502)", ae.Error())
}
