package cli

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/parsemapper/internal/testutil"
)

func TestFind(t *testing.T) {
	env := newTestEnv(t, "json")
	env.fake.Seed("GameScore", "a1", map[string]any{"score": 1500, "playerName": "Sean Plott"})

	out, err := run(t, NewFindCommand(env.opts), queryPath("complex.yaml"))
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   FindResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "GameScore", resp.Data.Class)
	assert.Equal(t, 1, resp.Data.Count)
	assert.Equal(t, "a1", resp.Data.Results[0]["objectId"])

	reqs := env.fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "50", reqs[0].Query.Get("limit"))
	assert.Equal(t, "100", reqs[0].Query.Get("skip"))
	assert.Equal(t, testutil.FakeRESTKey, reqs[0].Header.Get("X-Parse-REST-API-Key"))
}

func TestFind_Text(t *testing.T) {
	env := newTestEnv(t, "text")
	env.fake.Seed("GameScore", "a1", map[string]any{"score": 1})
	env.fake.Seed("GameScore", "a2", map[string]any{"score": 2})

	out, err := run(t, NewFindCommand(env.opts), queryPath("all.yaml"))
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 3)
	assert.JSONEq(t, `{"objectId":"a1","score":1}`, got[0])
	assert.Equal(t, "2 result(s) from GameScore", got[2])
}

func TestFind_MasterFlag(t *testing.T) {
	env := newTestEnv(t, "json")
	writeTestFile(t, env.dir, "parse.yaml", "app_id: "+testutil.FakeAppID+
		"\napi_key: "+testutil.FakeMasterKey+"\nhost: "+env.fake.URL+"\n")
	env.opts.Master = true

	_, err := run(t, NewFindCommand(env.opts), queryPath("all.yaml"))
	require.NoError(t, err)
	assert.Equal(t, testutil.FakeMasterKey, env.fake.Requests()[0].Header.Get("X-Parse-Master-Key"))
}

func TestFind_UntranslatableQuerySkipsNetwork(t *testing.T) {
	env := newTestEnv(t, "json")

	_, err := run(t, NewFindCommand(env.opts), queryPath("negated_regex.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, env.fake.Requests())
}

func TestFind_MissingConfig(t *testing.T) {
	env := newTestEnv(t, "json")
	env.opts.ConfigDir = t.TempDir()

	out, err := run(t, NewFindCommand(env.opts), queryPath("all.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeConfig)
}

func TestFind_RemoteError(t *testing.T) {
	env := newTestEnv(t, "json")
	env.fake.FailOn(http.MethodGet, "/1/classes/GameScore", http.StatusBadRequest, 102, "bad query")

	out, err := run(t, NewFindCommand(env.opts), queryPath("all.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, ErrCodeRemote, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "bad query")
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t, "text")
	path := writeTestFile(t, t.TempDir(), "scores.json",
		`[{"score": 9007199254740993, "objectId": "ignored"}, {"score": 2}]`)

	out, err := run(t, NewCreateCommand(env.opts), "GameScore", path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"created GameScore/obj1",
		"created GameScore/obj2",
		"2 object(s) created",
	}, lines(out))

	reqs := env.fake.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, `{"score":9007199254740993}`, strings.TrimSpace(string(reqs[0].Raw)))
	assert.Equal(t, 2, env.fake.Count("GameScore"))
}

func TestCreate_SingleObjectJSON(t *testing.T) {
	env := newTestEnv(t, "json")
	path := writeTestFile(t, t.TempDir(), "user.json", `{"username": "cooldude"}`)

	out, err := run(t, NewCreateCommand(env.opts), "_User", path)
	require.NoError(t, err)

	var resp struct {
		Data WriteResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, WriteResult{Class: "_User", Count: 1, IDs: []string{"obj1"}}, resp.Data)
	assert.Equal(t, "/1/users", env.fake.Requests()[0].Path)
}

func TestCreate_BadFile(t *testing.T) {
	env := newTestEnv(t, "json")
	path := writeTestFile(t, t.TempDir(), "bad.json", `"just a string"`)

	_, err := run(t, NewCreateCommand(env.opts), "GameScore", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, env.fake.Requests())
}

func TestUpdate(t *testing.T) {
	env := newTestEnv(t, "text")
	env.fake.Seed("GameScore", "a1", map[string]any{"score": 1})
	path := writeTestFile(t, t.TempDir(), "patch.json", `{"score": 42, "updatedAt": "x"}`)

	out, err := run(t, NewUpdateCommand(env.opts), "GameScore", "a1", path)
	require.NoError(t, err)
	assert.Contains(t, out, "updated GameScore/a1")

	stored, ok := env.fake.Object("GameScore", "a1")
	require.True(t, ok)
	assert.EqualValues(t, 42, stored["score"])
	assert.Equal(t, testutil.FakeUpdatedAt, stored["updatedAt"])
}

func TestUpdate_NotFound(t *testing.T) {
	env := newTestEnv(t, "json")
	path := writeTestFile(t, t.TempDir(), "patch.json", `{"score": 42}`)

	out, err := run(t, NewUpdateCommand(env.opts), "GameScore", "missing", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestUpdate_RejectsArray(t *testing.T) {
	env := newTestEnv(t, "json")
	path := writeTestFile(t, t.TempDir(), "patch.json", `[{"a": 1}, {"b": 2}]`)

	_, err := run(t, NewUpdateCommand(env.opts), "GameScore", "a1", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t, "text")
	env.fake.Seed("GameScore", "a1", map[string]any{})
	env.fake.Seed("GameScore", "a2", map[string]any{})

	out, err := run(t, NewDeleteCommand(env.opts), "GameScore", "a1", "a2")
	require.NoError(t, err)
	assert.Contains(t, out, "2 object(s) deleted")
	assert.Equal(t, 0, env.fake.Count("GameScore"))
}

func TestDelete_StopsAtFirstFailure(t *testing.T) {
	env := newTestEnv(t, "json")
	env.fake.Seed("GameScore", "a2", map[string]any{})

	_, err := run(t, NewDeleteCommand(env.opts), "GameScore", "gone", "a2")
	require.Error(t, err)
	assert.Equal(t, 1, env.fake.Count("GameScore"))
	assert.Len(t, env.fake.Requests(), 1)
}

func TestUpload(t *testing.T) {
	env := newTestEnv(t, "text")
	path := writeTestFile(t, t.TempDir(), "notes.txt", "hello world")

	out, err := run(t, NewUploadCommand(env.opts), path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"name: tfss-11-notes.txt",
		"url:  " + env.fake.URL + "/files/" + testutil.FakeAppID + "/tfss-11-notes.txt",
		"size: 11 B",
	}, lines(out))

	req := env.fake.Requests()[0]
	assert.Equal(t, "/1/files/notes.txt", req.Path)
	assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "text/plain"))
}

func TestUpload_NameFlag(t *testing.T) {
	env := newTestEnv(t, "json")
	path := writeTestFile(t, t.TempDir(), "blob", "\x89PNG\r\n\x1a\n")

	out, err := run(t, NewUploadCommand(env.opts), "--name", "avatar.png", path)
	require.NoError(t, err)

	var resp struct {
		Data UploadResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "tfss-8-avatar.png", resp.Data.Name)
	assert.Equal(t, 8, resp.Data.Bytes)
	assert.Equal(t, "image/png", env.fake.Requests()[0].Header.Get("Content-Type"))
}

func TestJournal(t *testing.T) {
	env := newTestEnv(t, "json")
	env.fake.Seed("GameScore", "a1", map[string]any{})
	dbPath := filepath.Join(t.TempDir(), "calls.db")
	env.opts.Journal = dbPath

	_, err := run(t, NewFindCommand(env.opts), queryPath("all.yaml"))
	require.NoError(t, err)
	_, err = run(t, NewDeleteCommand(env.opts), "GameScore", "missing")
	require.Error(t, err)

	out, err := run(t, NewJournalCommand(env.opts), dbPath)
	require.NoError(t, err)

	var resp struct {
		Data []struct {
			Method string `json:"method"`
			Path   string `json:"path"`
			Status int    `json:"status"`
			Error  string `json:"error"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, http.MethodGet, resp.Data[0].Method)
	assert.Equal(t, "/1/classes/GameScore", resp.Data[0].Path)
	assert.Equal(t, http.StatusNotFound, resp.Data[1].Status)
	assert.NotEmpty(t, resp.Data[1].Error)

	out, err = run(t, NewJournalCommand(env.opts), "--failed", dbPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, http.MethodDelete, resp.Data[0].Method)
}

func TestJournal_Text(t *testing.T) {
	env := newTestEnv(t, "text")
	dbPath := filepath.Join(t.TempDir(), "calls.db")
	env.opts.Journal = dbPath

	_, err := run(t, NewFindCommand(env.opts), queryPath("all.yaml"))
	require.NoError(t, err)

	out, err := run(t, NewJournalCommand(env.opts), dbPath)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "SEQ"))
	assert.Contains(t, got[1], "/1/classes/GameScore")
	assert.Equal(t, "1 call(s)", got[2])
}

func TestJournal_MissingFile(t *testing.T) {
	out, err := run(t, NewJournalCommand(&RootOptions{Format: "json"}), filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}
