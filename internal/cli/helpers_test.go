package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roach88/parsemapper/internal/testutil"
)

// To regenerate golden files, run:
//
//	go test ./internal/cli -update
func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// testEnv is a fake Parse server plus a config directory pointing at it.
type testEnv struct {
	fake *testutil.FakeParse
	dir  string
	opts *RootOptions
}

func newTestEnv(t *testing.T, format string) *testEnv {
	t.Helper()
	for _, name := range []string{"PARSE_APP_ID", "PARSE_API_KEY", "PARSE_MASTER", "PARSE_HOST", "PARSE_VERSION", "PARSE_TIMEOUT", "PARSE_JOURNAL"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	fake := testutil.NewFakeParse(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "parse.yaml", fmt.Sprintf("app_id: %s\napi_key: %s\nhost: %s\n",
		testutil.FakeAppID, testutil.FakeRESTKey, fake.URL))

	return &testEnv{
		fake: fake,
		dir:  dir,
		opts: &RootOptions{
			Format:     format,
			ConfigDir:  dir,
			Logger:     zap.NewNop(),
			HTTPClient: fake.Client(),
		},
	}
}

// run executes cmd with args and returns what it wrote to stdout.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func queryPath(name string) string {
	return filepath.Join("testdata", "queries", name)
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}
