package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const workedExample = `{"projector":{"/":{"foo":"bar1","fem":"is great"},"/foo":{"foo":"baz","bar":"baz"},"/foo/bar":{"foo":"bar3"}}}`

// testEnv points the user config directory at a temp dir so the real
// settings file is never read, and returns a store path inside it.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	return filepath.Join(dir, "projector.json")
}

// seedStore writes the worked example to a new store and returns its path.
func seedStore(t *testing.T) string {
	t.Helper()
	path := testEnv(t)
	require.NoError(t, os.WriteFile(path, []byte(workedExample), 0o644))
	return path
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
