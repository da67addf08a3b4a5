package cmd

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tidygate/internal/errors"
	"github.com/felixgeelhaar/tidygate/internal/exitcode"
)

// newTestRoot builds a fresh command tree so flag state never leaks
// between tests.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "tidygate", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// initRepo creates a git repository with one committed file and makes it
// the working directory for the test.
func initRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		gitCmd := exec.Command("git", args...)
		gitCmd.Dir = dir
		out, err := gitCmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracked.txt"), []byte("original\n"), 0600))
	run("add", ".")
	run("commit", "-m", "initial")

	prevWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	// Keep ambient CI configuration out of the test.
	for _, key := range []string{"TIDYGATE_RUN", "INPUT_RUN", "TIDYGATE_FAIL_ON_DIFF", "TIDYGATE_FAIL_MESSAGE", "TIDYGATE_FAIL_ON_COMMAND_ERROR"} {
		t.Setenv(key, "")
	}

	return dir
}

func execCheck(t *testing.T, args ...string) error {
	t.Helper()
	root := newTestRoot()
	root.SetArgs(append([]string{"check", "--reporter", "console", "--no-banner", "--log-level", "error"}, args...))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestCheckCleanTree(t *testing.T) {
	initRepo(t)

	err := execCheck(t, "--run", "echo hello")
	assert.NoError(t, err)
}

func TestCheckDirtyTreeFails(t *testing.T) {
	initRepo(t)

	err := execCheck(t, "--run", "echo dirty > tracked.txt")
	require.Error(t, err)

	var tgErr *errors.TidygateError
	require.ErrorAs(t, err, &tgErr)
	assert.Equal(t, errors.ErrCodeGateDiff, tgErr.Code)
	assert.Equal(t, "Generated or formatted files are out of date.", tgErr.Message)
	assert.Equal(t, exitcode.DiffDetected, exitcode.DetermineExitCode(err))
}

func TestCheckDirtyTreeCustomMessage(t *testing.T) {
	initRepo(t)

	err := execCheck(t, "--run", "touch generated.txt", "--fail-message", "Run make gen.")
	require.Error(t, err)

	var tgErr *errors.TidygateError
	require.ErrorAs(t, err, &tgErr)
	assert.Equal(t, "Run make gen.", tgErr.Message)
}

func TestCheckDirtyTreePassesWhenDisabled(t *testing.T) {
	initRepo(t)

	err := execCheck(t, "--run", "touch generated.txt", "--fail-on-diff=false")
	assert.NoError(t, err)
}

func TestCheckCommandFailureGate(t *testing.T) {
	initRepo(t)

	err := execCheck(t, "--run", "false", "--fail-on-command-error")
	require.Error(t, err)

	var tgErr *errors.TidygateError
	require.ErrorAs(t, err, &tgErr)
	assert.Equal(t, errors.ErrCodeGateCommands, tgErr.Code)
	assert.Equal(t, exitcode.CommandFailed, exitcode.DetermineExitCode(err))
}

func TestCheckCommandFailureContinuesByDefault(t *testing.T) {
	initRepo(t)

	// The command fails but leaves the tree clean, so the run passes.
	err := execCheck(t, "--run", "false")
	assert.NoError(t, err)
}

func TestCheckNoCommandsIsUsageError(t *testing.T) {
	initRepo(t)

	err := execCheck(t)
	require.Error(t, err)

	var tgErr *errors.TidygateError
	require.ErrorAs(t, err, &tgErr)
	assert.Equal(t, errors.ErrCodeConfigNoCommands, tgErr.Code)
	assert.Equal(t, exitcode.UsageError, exitcode.DetermineExitCode(err))
}

func TestCheckWritesManifest(t *testing.T) {
	initRepo(t)
	manifestDir := filepath.Join(t.TempDir(), "manifests")

	err := execCheck(t, "--run", "echo hello", "--manifest-dir", manifestDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(manifestDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCheckConfigFile(t *testing.T) {
	dir := initRepo(t)

	content := "run: touch generated.txt\nfail-message: Regenerate and commit.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tidygate.yaml"), []byte(content), 0600))

	// The config file itself dirties the tree; commit it first.
	gitCmd := exec.Command("git", "add", ".")
	gitCmd.Dir = dir
	require.NoError(t, gitCmd.Run())
	gitCmd = exec.Command("git", "commit", "-m", "add config")
	gitCmd.Dir = dir
	require.NoError(t, gitCmd.Run())

	err := execCheck(t)
	require.Error(t, err)

	var tgErr *errors.TidygateError
	require.ErrorAs(t, err, &tgErr)
	assert.Equal(t, "Regenerate and commit.", tgErr.Message)
}

func TestVersionCommand(t *testing.T) {
	root := newTestRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "tidygate")
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "GATE-002: dirty", oneLine(errors.New(errors.ErrCodeGateDiff, "dirty")))
	assert.Equal(t, "plain failure", oneLine(stderrors.New("plain failure")))
}
