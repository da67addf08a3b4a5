// Package git provides the version-control diff inspector collaborator.
package git

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/tidygate/internal/errors"
)

// Inspector answers questions about the working tree. It is an explicit
// port so tests can substitute a fake.
type Inspector interface {
	// HasChanges reports whether the working tree has uncommitted changes,
	// including untracked files.
	HasChanges(ctx context.Context) (bool, error)

	// ChangedFiles returns the changed file paths in the order git
	// reports them. The order is preserved, not re-sorted.
	ChangedFiles(ctx context.Context) ([]string, error)

	// PrintDiff writes the unified diff for the given paths to w.
	PrintDiff(ctx context.Context, paths []string, w io.Writer) error
}

// CLI inspects the working tree by shelling out to git.
type CLI struct {
	// Dir is the repository directory. Empty means the process's
	// working directory.
	Dir string
}

// HasChanges implements Inspector
func (c *CLI) HasChanges(ctx context.Context) (bool, error) {
	out, err := c.status(ctx)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// ChangedFiles implements Inspector
func (c *CLI) ChangedFiles(ctx context.Context) ([]string, error) {
	out, err := c.status(ctx)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		// Renames are reported as "old -> new"; the new path is the
		// one that exists in the tree.
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		path = strings.Trim(path, `"`)
		files = append(files, path)
	}
	return files, nil
}

// PrintDiff implements Inspector. Untracked files have no diff against the
// index, so they appear in the changed-file list but not here.
func (c *CLI) PrintDiff(ctx context.Context, paths []string, w io.Writer) error {
	args := append([]string{"diff", "--"}, paths...)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.Dir
	cmd.Stdout = w

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeGitDiff, "git diff failed: "+strings.TrimSpace(stderr.String()), err)
	}
	return nil
}

func (c *CLI) status(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrap(errors.ErrCodeGitStatus, "git status failed: "+strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}
