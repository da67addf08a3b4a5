// Package gate decides pass/fail from aggregated command results and the
// working-tree diff state, and emits the structured report along the way.
package gate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/tidygate/internal/errors"
	"github.com/felixgeelhaar/tidygate/internal/git"
	"github.com/felixgeelhaar/tidygate/internal/log"
	"github.com/felixgeelhaar/tidygate/internal/report"
	"github.com/felixgeelhaar/tidygate/internal/runner"
)

// Gate evaluates the two decision points in strict order: the
// command-failure gate, then the diff gate.
type Gate struct {
	Reporter  report.Reporter
	Inspector git.Inspector
	Logger    *log.Logger

	// Commands is the original command list, reproduced in the summary's
	// how-to-fix snippet.
	Commands []string

	FailMessage        string
	FailOnCommandError bool
	FailOnDiff         bool
}

// CheckCommands runs the command-failure gate. The command_failures output
// is set unconditionally; per-command failures are reported in a grouped
// section. The returned error covers reporting-sink failures only — gate
// outcomes travel in the Decision.
func (g *Gate) CheckCommands(results []runner.Result) (Decision, error) {
	failed := runner.Report{Results: results}.Failed()

	if err := g.Reporter.SetOutput("command_failures", strconv.Itoa(len(failed))); err != nil {
		return Decision{}, err
	}

	if len(failed) == 0 {
		return ContinueRun(), nil
	}

	g.Reporter.StartGroup("Command failures")
	for _, result := range failed {
		msg := "command failed: " + result.Command
		if result.ExitCode != nil {
			msg += fmt.Sprintf(" (exit code %d)", *result.ExitCode)
		}
		g.Reporter.Warning(msg)
		if result.Stderr != "" {
			g.Reporter.Error(result.Stderr)
		}
	}
	g.Reporter.EndGroup()

	if !g.FailOnCommandError {
		g.Logger.Warn("continuing despite command failures", "failures", len(failed))
		return ContinueRun(), nil
	}

	lines := make([]string, 0, len(failed))
	for _, result := range failed {
		lines = append(lines, failureLine(result))
	}
	return FailWith(errors.NewCommandGateError(len(failed), strings.Join(lines, "\n"))), nil
}

// CheckDiff runs the diff gate. The has_diff output is set unconditionally;
// changed_files and diff_count are only set when a diff exists. A clean
// tree yields SucceedEarly, bypassing all diff-detail reporting. The
// returned DiffState feeds the run manifest.
func (g *Gate) CheckDiff(ctx context.Context) (Decision, DiffState, error) {
	hasDiff, err := g.Inspector.HasChanges(ctx)
	if err != nil {
		return Decision{}, DiffState{}, err
	}

	if err := g.Reporter.SetOutput("has_diff", strconv.FormatBool(hasDiff)); err != nil {
		return Decision{}, DiffState{}, err
	}

	if !hasDiff {
		g.Reporter.Notice("Working tree is clean; no uncommitted changes detected.")
		summary := report.NewSummary().
			Heading(2, "Working tree clean").
			Text("All commands ran and no uncommitted changes were detected.")
		if err := g.Reporter.WriteSummary(summary); err != nil {
			return Decision{}, DiffState{}, err
		}
		return EarlySuccess(), DiffState{}, nil
	}

	files, err := g.Inspector.ChangedFiles(ctx)
	if err != nil {
		return Decision{}, DiffState{}, err
	}
	state := DiffState{HasDiff: true, Files: files}

	if err := g.Reporter.SetOutput("changed_files", strings.Join(files, "\n")); err != nil {
		return Decision{}, state, err
	}
	if err := g.Reporter.SetOutput("diff_count", strconv.Itoa(state.Count())); err != nil {
		return Decision{}, state, err
	}

	g.Reporter.StartGroup("Changed files")
	for _, file := range files {
		g.Reporter.Info(file)
	}
	g.Reporter.EndGroup()

	g.Reporter.StartGroup("Diff")
	if err := g.Inspector.PrintDiff(ctx, files, g.Reporter.Raw()); err != nil {
		g.Reporter.EndGroup()
		return Decision{}, state, err
	}
	g.Reporter.EndGroup()

	summary := report.NewSummary().
		Heading(2, "Uncommitted changes detected").
		Text(g.FailMessage).
		Heading(3, "Changed files").
		List(files...).
		Heading(3, "How to fix").
		Text("Run the commands below locally and commit the resulting changes:").
		Code("sh", strings.Join(g.Commands, "\n"))
	if err := g.Reporter.WriteSummary(summary); err != nil {
		return Decision{}, state, err
	}

	if g.FailOnDiff {
		return FailWith(errors.NewDiffGateError(g.FailMessage)), state, nil
	}

	g.Logger.Warn("diff detected but fail-on-diff is disabled", "files", state.Count())
	return ContinueRun(), state, nil
}

// failureLine renders one failed command for the aggregated fatal message:
// command text, exit code, and failure description.
func failureLine(result runner.Result) string {
	if result.Message != "" {
		return result.Message
	}
	if result.ExitCode != nil {
		return fmt.Sprintf("command `%s` exited with code %d", result.Command, *result.ExitCode)
	}
	return fmt.Sprintf("command `%s` failed", result.Command)
}
