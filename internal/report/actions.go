package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tidygate/internal/errors"
)

// ActionsReporter emits GitHub Actions workflow commands on the step log and
// writes machine-readable outputs and the summary document to the files the
// runner provides via GITHUB_OUTPUT and GITHUB_STEP_SUMMARY.
type ActionsReporter struct {
	Out         io.Writer
	OutputPath  string
	SummaryPath string
}

// NewActionsReporter creates a reporter wired to the ambient Actions runner
func NewActionsReporter() *ActionsReporter {
	return &ActionsReporter{
		Out:         os.Stdout,
		OutputPath:  os.Getenv("GITHUB_OUTPUT"),
		SummaryPath: os.Getenv("GITHUB_STEP_SUMMARY"),
	}
}

// StartGroup opens a collapsible group in the step log
func (r *ActionsReporter) StartGroup(title string) {
	fmt.Fprintf(r.Out, "::group::%s\n", escapeData(title))
}

// EndGroup closes the current group
func (r *ActionsReporter) EndGroup() {
	fmt.Fprintln(r.Out, "::endgroup::")
}

// Info writes a plain log line
func (r *ActionsReporter) Info(msg string) {
	fmt.Fprintln(r.Out, msg)
}

// Notice emits a notice annotation
func (r *ActionsReporter) Notice(msg string) {
	fmt.Fprintf(r.Out, "::notice::%s\n", escapeData(msg))
}

// Warning emits a warning annotation
func (r *ActionsReporter) Warning(msg string) {
	fmt.Fprintf(r.Out, "::warning::%s\n", escapeData(msg))
}

// Error emits an error annotation
func (r *ActionsReporter) Error(msg string) {
	fmt.Fprintf(r.Out, "::error::%s\n", escapeData(msg))
}

// SetOutput appends a key/value pair to the GITHUB_OUTPUT file. Multi-line
// values use the heredoc form with a random delimiter so the value cannot
// terminate the block itself.
func (r *ActionsReporter) SetOutput(key, value string) error {
	if r.OutputPath == "" {
		// No output file outside a real runner; keep the value visible.
		fmt.Fprintf(r.Out, "%s=%s\n", key, escapeData(value))
		return nil
	}

	f, err := os.OpenFile(r.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, fmt.Sprintf("open output file for %q", key), err)
	}
	defer f.Close()

	if strings.ContainsAny(value, "\r\n") {
		delimiter := "ghadelimiter_" + uuid.NewString()
		_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
	} else {
		_, err = fmt.Fprintf(f, "%s=%s\n", key, value)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, fmt.Sprintf("write output %q", key), err)
	}
	return nil
}

// WriteSummary appends the rendered document to the GITHUB_STEP_SUMMARY file
func (r *ActionsReporter) WriteSummary(s *Summary) error {
	if s == nil || s.Empty() {
		return nil
	}

	if r.SummaryPath == "" {
		fmt.Fprint(r.Out, s.Markdown())
		return nil
	}

	f, err := os.OpenFile(r.SummaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSummaryWrite, "open step summary file", err)
	}
	defer f.Close()

	if _, err := f.WriteString(s.Markdown()); err != nil {
		return errors.Wrap(errors.ErrCodeSummaryWrite, "write step summary", err)
	}
	return nil
}

// Raw returns the step log stream
func (r *ActionsReporter) Raw() io.Writer {
	return r.Out
}

// escapeData escapes a value for use in a workflow command per the runner's
// command processing rules.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
