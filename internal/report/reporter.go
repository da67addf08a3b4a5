// Package report defines the reporting sink consumed by the pipeline and
// gates, with implementations for GitHub Actions workflow commands and for
// plain terminals.
package report

import "io"

// Reporter is the reporting sink collaborator. It accepts grouped log
// sections, leveled messages, machine-readable key/value outputs, and a
// structured summary document. The fatal-failure signal is not part of the
// sink: gates stay pure and the top-level dispatcher terminates the process.
type Reporter interface {
	// StartGroup opens a named, collapsible block of log lines.
	StartGroup(title string)

	// EndGroup closes the most recently opened group.
	EndGroup()

	// Info writes a plain log line.
	Info(msg string)

	// Notice writes a notice-level message.
	Notice(msg string)

	// Warning writes a warning-level message.
	Warning(msg string)

	// Error writes an error-level message.
	Error(msg string)

	// SetOutput exposes a machine-readable key/value pair to downstream
	// automation, distinct from human-readable log text.
	SetOutput(key, value string) error

	// WriteSummary publishes the structured summary document.
	// It is called at most once per run outcome.
	WriteSummary(s *Summary) error

	// Raw exposes the underlying log stream for collaborators that write
	// directly, such as the diff printer. Output lands inside whatever
	// group is currently open.
	Raw() io.Writer
}
