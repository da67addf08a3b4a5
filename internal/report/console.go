package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	groupStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	outputStyle  = lipgloss.NewStyle().Faint(true)
	ruleStyle    = lipgloss.NewStyle().Faint(true)
)

// ConsoleReporter renders the same reporting contract for local terminal
// runs: groups become headed sections, outputs become faint key=value lines,
// and the summary document is printed at the end of the run.
type ConsoleReporter struct {
	Out   io.Writer
	depth int
}

// NewConsoleReporter creates a reporter writing to stdout
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{Out: os.Stdout}
}

// StartGroup prints a section header and indents until EndGroup
func (r *ConsoleReporter) StartGroup(title string) {
	fmt.Fprintln(r.Out, r.indent()+groupStyle.Render("▸ "+title))
	r.depth++
}

// EndGroup closes the current section
func (r *ConsoleReporter) EndGroup() {
	if r.depth > 0 {
		r.depth--
	}
}

// Info writes a plain log line
func (r *ConsoleReporter) Info(msg string) {
	r.lines(msg, func(s string) string { return s })
}

// Notice writes a notice-level message
func (r *ConsoleReporter) Notice(msg string) {
	r.lines(msg, func(s string) string { return noticeStyle.Render(s) })
}

// Warning writes a warning-level message
func (r *ConsoleReporter) Warning(msg string) {
	r.lines("warning: "+msg, func(s string) string { return warningStyle.Render(s) })
}

// Error writes an error-level message
func (r *ConsoleReporter) Error(msg string) {
	r.lines("error: "+msg, func(s string) string { return errorStyle.Render(s) })
}

// SetOutput prints the key/value pair; there is no output file locally
func (r *ConsoleReporter) SetOutput(key, value string) error {
	shown := value
	if strings.ContainsAny(shown, "\r\n") {
		shown = strings.ReplaceAll(shown, "\r\n", " ")
		shown = strings.ReplaceAll(shown, "\n", " ")
	}
	fmt.Fprintln(r.Out, r.indent()+outputStyle.Render(key+"="+shown))
	return nil
}

// WriteSummary prints the rendered document under a rule
func (r *ConsoleReporter) WriteSummary(s *Summary) error {
	if s == nil || s.Empty() {
		return nil
	}
	fmt.Fprintln(r.Out, ruleStyle.Render(strings.Repeat("─", 60)))
	fmt.Fprint(r.Out, s.Markdown())
	return nil
}

// Raw returns the terminal stream
func (r *ConsoleReporter) Raw() io.Writer {
	return r.Out
}

func (r *ConsoleReporter) indent() string {
	return strings.Repeat("  ", r.depth)
}

func (r *ConsoleReporter) lines(msg string, render func(string) string) {
	for _, line := range strings.Split(strings.TrimRight(msg, "\n"), "\n") {
		fmt.Fprintln(r.Out, r.indent()+render(line))
	}
}
