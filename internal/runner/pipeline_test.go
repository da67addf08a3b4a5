package runner

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tidygate/internal/log"
	"github.com/felixgeelhaar/tidygate/internal/report"
)

// recordingReporter records reporting calls for assertions.
type recordingReporter struct {
	events  []string
	outputs map[string]string
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{outputs: make(map[string]string)}
}

func (r *recordingReporter) StartGroup(title string) { r.events = append(r.events, "group:"+title) }
func (r *recordingReporter) EndGroup()               { r.events = append(r.events, "endgroup") }
func (r *recordingReporter) Info(msg string)         { r.events = append(r.events, "info:"+msg) }
func (r *recordingReporter) Notice(msg string)       { r.events = append(r.events, "notice:"+msg) }
func (r *recordingReporter) Warning(msg string)      { r.events = append(r.events, "warning:"+msg) }
func (r *recordingReporter) Error(msg string)        { r.events = append(r.events, "error:"+msg) }
func (r *recordingReporter) SetOutput(key, value string) error {
	r.outputs[key] = value
	return nil
}
func (r *recordingReporter) WriteSummary(*report.Summary) error { return nil }
func (r *recordingReporter) Raw() io.Writer                     { return io.Discard }

func quietLogger() *log.Logger {
	return log.New(log.Config{Level: log.LevelError, Format: log.FormatText, Output: log.NewOutput(io.Discard)})
}

func TestRunAllNoShortCircuit(t *testing.T) {
	rep := newRecordingReporter()
	p := NewPipeline(NewShellRunner(), rep, quietLogger())

	results := p.RunAll(context.Background(), []string{"false", "true", "exit 2"})

	require.Len(t, results, 3)
	assert.False(t, results[0].OK)
	assert.True(t, results[1].OK)
	assert.False(t, results[2].OK)
	require.NotNil(t, results[2].ExitCode)
	assert.Equal(t, 2, *results[2].ExitCode)
}

func TestRunAllPreservesOrder(t *testing.T) {
	p := NewPipeline(NewShellRunner(), newRecordingReporter(), quietLogger())

	commands := []string{"echo one", "echo two", "echo three"}
	results := p.RunAll(context.Background(), commands)

	require.Len(t, results, len(commands))
	for i, command := range commands {
		assert.Equal(t, command, results[i].Command)
	}
}

func TestRunAllDuplicatesRunIndependently(t *testing.T) {
	p := NewPipeline(NewShellRunner(), newRecordingReporter(), quietLogger())

	results := p.RunAll(context.Background(), []string{"echo same", "echo same"})

	require.Len(t, results, 2)
	assert.Equal(t, results[0].Stdout, results[1].Stdout)
}

func TestRunAllSingleGroup(t *testing.T) {
	rep := newRecordingReporter()
	p := NewPipeline(NewShellRunner(), rep, quietLogger())

	p.RunAll(context.Background(), []string{"true", "true"})

	groups := 0
	for _, event := range rep.events {
		if event == "group:Running commands" {
			groups++
		}
	}
	assert.Equal(t, 1, groups, "one group frames the whole batch")
	assert.Equal(t, "endgroup", rep.events[len(rep.events)-1])
}

func TestRunAllEmpty(t *testing.T) {
	p := NewPipeline(NewShellRunner(), newRecordingReporter(), quietLogger())

	results := p.RunAll(context.Background(), nil)
	assert.Empty(t, results)
}

func TestReportAggregation(t *testing.T) {
	p := NewPipeline(NewShellRunner(), newRecordingReporter(), quietLogger())

	results := p.RunAll(context.Background(), []string{"false", "true", "exit 2"})
	rep := Report{Results: results}

	assert.Equal(t, 3, rep.Total())
	assert.Equal(t, 2, rep.FailureCount())

	failed := rep.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "false", failed[0].Command)
	assert.Equal(t, "exit 2", failed[1].Command)
}

func TestReportAllFailed(t *testing.T) {
	p := NewPipeline(NewShellRunner(), newRecordingReporter(), quietLogger())

	results := p.RunAll(context.Background(), []string{"false", "false"})

	// Both still ran; nothing stopped early.
	require.Len(t, results, 2)
	assert.Equal(t, 2, Report{Results: results}.FailureCount())
}
