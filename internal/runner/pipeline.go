package runner

import (
	"context"

	"github.com/felixgeelhaar/tidygate/internal/log"
	"github.com/felixgeelhaar/tidygate/internal/report"
)

// Pipeline runs an ordered list of commands sequentially and aggregates
// per-command results.
type Pipeline struct {
	Runner   Runner
	Reporter report.Reporter
	Logger   *log.Logger
}

// NewPipeline creates a Pipeline
func NewPipeline(r Runner, rep report.Reporter, logger *log.Logger) *Pipeline {
	return &Pipeline{Runner: r, Reporter: rep, Logger: logger}
}

// RunAll executes every command in order and returns one result per command,
// in the same order. Execution never short-circuits: a formatting command
// failing must not prevent a build command from also running, so the diff
// check afterwards sees the combined effect of all commands.
//
// A single group frames the whole batch, not each command.
func (p *Pipeline) RunAll(ctx context.Context, commands []string) []Result {
	results := make([]Result, 0, len(commands))

	p.Reporter.StartGroup("Running commands")
	defer p.Reporter.EndGroup()

	for _, command := range commands {
		p.Reporter.Info("$ " + command)
		p.Logger.Debug("running command", "command", command)

		result := p.Runner.Run(ctx, command)
		if result.Stdout != "" {
			p.Reporter.Info(result.Stdout)
		}
		if result.Stderr != "" {
			p.Reporter.Info(result.Stderr)
		}

		if result.OK {
			p.Logger.Debug("command succeeded", "command", command)
		} else {
			p.Logger.Warn("command failed", "command", command, "message", result.Message)
		}

		results = append(results, result)
	}

	return results
}

// Report aggregates a result list
type Report struct {
	Results []Result
}

// Total returns the number of results
func (r Report) Total() int {
	return len(r.Results)
}

// Failed returns the failed subset, input order preserved
func (r Report) Failed() []Result {
	var failed []Result
	for _, result := range r.Results {
		if !result.OK {
			failed = append(failed, result)
		}
	}
	return failed
}

// FailureCount returns the number of failed results
func (r Report) FailureCount() int {
	return len(r.Failed())
}
