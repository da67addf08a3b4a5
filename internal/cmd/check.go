package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tidygate/internal/config"
	"github.com/felixgeelhaar/tidygate/internal/errors"
	"github.com/felixgeelhaar/tidygate/internal/gate"
	"github.com/felixgeelhaar/tidygate/internal/git"
	"github.com/felixgeelhaar/tidygate/internal/log"
	"github.com/felixgeelhaar/tidygate/internal/manifest"
	"github.com/felixgeelhaar/tidygate/internal/report"
	"github.com/felixgeelhaar/tidygate/internal/runner"
	"github.com/felixgeelhaar/tidygate/internal/version"
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func newCheckCmd() *cobra.Command {
	var (
		runInput           string
		failMessage        string
		failOnCommandError bool
		failOnDiff         bool
		configFile         string
		manifestDir        string
		reporterMode       string
		logLevel           string
		logFormat          string
		noBanner           bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run commands and fail if the working tree is dirty afterwards",
		Long: `Run the configured commands in order, then inspect the working tree.

Every command runs even if an earlier one failed, so the diff check sees
the combined effect of the whole list. Afterwards two gates decide the
outcome:

  1. Command-failure gate: reports failed commands; aborts the run if
     --fail-on-command-error is set.
  2. Diff gate: a clean tree ends the run successfully right away; a dirty
     tree is reported with the changed files and their diff, and fails the
     run unless --fail-on-diff=false.

Configuration falls back from flags to TIDYGATE_*/INPUT_* environment
variables to a tidygate.yaml config file.

Exit codes:
  0 - Success, including the clean-tree early exit
  2 - Usage error
  3 - Command-failure gate aborted the run
  4 - Uncommitted changes detected`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			logger := log.New(log.Config{
				Level:  log.ParseLevel(logLevel),
				Format: log.ParseFormat(logFormat),
				Output: log.OutputStderr(),
			})
			log.SetDefaultLogger(logger)

			if !noBanner {
				fmt.Fprintln(cmd.ErrOrStderr(), bannerStyle.Render(version.GetInfo().String()))
			}

			cfg, err := config.Resolve(config.Inputs{
				Run:                   runInput,
				RunSet:                flags.Changed("run"),
				FailMessage:           failMessage,
				FailMessageSet:        flags.Changed("fail-message"),
				FailOnCommandError:    failOnCommandError,
				FailOnCommandErrorSet: flags.Changed("fail-on-command-error"),
				FailOnDiff:            failOnDiff,
				FailOnDiffSet:         flags.Changed("fail-on-diff"),
				ConfigFile:            configFile,
			}, os.Getenv)
			if err != nil {
				return err
			}

			reporter := newReporter(reporterMode)
			inspector := &git.CLI{}

			return runCheck(cmd, cfg, reporter, inspector, logger, manifestDir)
		},
	}

	cmd.Flags().StringVar(&runInput, "run", "", "newline-separated list of shell commands (required unless set via env or config file)")
	cmd.Flags().StringVar(&failMessage, "fail-message", config.DefaultFailMessage, "message shown when the diff gate fails")
	cmd.Flags().BoolVar(&failOnCommandError, "fail-on-command-error", false, "abort the run if any command failed")
	cmd.Flags().BoolVar(&failOnDiff, "fail-on-diff", true, "abort the run if a diff is detected")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default tidygate.yaml if present)")
	cmd.Flags().StringVar(&manifestDir, "manifest-dir", "", "directory to write the run manifest to (disabled if empty)")
	cmd.Flags().StringVar(&reporterMode, "reporter", "auto", "reporting sink: auto, actions, or console")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "suppress the startup banner")

	return cmd
}

// runCheck is the top-level dispatcher: it runs the pipeline, acts on the
// gates' decisions, and is the only place that turns a decision into a
// process outcome.
func runCheck(cmd *cobra.Command, cfg *config.Config, reporter report.Reporter, inspector git.Inspector, logger *log.Logger, manifestDir string) error {
	pipeline := runner.NewPipeline(runner.NewShellRunner(), reporter, logger)
	results := pipeline.RunAll(cmd.Context(), cfg.Commands)

	g := &gate.Gate{
		Reporter:           reporter,
		Inspector:          inspector,
		Logger:             logger,
		Commands:           cfg.Commands,
		FailMessage:        cfg.FailMessage,
		FailOnCommandError: cfg.FailOnCommandError,
		FailOnDiff:         cfg.FailOnDiff,
	}

	decision, err := g.CheckCommands(results)
	if err != nil {
		return failRun(reporter, err)
	}
	if decision.Kind == gate.Fail {
		return failRun(reporter, decision.Err)
	}

	decision, state, err := g.CheckDiff(cmd.Context())
	if err != nil {
		return failRun(reporter, err)
	}

	writeManifest(reporter, logger, results, state, manifestDir)

	switch decision.Kind {
	case gate.SucceedEarly:
		logger.Info("working tree clean", "commands", len(results))
		return nil
	case gate.Fail:
		return failRun(reporter, decision.Err)
	default:
		logger.Info("diff detected but fail-on-diff is disabled", "files", state.Count())
		return nil
	}
}

// failRun emits the CI-level failure signal and hands the error up to main,
// which maps it to the exit code.
func failRun(reporter report.Reporter, err error) error {
	reporter.Error(oneLine(err))
	return err
}

// oneLine renders an error as "Code: message"; plain errors have no code.
func oneLine(err error) string {
	var tgErr *errors.TidygateError
	if stderrors.As(err, &tgErr) {
		return tgErr.OneLine()
	}
	return err.Error()
}

// newReporter picks the reporting sink. In auto mode the GitHub Actions
// sink is used when running on an Actions runner.
func newReporter(mode string) report.Reporter {
	switch mode {
	case "actions":
		return report.NewActionsReporter()
	case "console":
		return report.NewConsoleReporter()
	default:
		if os.Getenv("GITHUB_ACTIONS") == "true" {
			return report.NewActionsReporter()
		}
		return report.NewConsoleReporter()
	}
}

// writeManifest records the run for audit purposes. Best-effort: a failure
// to write is a warning, never fatal.
func writeManifest(reporter report.Reporter, logger *log.Logger, results []runner.Result, state gate.DiffState, dir string) {
	if dir == "" {
		return
	}

	path, err := manifest.Save(manifest.Create(results, state), dir)
	if err != nil {
		reporter.Warning("failed to write run manifest: " + err.Error())
		logger.WithError(err).Warn("manifest write failed")
		return
	}
	logger.Debug("run manifest written", "path", path)
}
