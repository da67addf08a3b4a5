package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tidygate",
	Short: "CI gate for uncommitted generated or formatted files",
	Long: `tidygate runs a list of shell commands, then checks whether the working
tree has uncommitted changes. It is meant for CI jobs that enforce that
generated and formatted output is committed: run your generators, and if
the tree is dirty afterwards, the build fails with a report of what changed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
}
