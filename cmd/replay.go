package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/portal/internal/portal"
	"github.com/zjrosen/portal/internal/scenario"
)

var replayNoDiff bool

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a scripted portal session",
	Long: `Replay runs a YAML script of mount, attach, detach and update steps against
a real portal and prints what every target renders after each step, followed
by a diff of the registry. Steps with op "expect" are checked and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVar(&replayNoDiff, "no-diff", false, "don't print registry diffs")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cleanupLog, err := initLogging("portal-replay")
	if err != nil {
		return err
	}
	defer cleanupLog()

	tp, shutdown, err := initTracing()
	if err != nil {
		return err
	}
	defer shutdown()

	script, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(script,
		scenario.WithDiff(!replayNoDiff),
		scenario.WithStoreOptions(portal.WithTracer(tp.Tracer())),
	)
	report, err := runner.Run(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d steps, %d transitions, %d/%d checks passed\n",
		report.Steps, report.Transitions, report.Checks-len(report.Failures), report.Checks)
	return nil
}
