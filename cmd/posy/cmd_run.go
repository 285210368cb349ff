package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"posy/internal/stream"
)

var (
	runStrict  bool
	runSummary bool
)

// runCmd executes one session from a file or stdin.
var runCmd = &cobra.Command{
	Use:   "run [input-file]",
	Short: "Run a bundling session from a file or stdin",
	Long: `Reads the design phase, then feeds stem arrivals to the matching engine.
Each completed bundle is written to stdout as soon as it is assembled.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSession,
}

func init() {
	runCmd.Flags().BoolVar(&runStrict, "strict", true, "abort on the first malformed input line")
	runCmd.Flags().BoolVar(&runSummary, "summary", false, "print run statistics to stderr afterwards")
}

func runSession(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	strict := cfg.Run.Strict
	if cmd.Flags().Changed("strict") {
		strict = runStrict
	}
	summary := cfg.Run.Summary
	if cmd.Flags().Changed("summary") {
		summary = runSummary
	}

	sess := stream.NewSession(logger, strict)
	if err := sess.Run(in, os.Stdout); err != nil {
		return err
	}

	if summary {
		stats := sess.Stats()
		fmt.Fprintf(os.Stderr, "designs: %d accepted, %d dropped; stems: %d; bundles: %d; skipped lines: %d\n",
			stats.DesignsAccepted, stats.DesignsDropped, stats.Stems, stats.Bundles, stats.SkippedLines)
	}
	return nil
}
