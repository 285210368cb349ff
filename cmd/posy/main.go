package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"posy/internal/config"
)

const version = "1.0.0"

var (
	// Global flags
	verbose bool
	cfgFile string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command. Running it without a subcommand
// executes a session over stdin, which is how the tool is used in a pipe.
var rootCmd = &cobra.Command{
	Use:   "posy",
	Short: "posy - streaming stem-to-design bundler",
	Long: `posy assembles bundles of stems against fixed designs as the stems arrive.

Input has two blank-line-separated phases: design lines (e.g. "AL8d10r5t30"),
then stem lines (e.g. "rL"). Each stem that completes a design emits one
bundle line immediately. Stems and designs only meet within their own size
class.

Run without arguments to read from stdin and write bundles to stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		if cfg.Logging.Format == "console" {
			zc = zap.NewDevelopmentConfig()
		}
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// stdout carries bundle lines only; everything else goes to stderr.
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}

		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSession,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the posy version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("posy %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "posy.yaml", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
