package main

import (
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"posy/internal/config"
	"posy/internal/stream"
	"posy/internal/watch"
)

// watchCmd processes input files dropped into a spool directory.
var watchCmd = &cobra.Command{
	Use:   "watch [spool-dir]",
	Short: "Watch a spool directory and run a session over each input file",
	Long: `Watches the spool directory for input files. Each file is run as its own
session with a fresh warehouse; its bundles land next to it in the archive
directory as <name>.bundles and the input is moved there once processed.
Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: watchSpool,
}

func watchSpool(cmd *cobra.Command, args []string) error {
	spoolDir := cfg.Watch.SpoolDir
	archiveDir := cfg.Watch.ArchiveDir
	if len(args) == 1 {
		spoolDir = args[0]
		// Keep the archive nested in the spool unless it was set explicitly.
		if archiveDir == config.DefaultConfig().Watch.ArchiveDir {
			archiveDir = filepath.Join(spoolDir, "done")
		}
	}
	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return err
	}

	w, err := watch.New(watch.Options{
		SpoolDir:   spoolDir,
		ArchiveDir: archiveDir,
		Debounce:   debounce,
	}, func() watch.Runner {
		return stream.NewSession(logger, cfg.Run.Strict)
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
