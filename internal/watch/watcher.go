// Package watch runs posy sessions over files dropped into a spool
// directory. Each input file is processed once, its bundles written next to
// it in the archive directory, and the input moved there afterwards.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner consumes one input stream and writes bundle lines to the output.
// stream.Session satisfies it.
type Runner interface {
	Run(r io.Reader, w io.Writer) error
}

// Factory builds a fresh Runner for each spool file, so every file gets its
// own empty warehouse.
type Factory func() Runner

// Options configures a Watcher.
type Options struct {
	SpoolDir   string
	ArchiveDir string
	Debounce   time.Duration
}

// Watcher turns a spool directory into a stream of session runs. Events are
// debounced so a file still being written is not picked up mid-copy.
type Watcher struct {
	spoolDir    string
	archiveDir  string
	debounceDur time.Duration
	newRunner   Factory
	log         *zap.Logger

	mu      sync.Mutex
	pending map[string]time.Time
}

// New validates the options and builds a Watcher.
func New(opts Options, newRunner Factory, log *zap.Logger) (*Watcher, error) {
	if opts.SpoolDir == "" {
		return nil, fmt.Errorf("spool directory required")
	}
	if opts.ArchiveDir == "" {
		return nil, fmt.Errorf("archive directory required")
	}
	if newRunner == nil {
		return nil, fmt.Errorf("runner factory required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		spoolDir:    opts.SpoolDir,
		archiveDir:  opts.ArchiveDir,
		debounceDur: opts.Debounce,
		newRunner:   newRunner,
		log:         log,
		pending:     make(map[string]time.Time),
	}, nil
}

// Run watches the spool directory until the context is cancelled. Files
// already present at startup are processed first.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.spoolDir, 0o755); err != nil {
		return fmt.Errorf("create spool dir: %w", err)
	}
	if err := os.MkdirAll(w.archiveDir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(w.spoolDir); err != nil {
		return fmt.Errorf("watch %s: %w", w.spoolDir, err)
	}

	if err := w.enqueueExisting(); err != nil {
		return err
	}

	w.log.Info("watching spool directory",
		zap.String("spool", w.spoolDir),
		zap.String("archive", w.archiveDir),
		zap.Duration("debounce", w.debounceDur))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.eventLoop(ctx, fsw) })
	g.Go(func() error { return w.sweepLoop(ctx) })
	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// enqueueExisting queues files already sitting in the spool so a restart
// never strands input. They are stamped in the past and picked up by the
// first sweep.
func (w *Watcher) enqueueExisting() error {
	entries, err := os.ReadDir(w.spoolDir)
	if err != nil {
		return fmt.Errorf("scan spool dir: %w", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		w.pending[filepath.Join(w.spoolDir, e.Name())] = time.Time{}
	}
	return nil
}

func (w *Watcher) eventLoop(ctx context.Context, fsw *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}
			w.mu.Lock()
			w.pending[ev.Name] = time.Now()
			w.mu.Unlock()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) sweepLoop(ctx context.Context) error {
	interval := w.debounceDur / 2
	if interval < 50*time.Millisecond {
		interval = 50 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, path := range w.takeSettled(time.Now()) {
				if err := w.processFile(path); err != nil {
					w.log.Error("process spool file", zap.String("path", path), zap.Error(err))
				}
			}
		}
	}
}

// takeSettled removes and returns the pending paths whose last event is at
// least a debounce interval old, sorted for a deterministic processing order.
func (w *Watcher) takeSettled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var settled []string
	for path, stamp := range w.pending {
		if now.Sub(stamp) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(settled)
	return settled
}

// processFile runs one session over the file, writes its bundles to
// <archive>/<name>.bundles, and moves the input into the archive.
func (w *Watcher) processFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // moved or deleted before we got to it
		}
		return fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return nil
	}

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	base := filepath.Base(path)
	outPath := filepath.Join(w.archiveDir, base+".bundles")
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	runErr := w.newRunner().Run(in, out)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close output: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	if err := os.Rename(path, filepath.Join(w.archiveDir, base)); err != nil {
		return fmt.Errorf("archive input: %w", err)
	}
	w.log.Info("processed spool file", zap.String("input", base), zap.String("output", outPath))
	return nil
}
