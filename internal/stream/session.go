package stream

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"posy/internal/assembly"
	"posy/internal/botany"
)

// Stats tallies what a session saw and produced.
type Stats struct {
	DesignsAccepted int
	DesignsDropped  int // unsatisfiable, silently excluded from matching
	Stems           int
	Bundles         int
	SkippedLines    int // malformed lines skipped in lenient mode
}

// Session runs the two-phase line protocol: design lines up to a blank line,
// then stem lines up to a blank line or EOF. Bundles are written to the
// output as soon as they are assembled.
type Session struct {
	warehouse *assembly.Warehouse
	parser    *Parser
	log       *zap.Logger
	strict    bool
	runID     string
	stats     Stats
}

// NewSession creates a session with a fresh warehouse. Under strict mode a
// malformed line aborts the run; otherwise it is logged and skipped.
func NewSession(log *zap.Logger, strict bool) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.NewString()
	return &Session{
		warehouse: assembly.NewWarehouse(),
		parser:    NewParser(),
		log:       log.With(zap.String("run_id", runID)),
		strict:    strict,
		runID:     runID,
	}
}

// RunID returns the identifier attached to this session's log entries.
func (s *Session) RunID() string {
	return s.runID
}

// Stats returns the tallies collected so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// Run consumes the input stream and writes one line per assembled bundle.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	if err := s.runDesignPhase(scanner); err != nil {
		return err
	}
	s.warehouse.Preprocess()
	if err := s.runStemPhase(scanner, w); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	s.log.Info("session complete",
		zap.Int("designs_accepted", s.stats.DesignsAccepted),
		zap.Int("designs_dropped", s.stats.DesignsDropped),
		zap.Int("stems", s.stats.Stems),
		zap.Int("bundles", s.stats.Bundles),
		zap.Int("skipped_lines", s.stats.SkippedLines))
	return nil
}

func (s *Session) runDesignPhase(scanner *bufio.Scanner) error {
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			return nil
		}
		d, err := s.parser.ParseDesign(line)
		if err != nil {
			if s.strict {
				return err
			}
			s.stats.SkippedLines++
			s.log.Warn("skipping design line", zap.Error(err))
			continue
		}
		if s.warehouse.RegisterDesign(d) {
			s.stats.DesignsAccepted++
		} else {
			s.stats.DesignsDropped++
			s.log.Debug("dropped unsatisfiable design", zap.String("design", d.String()))
		}
	}
	return nil
}

func (s *Session) runStemPhase(scanner *bufio.Scanner, w io.Writer) error {
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			return nil
		}
		species, size, err := s.parser.ParseStem(line)
		if err != nil {
			if s.strict {
				return err
			}
			s.stats.SkippedLines++
			s.log.Warn("skipping stem line", zap.Error(err))
			continue
		}
		s.stats.Stems++
		bundle := s.warehouse.AddStem(species, size)
		if bundle == nil {
			continue
		}
		s.stats.Bundles++
		if _, err := fmt.Fprintln(w, FormatBundle(bundle)); err != nil {
			return fmt.Errorf("write bundle: %w", err)
		}
	}
	return nil
}

// FormatBundle renders a bundle in its wire shape: design name, size marker,
// then count and letter for every species present, in species order.
func FormatBundle(b *assembly.Bundle) string {
	var out strings.Builder
	out.WriteByte(b.Name)
	out.WriteByte(b.Size.Marker())
	for s := botany.Species(0); s < botany.NumSpecies; s++ {
		if n := b.Stems.Get(s); n > 0 {
			fmt.Fprintf(&out, "%d%s", n, s)
		}
	}
	return out.String()
}
