// Package pipeline runs the analysis phases against a project and keeps
// the history of every phase executed in a session.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/panbanda/waypoint/internal/cache"
	"github.com/panbanda/waypoint/internal/report"
	"github.com/panbanda/waypoint/internal/scanner"
	"github.com/panbanda/waypoint/internal/vcs"
	"github.com/panbanda/waypoint/pkg/analyzer/heuristic"
	"github.com/panbanda/waypoint/pkg/config"
	"github.com/panbanda/waypoint/pkg/listing"
	"github.com/panbanda/waypoint/pkg/models"
	"github.com/panbanda/waypoint/pkg/repo"
)

// Request selects a project and a phase. An empty Phase runs every phase.
type Request struct {
	ProjectPath string `json:"projectPath"`
	Phase       string `json:"phase,omitempty"`
}

// PhaseHook is called after each phase completes, before the next starts.
type PhaseHook func(phase models.Phase, duration time.Duration)

// Session owns the history and the collaborators used to run phases.
// A Session is safe for concurrent use; phases of one request run sequentially.
type Session struct {
	cfg      *config.Config
	history  *History
	scanner  *scanner.Scanner
	lister   *listing.Lister
	analyzer *heuristic.Analyzer
	renderer *report.Renderer
	cache    *cache.Cache
	opener   vcs.Opener
	logger   *slog.Logger
	now      func() time.Time
	hook     PhaseHook

	listerOpts []listing.Option
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for the session and its collaborators.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithCache enables per-file insight caching.
func WithCache(c *cache.Cache) Option {
	return func(s *Session) {
		s.cache = c
	}
}

// WithClock overrides the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithOpener sets the repository opener used by the structural phase.
func WithOpener(opener vcs.Opener) Option {
	return func(s *Session) {
		s.opener = opener
	}
}

// WithListerRunner replaces the command runner behind the directory listing.
func WithListerRunner(r listing.Runner) Option {
	return func(s *Session) {
		s.listerOpts = append(s.listerOpts, listing.WithRunner(r))
	}
}

// WithPhaseHook registers a callback invoked after every phase.
func WithPhaseHook(hook PhaseHook) Option {
	return func(s *Session) {
		s.hook = hook
	}
}

// NewSession creates a session with an empty history. A nil cfg uses defaults.
func NewSession(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Session{
		cfg:     cfg,
		history: &History{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.opener == nil {
		s.opener = vcs.DefaultOpener()
	}

	renderer, err := report.New(cfg.Report)
	if err != nil {
		return nil, err
	}
	s.renderer = renderer
	s.scanner = scanner.NewScanner(cfg, scanner.WithLogger(s.logger))
	s.analyzer = heuristic.New(heuristic.WithLogger(s.logger))
	s.lister = listing.New(cfg.Listing, append([]listing.Option{listing.WithLogger(s.logger)}, s.listerOpts...)...)
	return s, nil
}

// History returns the session history.
func (s *Session) History() *History {
	return s.history
}

// Run executes the requested phase, or every phase followed by the
// comprehensive report when the phase is empty or "all".
func (s *Session) Run(ctx context.Context, req Request) (*Envelope, error) {
	if req.ProjectPath == "" {
		return nil, &InputError{Field: "projectPath", Err: fmt.Errorf("project path is required")}
	}
	phase, err := models.ParsePhase(req.Phase)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(req.ProjectPath); err != nil {
		return nil, &InputError{Field: "projectPath", Err: err}
	}

	root, marker := repo.FindRootWithMarker(req.ProjectPath)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	env := &Envelope{ProjectPath: root}
	if provided, err := filepath.Abs(req.ProjectPath); err == nil && provided != root {
		env.RepositoryRoot = root
		env.ProvidedPath = req.ProjectPath
	}

	t := target{root: root, marker: marker}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		t.resolved = resolved
	} else {
		t.resolved = root
	}

	if phase == models.PhaseAll {
		return s.runAll(ctx, t, env)
	}
	return s.runOne(ctx, t, phase, env)
}

// target is the resolved project a request runs against.
type target struct {
	root     string
	resolved string
	marker   string
}

func (s *Session) runOne(ctx context.Context, t target, phase models.Phase, env *Envelope) (*Envelope, error) {
	out, err := s.execute(ctx, t, phase)
	if err != nil {
		return nil, err
	}
	_, more := phase.Next()
	s.record(t.root, out, more)

	env.Phase = string(phase)
	env.Findings = out.Text
	env.NextPhaseNeeded = more
	env.AnalysisHistoryLength = s.history.Len()
	if next, ok := phase.Next(); ok {
		env.SuggestedNextPhase = string(next)
	}
	env.Signals = out.Signals
	return env, nil
}

func (s *Session) runAll(ctx context.Context, t target, env *Envelope) (*Envelope, error) {
	phases := models.Phases()
	outputs := make([]report.Phase, 0, len(phases))
	completed := make([]string, 0, len(phases))
	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := s.execute(ctx, t, phase)
		if err != nil {
			return nil, err
		}
		_, more := phase.Next()
		s.record(t.root, out, more)
		outputs = append(outputs, out)
		completed = append(completed, string(phase))
	}

	combined, err := s.renderer.Comprehensive(t.root, outputs)
	if err != nil {
		return nil, err
	}
	env.Phase = string(models.PhaseAll)
	env.Findings = combined.Text
	env.NextPhaseNeeded = false
	env.AnalysisHistoryLength = s.history.Len()
	env.CompletedPhases = completed
	env.Signals = combined.Signals
	return env, nil
}

func (s *Session) record(root string, out report.Phase, more bool) {
	s.history.Append(models.PhaseRecord{
		ProjectPath:     root,
		Phase:           out.Name,
		Findings:        out.Text,
		NextPhaseNeeded: more,
		Timestamp:       s.now().UTC(),
	})
}

func (s *Session) execute(ctx context.Context, t target, phase models.Phase) (report.Phase, error) {
	start := time.Now()
	var (
		out report.Phase
		err error
	)
	switch phase {
	case models.PhaseConceptual:
		out, err = s.conceptual(t)
	case models.PhaseStructural:
		out, err = s.structural(ctx, t)
	case models.PhaseAnalysis:
		out, err = s.analysis(t)
	case models.PhaseSynthesis:
		out, err = s.renderer.Synthesis(report.SynthesisInput{
			ProjectPath: t.root,
			History:     s.recentHistory(),
		})
	default:
		return report.Phase{}, &models.PhaseError{Name: string(phase)}
	}
	if err != nil {
		return report.Phase{}, fmt.Errorf("%s phase: %w", phase, err)
	}

	elapsed := time.Since(start)
	s.logger.Info("phase complete", "phase", string(phase), "path", t.root, "duration", elapsed)
	if s.hook != nil {
		s.hook(phase, elapsed)
	}
	return out, nil
}

// recentHistory returns the records shown by the synthesis phase. A
// window of zero shows the whole history.
func (s *Session) recentHistory() []models.PhaseRecord {
	if n := s.cfg.Report.HistoryWindow; n > 0 {
		return s.history.Last(n)
	}
	return s.history.All()
}
