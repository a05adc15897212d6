// Package progress draws phase progress on stderr for interactive runs.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/panbanda/waypoint/pkg/models"
)

// Tracker wraps a progress bar counting completed phases.
type Tracker struct {
	bar   *progressbar.ProgressBar
	w     io.Writer
	label string
}

// NewSpinner creates a spinner for a single phase of unknown duration.
func NewSpinner(w io.Writer, label string) *Tracker {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &Tracker{bar: bar, w: w, label: label}
}

// NewTracker creates a progress bar over total phases.
func NewTracker(w io.Writer, label string, total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar, w: w, label: label}
}

// ForPhase returns a tracker sized for the requested phase: a bar over the
// four phases for "all", a spinner otherwise.
func ForPhase(w io.Writer, phase models.Phase) *Tracker {
	if phase == models.PhaseAll {
		return NewTracker(w, "analyzing", len(models.Phases()))
	}
	return NewSpinner(w, phase.Title())
}

// PhaseDone advances the tracker. Its signature matches the pipeline phase hook.
func (t *Tracker) PhaseDone(phase models.Phase, _ time.Duration) {
	t.bar.Describe(phase.Title())
	_ = t.bar.Add(1)
}

// FinishSuccess clears the bar.
func (t *Tracker) FinishSuccess() {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}

// FinishError clears the bar and reports err.
func (t *Tracker) FinishError(err error) {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
	fmt.Fprintf(t.w, "  %s error: %v\n", t.label, err)
}
