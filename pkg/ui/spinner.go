package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"geminal/pkg/ui/styles"

	"charm.land/bubbles/v2/spinner"
	"github.com/charmbracelet/x/ansi"
)

// Spinner animates a busy indicator on one terminal line while a blocking
// call is outstanding. The only state shared with the animation goroutine
// is the running flag; Stop returns once the goroutine has cleared the line.
type Spinner struct {
	out      io.Writer
	label    string
	frames   []string
	interval time.Duration

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewSpinner returns a stopped spinner that writes to out.
func NewSpinner(out io.Writer, label string) *Spinner {
	return &Spinner{
		out:      out,
		label:    label,
		frames:   spinner.Dot.Frames,
		interval: spinner.Dot.FPS,
	}
}

// Interval is the time between frames, and the upper bound on how long the
// animation keeps running after Stop is called.
func (s *Spinner) Interval() time.Duration {
	return s.interval
}

// Start begins the animation. Starting a running spinner is a no-op.
func (s *Spinner) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go s.run()
}

// Stop signals the animation to end and waits for it.
func (s *Spinner) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.wg.Wait()
}

// Running reports whether the spinner has been started and not stopped.
func (s *Spinner) Running() bool {
	return s.running.Load()
}

func (s *Spinner) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	fmt.Fprint(s.out, ansi.HideCursor)
	defer fmt.Fprint(s.out, "\r"+ansi.EraseEntireLine+ansi.ShowCursor)

	for frame := 0; ; frame++ {
		if !s.running.Load() {
			return
		}
		glyph := strings.TrimSpace(s.frames[frame%len(s.frames)])
		fmt.Fprint(s.out, "\r"+ansi.EraseEntireLine+styles.SpinnerStyle.Render(glyph)+" "+s.label)
		<-ticker.C
	}
}
