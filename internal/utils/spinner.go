package utils

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner provides an animated progress indicator. Frames are only drawn
// on a terminal; other writers get the final outcome line only.
type Spinner struct {
	out        io.Writer
	message    string
	animate    bool
	useColors  bool
	stop       chan struct{}
	done       chan struct{}
	mu         sync.Mutex
	isRunning  bool
	frameIndex int
}

// NewSpinner creates a new spinner writing to out
func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:     out,
		message: message,
		animate: isTerminal(out),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// WithColors enables colored outcome markers
func (s *Spinner) WithColors(enabled bool) *Spinner {
	s.useColors = enabled
	return s
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	if !s.animate {
		close(s.done)
		return
	}

	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		defer close(s.done)

		for {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := spinnerFrames[s.frameIndex]
				message := s.message
				s.frameIndex = (s.frameIndex + 1) % len(spinnerFrames)
				s.mu.Unlock()
				fmt.Fprintf(s.out, "\r%s %s", s.colorize(frame, color.FgCyan), message)
			}
		}
	}()
}

// Stop halts the spinner animation without printing an outcome
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.animate {
		close(s.stop)
	}
	<-s.done
}

// Succeed stops the spinner and prints a success line
func (s *Spinner) Succeed(message string) {
	s.finish("✔", color.FgGreen, message)
}

// Fail stops the spinner and prints a failure line
func (s *Spinner) Fail(message string) {
	s.finish("✖", color.FgRed, message)
}

func (s *Spinner) finish(mark string, attr color.Attribute, message string) {
	s.Stop()
	if message == "" {
		s.mu.Lock()
		message = s.message
		s.mu.Unlock()
	}
	fmt.Fprintf(s.out, "%s %s\n", s.colorize(mark, attr), message)
}

func (s *Spinner) colorize(text string, attr color.Attribute) string {
	if !s.useColors {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}
