package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

var spinnerFrames = []string{"◒", "◐", "◓", "◑"}

const spinnerInterval = 100 * time.Millisecond

// TextSpinner animates a message while a long operation runs. When output is
// not a terminal it prints the start and stop messages as plain lines.
type TextSpinner struct {
	mu      sync.Mutex
	output  io.Writer
	message string
	done    chan struct{}
	wg      sync.WaitGroup
	running bool
	isTTY   bool
}

// NewSpinner creates a spinner writing to output.
func NewSpinner(output io.Writer) *TextSpinner {
	return &TextSpinner{output: output, isTTY: isTerminal(output)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start shows message with an animated frame.
func (s *TextSpinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.message = message
		return
	}
	s.message = message
	s.running = true

	if !s.isTTY {
		fmt.Fprintf(s.output, "%s\n%s  %s\n", barColor("│"), promptColor("◒"), message)
		return
	}

	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.animate()
}

// Stop ends the animation and prints message in its place.
func (s *TextSpinner) Stop(message string) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	done := s.done
	s.mu.Unlock()

	if s.isTTY {
		close(done)
		s.wg.Wait()
		fmt.Fprintf(s.output, "\r%s\r", strings.Repeat(" ", 80))
	}
	fmt.Fprintf(s.output, "%s  %s\n", successColor("◇"), message)
}

func (s *TextSpinner) animate() {
	defer s.wg.Done()
	frame := 0
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()

			fmt.Fprintf(s.output, "\r%s  %s", promptColor(spinnerFrames[frame%len(spinnerFrames)]), msg)
			frame++
		}
	}
}
