// Package sink accumulates formatted lines for one annotation run
package sink

import (
	"strings"
	"sync"
)

// Sink is an append-only, insertion-ordered line buffer
// safe for concurrent use; duplicates are kept
type Sink struct {
	mu    sync.Mutex
	lines []string
}

// New returns an empty sink
func New() *Sink { return &Sink{} }

// Append adds one line
func (s *Sink) Append(line string) {
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
}

// AppendAll adds lines as one batch; no other append interleaves with it
func (s *Sink) AppendAll(lines ...string) {
	if len(lines) == 0 {
		return
	}
	s.mu.Lock()
	s.lines = append(s.lines, lines...)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current lines
func (s *Sink) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// Len returns the number of lines
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// JoinAll concatenates the lines with sep
func (s *Sink) JoinAll(sep string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.lines, sep)
}
