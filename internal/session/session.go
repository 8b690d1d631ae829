// Package session implements the keystroke scoring engine.
package session

import (
	"math"
	"time"

	"github.com/uwtype/uwtype/internal/model"
)

// State is the lifecycle phase of a typing session.
type State int

// Session states. Finished is terminal; a reset creates a new Session.
const (
	NotStarted State = iota
	InProgress
	Finished
)

// Session is one typing attempt against a fixed target passage.
// It is a value: ApplyInput returns a replacement rather than mutating.
type Session struct {
	Target    []rune
	Typed     []rune
	StartedAt time.Time
	EndedAt   time.Time
}

// New creates a session for the given passage.
func New(target string) Session {
	return Session{Target: []rune(target)}
}

// State reports the current lifecycle phase.
func (s Session) State() State {
	switch {
	case !s.EndedAt.IsZero():
		return Finished
	case !s.StartedAt.IsZero():
		return InProgress
	default:
		return NotStarted
	}
}

// ApplyInput accepts a candidate typed string and returns the updated
// session. Candidates longer than the target are truncated. The first
// accepted keystroke latches StartedAt; an exact match latches EndedAt
// and freezes the typed text. Finished sessions ignore further input.
func (s Session) ApplyInput(candidate string, now time.Time) Session {
	if s.State() == Finished {
		return s
	}
	typed := []rune(candidate)
	if len(typed) > len(s.Target) {
		typed = typed[:len(s.Target)]
	}
	if len(typed) > 0 && s.StartedAt.IsZero() {
		s.StartedAt = now
	}
	s.Typed = typed
	// An empty target is the degenerate guard case: it scores 0 and
	// never finishes, mirroring the 0-accuracy fallback.
	if len(s.Typed) == len(s.Target) && len(s.Target) > 0 && runesEqual(s.Typed, s.Target) {
		s.EndedAt = now
		s.Typed = append([]rune(nil), s.Target...)
	}
	return s
}

// Accuracy returns the live accuracy in [0, 100]: matching positions over
// the full target length. An empty target yields 0.
func (s Session) Accuracy() float64 {
	if len(s.Target) == 0 {
		return 0
	}
	limit := len(s.Typed)
	if limit > len(s.Target) {
		limit = len(s.Target)
	}
	correct := 0
	for i := 0; i < limit; i++ {
		if s.Typed[i] == s.Target[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(s.Target)) * 100
}

// CorrectPrefix returns the length of the leading run of correctly typed
// runes. Counting stops at the first mismatch even if later positions
// happen to match again.
func (s Session) CorrectPrefix() int {
	limit := len(s.Typed)
	if limit > len(s.Target) {
		limit = len(s.Target)
	}
	n := 0
	for i := 0; i < limit; i++ {
		if s.Typed[i] != s.Target[i] {
			break
		}
		n++
	}
	return n
}

// ElapsedMs returns the elapsed time in milliseconds: frozen once the
// session finishes, live while in progress, zero before the first key.
func (s Session) ElapsedMs(now time.Time) int64 {
	switch s.State() {
	case Finished:
		return s.EndedAt.Sub(s.StartedAt).Milliseconds()
	case InProgress:
		return now.Sub(s.StartedAt).Milliseconds()
	default:
		return 0
	}
}

// WPM computes words per minute from the correct prefix, one word being
// scoring.CharsPerWord characters. Non-positive elapsed time reports 0;
// the result is clamped to scoring.MaxWPM to absorb timer artifacts on
// very short windows.
func (s Session) WPM(now time.Time, scoring model.Scoring) float64 {
	minutes := float64(s.ElapsedMs(now)) / 60000.0
	if minutes <= 0 {
		return 0
	}
	cpw := scoring.CharsPerWord
	if cpw <= 0 {
		cpw = model.DefaultScoring.CharsPerWord
	}
	wpm := (float64(s.CorrectPrefix()) / float64(cpw)) / minutes
	if scoring.MaxWPM > 0 && wpm > scoring.MaxWPM {
		wpm = scoring.MaxWPM
	}
	return wpm
}

// Progress returns the typed fraction of the target in [0, 100].
func (s Session) Progress() float64 {
	if len(s.Target) == 0 {
		return 0
	}
	return math.Min(100, float64(len(s.Typed))/float64(len(s.Target))*100)
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
