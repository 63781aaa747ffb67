// Package verbose provides the leveled diagnostic sink consumed by toolfile.
//
// It is deliberately not a logging framework: messages are plain lines written
// to a caller-supplied io.Writer, gated by a verbosity level, optionally
// serialized by a caller-supplied mutex. Hosts that want structured logging
// can point Output at an adapter of their choice.
package verbose

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level selects how much diagnostic output toolfile emits.
// Higher levels include everything the lower ones print.
type Level int

const (
	// None emits nothing.
	None Level = iota
	// Low emits only the most important messages (skips, failures, overwrites).
	Low
	// Mid adds per-tool load notices and scan summaries.
	Mid
	// High adds per-directory traversal traces.
	High
)

// Includes reports whether a message at msg should be shown at level l.
func (l Level) Includes(msg Level) bool { return l >= msg }

func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case Low:
		return "low"
	case Mid:
		return "mid"
	case High:
		return "high"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name ("none", "low", "mid", "high") to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "none", "":
		return None, nil
	case "low":
		return Low, nil
	case "mid":
		return Mid, nil
	case "high":
		return High, nil
	default:
		return None, fmt.Errorf("unknown verbose level %q", s)
	}
}

// Settings carries the diagnostic configuration shared across a Toolset.
// The zero value is silent and throwing; a nil *Settings behaves the same.
type Settings struct {
	// Level gates which messages are emitted.
	Level Level
	// NoThrow converts dispatch failures into a nil result plus a Low line
	// instead of a returned error.
	NoThrow bool
	// Output receives emitted lines. Defaults to os.Stdout when nil.
	Output io.Writer
	// Lock, when set, serializes writes so lines from concurrent callers do
	// not interleave. It protects output only, never registry state.
	Lock *sync.Mutex
}

// Printf emits one line at the given message level, if the configured level
// includes it. Safe to call on a nil receiver.
func (s *Settings) Printf(msg Level, format string, args ...any) {
	if s == nil || s.Level == None || !s.Level.Includes(msg) {
		return
	}
	out := s.Output
	if out == nil {
		out = os.Stdout
	}
	if s.Lock != nil {
		s.Lock.Lock()
		defer s.Lock.Unlock()
	}
	fmt.Fprintf(out, format+"\n", args...)
}

// Suppress reports whether failures should be suppressed instead of returned.
// Safe to call on a nil receiver.
func (s *Settings) Suppress() bool { return s != nil && s.NoThrow }
