package session

import ginsessions "github.com/gin-contrib/sessions"

const (
	successKey = "success"
	errorKey   = "error"
)

// Messages are the flashes popped for a single render
type Messages struct {
	Success []string
	Error   []string
}

func (m Messages) Empty() bool {
	return len(m.Success) == 0 && len(m.Error) == 0
}

// Flash queues one-shot messages that survive exactly one redirect.
// Callers must save the session for changes to stick
type Flash struct {
	s ginsessions.Session
}

func NewFlash(s ginsessions.Session) *Flash {
	return &Flash{s: s}
}

func (f *Flash) Success(msg string) {
	f.s.AddFlash(msg, successKey)
}

func (f *Flash) Error(msg string) {
	f.s.AddFlash(msg, errorKey)
}

// Pop returns every pending message and removes them from the session
func (f *Flash) Pop() Messages {
	return Messages{
		Success: toStrings(f.s.Flashes(successKey)),
		Error:   toStrings(f.s.Flashes(errorKey)),
	}
}

func toStrings(v []interface{}) []string {
	out := make([]string, 0, len(v))

	for _, m := range v {
		if s, ok := m.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
