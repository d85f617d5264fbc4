package display

import (
	"runtime"
	"strings"
)

// Detector reports whether the current call originates from the interactive console.
type Detector interface {
	InConsole() bool
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func() bool

// InConsole implements Detector.
func (f DetectorFunc) InConsole() bool { return f() }

const maxFrames = 128

// StackDetector reports a console call when any frame on the calling goroutine's stack
// belongs to a function whose fully qualified name starts with one of Prefixes, e.g.
// "hexshell/internal/console.". With no prefixes it never matches.
type StackDetector struct {
	Prefixes []string
}

// InConsole implements Detector.
func (d StackDetector) InConsole() bool {
	if len(d.Prefixes) == 0 {
		return false
	}
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		for _, prefix := range d.Prefixes {
			if strings.HasPrefix(frame.Function, prefix) {
				return true
			}
		}
		if !more {
			return false
		}
	}
}
