// Package display is the console entry point of hexshell: it owns the formatting session
// used for auto-displayed results and for explicit print calls.
package display

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"hexshell/internal/logger"
	"hexshell/internal/pretty"
	"hexshell/internal/preview"
	"hexshell/internal/render"
	"hexshell/internal/settings"
	"hexshell/internal/width"
	"hexshell/pkg/hextypes"
)

// ErrClosed is returned by a Session after Close.
var ErrClosed = errors.New("display session closed")

// Reader gives read access to the display settings.
type Reader interface {
	GetBool(key string) bool
	GetInt(key string) int
}

// Host is the console that owns the "last value" binding.
type Host interface {
	SetLast(v any)
}

// HostFunc adapts a function to Host.
type HostFunc func(v any)

// SetLast implements Host.
func (f HostFunc) SetLast(v any) { f(v) }

// Session formats values for the console. Settings are read on every call; only the
// probed width is cached by the estimator.
type Session struct {
	id        string
	settings  Reader
	host      Host
	detector  Detector
	estimator *width.Estimator
	out       io.Writer
	primitive Primitive
	log       *log.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithHost sets the host whose last value is rebound after each display.
func WithHost(h Host) Option {
	return func(s *Session) {
		if h != nil {
			s.host = h
		}
	}
}

// WithWriter sets the default output destination.
func WithWriter(w io.Writer) Option {
	return func(s *Session) {
		if w != nil {
			s.out = w
		}
	}
}

// WithDetector sets how console calls are recognized by Print.
func WithDetector(d Detector) Option {
	return func(s *Session) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithEstimator sets the width estimator used by pretty output.
func WithEstimator(e *width.Estimator) Option {
	return func(s *Session) {
		if e != nil {
			s.estimator = e
		}
	}
}

// WithIDGenerator sets the session id source.
func WithIDGenerator(next func() string) Option {
	return func(s *Session) {
		if next != nil {
			s.id = next()
		}
	}
}

// WithPrimitive replaces the output primitive.
func WithPrimitive(p Primitive) Option {
	return func(s *Session) {
		if p != nil {
			s.primitive = p
		}
	}
}

// NewSession creates a session reading its configuration from r. Without WithDetector,
// Print never recognizes console calls and always passes through.
func NewSession(r Reader, opts ...Option) *Session {
	s := &Session{
		settings:  r,
		host:      HostFunc(func(any) {}),
		detector:  StackDetector{},
		out:       os.Stdout,
		primitive: Fprint,
		log:       logger.NewStyledLogger("Session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.estimator == nil {
		s.estimator = width.New(func() int { return r.GetInt(settings.PrettyPrintWidth) })
	}
	s.log.Debug("Session created", "session", s.id)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Close ends the session. Further calls return ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.log.Debug("Session closed", "session", s.id)
	return nil
}

func (s *Session) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Format renders v with the current settings, laid out by package pretty when pretty
// printing is on. It reports false when nothing should be printed.
func (s *Session) Format(v any) (string, bool) {
	leaf := render.Options{
		AlsoDecimal: s.settings.GetBool(settings.AlsoDecimal),
		ShowTopNull: s.settings.GetBool(settings.ShowTopNone),
	}
	if !s.settings.GetBool(settings.PrettyPrint) {
		return render.Render(v, leaf)
	}
	return pretty.Render(v, pretty.Options{
		Width:    s.estimator.Current(),
		Indent:   s.settings.GetInt(settings.PrettyPrintIndent),
		MaxDepth: s.settings.GetInt(settings.PrettyPrintDepth),
		SortKeys: s.settings.GetBool(settings.PrettyPrintSortKeys),
		Leaf:     leaf,
	})
}

// Display is called with the result of every top-level console expression. The host's
// last value is cleared first and rebound afterwards to v, or to a fresh copy of v when v
// is a previewed one-shot sequence. A failing preview returns its error and leaves the
// last value cleared.
func (s *Session) Display(v any) error {
	if err := s.check(); err != nil {
		return err
	}
	s.host.SetLast(nil)
	logger.DisplayEvent("display", render.Classify(v).String(), "session", s.id)

	last := v
	if src, ok := s.previewable(v); ok {
		res, err := s.preview(src)
		if err != nil {
			return err
		}
		last = res.Copy
		if err := s.primitive(s.out, " ", "\n", s.previewText(res)); err != nil {
			return err
		}
	} else if text, ok := s.Format(v); ok {
		if err := s.primitive(s.out, " ", "\n", text); err != nil {
			return err
		}
	}
	s.host.SetLast(last)
	return nil
}

// Print is the explicit output entry. Calls that do not come from the console are
// forwarded unchanged. Console calls format every non-string argument; a single one-shot
// argument without options is previewed, which consumes it.
func (s *Session) Print(args []any, opts ...PrintOption) error {
	if err := s.check(); err != nil {
		return err
	}
	po := PrintOptions{Sep: " ", End: "\n", File: s.out}
	for _, opt := range opts {
		opt(&po)
	}

	if !s.detector.InConsole() {
		return s.primitive(po.File, po.Sep, po.End, args...)
	}
	logger.DisplayEvent("print", "", "session", s.id, "args", len(args))

	if len(args) == 1 && len(opts) == 0 {
		if src, ok := s.previewable(args[0]); ok {
			res, err := s.preview(src)
			if err != nil {
				return err
			}
			return s.primitive(po.File, po.Sep, po.End, s.previewText(res))
		}
	}

	converted := make([]any, len(args))
	for i, arg := range args {
		if text, ok := arg.(string); ok {
			converted[i] = text
			continue
		}
		text, ok := s.Format(arg)
		if !ok {
			text = render.NullToken
		}
		converted[i] = text
	}
	return s.primitive(po.File, po.Sep, po.End, converted...)
}

func (s *Session) previewable(v any) (hextypes.OneShot, bool) {
	if render.Classify(v) != hextypes.ShapeOneShot || !s.settings.GetBool(settings.Generators) {
		return nil, false
	}
	return render.AsOneShot(v)
}

func (s *Session) preview(src hextypes.OneShot) (preview.Result, error) {
	res, err := preview.Extract(src, s.settings.GetInt(settings.GeneratorLength))
	if err != nil {
		s.log.Debug("Preview failed", "session", s.id, "error", err)
		return preview.Result{}, err
	}
	if res.Truncated {
		s.log.Debug("Preview truncated", "session", s.id, "items", len(res.Items)-1)
	}
	return res, nil
}

func (s *Session) previewText(res preview.Result) string {
	text, _ := s.Format(res.Items)
	return "(generator " + res.TypeName + ") " + text
}
