// Package width estimates the number of columns available to the console output.
package width

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"hexshell/internal/logger"
)

const (
	// DefaultColumns is used when no width is configured and probing fails.
	DefaultColumns = 80
	// DefaultTTL is how long a probed width is reused.
	DefaultTTL = 500 * time.Millisecond
)

// Estimator returns the target column width, caching probe results for a short time.
type Estimator struct {
	configured func() int
	probe      Probe
	now        func() time.Time
	ttl        time.Duration
	log        *log.Logger

	mu      sync.Mutex
	cached  int
	checked time.Time
	valid   bool
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithProbe sets the host introspection used when no width is configured.
func WithProbe(p Probe) Option {
	return func(e *Estimator) {
		if p != nil {
			e.probe = p
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) {
		if now != nil {
			e.now = now
		}
	}
}

// WithTTL sets the cache lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(e *Estimator) {
		e.ttl = ttl
	}
}

// New creates an Estimator. configured returns the configured width, where values below
// one mean "estimate from the host". A nil configured always estimates.
func New(configured func() int, opts ...Option) *Estimator {
	e := &Estimator{
		configured: configured,
		probe:      Chain{TerminalProbe{}, EnvProbe{}},
		now:        time.Now,
		ttl:        DefaultTTL,
		log:        logger.NewStyledLogger("Width"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Current returns the column count to lay output out in.
func (e *Estimator) Current() int {
	if e.configured != nil {
		if w := e.configured(); w > 0 {
			return w
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if e.valid && now.Sub(e.checked) <= e.ttl {
		return e.cached
	}
	e.cached = e.estimate()
	e.checked = now
	e.valid = true
	return e.cached
}

// estimate never fails: any probe error, bogus answer or panic yields DefaultColumns.
func (e *Estimator) estimate() (columns int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Width probe panicked", "error", fmt.Sprint(r), "width", DefaultColumns)
			columns = DefaultColumns
		}
	}()

	n, err := e.probe.Columns()
	if err != nil || n < 1 {
		e.log.Debug("Width probe unavailable, using default", "error", err, "width", DefaultColumns)
		return DefaultColumns
	}
	e.log.Debug("Width probed", "width", n)
	return n
}
