// Package testutils provides deterministic generators and fixtures for hexshell tests,
// including one-shot sequences with observable consumption.
package testutils

// Counter is an infinite one-shot sequence of consecutive integers that counts how many
// elements were pulled from it.
type Counter struct {
	next   int
	pulled int
}

// NewCounter returns a Counter starting at start.
func NewCounter(start int) *Counter {
	return &Counter{next: start}
}

// Next implements hextypes.OneShot.
func (c *Counter) Next() (any, bool, error) {
	v := c.next
	c.next++
	c.pulled++
	return v, true, nil
}

// TypeName implements hextypes.Named.
func (c *Counter) TypeName() string { return "count" }

// Pulled returns the number of elements taken so far.
func (c *Counter) Pulled() int { return c.pulled }

// FailingSeq yields its items and then fails with err.
type FailingSeq struct {
	items []any
	err   error
}

// NewFailingSeq returns a sequence yielding items followed by err.
func NewFailingSeq(err error, items ...any) *FailingSeq {
	return &FailingSeq{items: items, err: err}
}

// Next implements hextypes.OneShot.
func (s *FailingSeq) Next() (any, bool, error) {
	if len(s.items) == 0 {
		return nil, false, s.err
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, true, nil
}

// TypeName implements hextypes.Named.
func (s *FailingSeq) TypeName() string { return "failing" }
