// Package preview peeks at one-shot sequences without taking them away from the caller.
package preview

import (
	"io"
	"sync"

	"hexshell/pkg/hextypes"
)

// teeBuffer holds the elements pulled from the source that at least one handle has not
// yet seen. base is the source index of buf[0].
type teeBuffer struct {
	mu      sync.Mutex
	src     hextypes.OneShot
	name    string
	buf     []any
	base    int
	cursors [2]int
	closed  [2]bool
	done    bool
	err     error
}

// Tee splits src into two independent one-shot handles that yield the same elements.
// Elements are pulled from src only when the leading handle needs them and are released
// once both handles have passed them. A source error is returned by each handle when it
// reaches the failing position.
func Tee(src hextypes.OneShot) (hextypes.OneShot, hextypes.OneShot) {
	return newTee(src)
}

func newTee(src hextypes.OneShot) (*teeHandle, *teeHandle) {
	b := &teeBuffer{src: src, name: hextypes.TypeName(src)}
	return &teeHandle{buf: b, id: 0}, &teeHandle{buf: b, id: 1}
}

type teeHandle struct {
	buf *teeBuffer
	id  int
}

// Next implements hextypes.OneShot.
func (h *teeHandle) Next() (any, bool, error) {
	b := h.buf
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed[h.id] {
		return nil, false, nil
	}
	pos := b.cursors[h.id]
	if pos-b.base >= len(b.buf) {
		if b.done {
			return nil, false, b.err
		}
		v, ok, err := b.src.Next()
		if err != nil || !ok {
			b.done, b.err = true, err
			return nil, false, err
		}
		b.buf = append(b.buf, v)
	}

	v := b.buf[pos-b.base]
	b.cursors[h.id]++
	b.release()
	return v, true, nil
}

// TypeName implements hextypes.Named with the source's name.
func (h *teeHandle) TypeName() string {
	return h.buf.name
}

// Close detaches the handle. Once both handles are closed the source is closed too, when
// it implements io.Closer.
func (h *teeHandle) Close() error {
	b := h.buf
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed[h.id] {
		return nil
	}
	b.closed[h.id] = true
	b.release()
	if b.closed[0] && b.closed[1] {
		b.buf = nil
		if c, ok := b.src.(io.Closer); ok {
			return c.Close()
		}
	}
	return nil
}

// release drops the elements every open handle has passed.
func (b *teeBuffer) release() {
	low := b.base + len(b.buf)
	for id, pos := range b.cursors {
		if !b.closed[id] {
			low = min(low, pos)
		}
	}
	if n := low - b.base; n > 0 {
		clear(b.buf[:n])
		b.buf = b.buf[n:]
		b.base = low
	}
}
