package hextypes

import (
	"iter"
	"reflect"
	"runtime"
	"strings"
)

// OneShot is a single-pass sequence. Each element is yielded at most once; ok is false once
// the sequence is exhausted. A non-nil error ends the sequence.
type OneShot interface {
	Next() (value any, ok bool, err error)
}

// Reusable is a sequence that can be iterated any number of times. Each call to Iter
// starts a fresh pass.
type Reusable interface {
	Iter() OneShot
}

// Named is implemented by sequences that report a type name for display.
type Named interface {
	TypeName() string
}

// TypeName returns the display name of a sequence value: its Named name when available,
// otherwise the unqualified Go type name. Channels are named "chan ELEM".
func TypeName(v any) string {
	if n, ok := v.(Named); ok {
		return n.TypeName()
	}
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}
	if t.Kind() == reflect.Chan {
		return chanName(t)
	}
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		return name
	}
	return t.String()
}

// chanName names a channel by its element type, whatever its direction: "chan int".
func chanName(t reflect.Type) string {
	return "chan " + t.Elem().String()
}

// SeqFunc adapts a pull function into a OneShot. Stop, when set, releases the resources
// behind Pull; it runs once, on Close.
type SeqFunc struct {
	Name string
	Pull func() (any, bool, error)
	Stop func()
	done bool
}

// Next implements OneShot.
func (f *SeqFunc) Next() (any, bool, error) {
	if f.done {
		return nil, false, nil
	}
	v, ok, err := f.Pull()
	if !ok || err != nil {
		f.done = true
	}
	return v, ok, err
}

// Close ends the sequence early. Later calls to Next report exhaustion.
func (f *SeqFunc) Close() error {
	f.done = true
	if f.Stop != nil {
		f.Stop()
		f.Stop = nil
	}
	return nil
}

// TypeName implements Named.
func (f *SeqFunc) TypeName() string {
	if f.Name == "" {
		return "generator"
	}
	return f.Name
}

// FromSlice returns a OneShot over a copy of items.
func FromSlice(name string, items ...any) OneShot {
	buf := make([]any, len(items))
	copy(buf, items)
	i := 0
	return &SeqFunc{Name: name, Pull: func() (any, bool, error) {
		if i >= len(buf) {
			return nil, false, nil
		}
		v := buf[i]
		i++
		return v, true, nil
	}}
}

// FromSeq returns a OneShot that pulls from a range-over-func sequence. The pull
// coroutine ends when the sequence is exhausted, on Close, or once the returned value is
// garbage collected.
func FromSeq[T any](name string, seq iter.Seq[T]) OneShot {
	next, stop := iter.Pull(seq)
	s := &SeqFunc{Name: name, Stop: stop, Pull: func() (any, bool, error) {
		v, ok := next()
		if !ok {
			stop()
			return nil, false, nil
		}
		return v, true, nil
	}}
	runtime.AddCleanup(s, func(stop func()) { stop() }, stop)
	return s
}

// FromChan returns a OneShot receiving from ch, which must be a channel that allows
// receives. The sequence ends when the channel is closed.
func FromChan(ch any) (OneShot, bool) {
	rv := reflect.ValueOf(ch)
	if rv.Kind() != reflect.Chan || rv.Type().ChanDir()&reflect.RecvDir == 0 || rv.IsNil() {
		return nil, false
	}
	return &SeqFunc{Name: chanName(rv.Type()), Pull: func() (any, bool, error) {
		v, ok := rv.Recv()
		if !ok {
			return nil, false, nil
		}
		return v.Interface(), true, nil
	}}, true
}

// Drain consumes a OneShot to exhaustion.
func Drain(s OneShot) ([]any, error) {
	var out []any
	for {
		v, ok, err := s.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
