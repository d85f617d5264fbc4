package eval

import (
	"fmt"
	"reflect"
	"strconv"

	"hexshell/internal/render"
	"hexshell/pkg/hextypes"
)

// Range is a re-iterable integer interval [Start, Stop).
type Range struct {
	Start, Stop int
}

// Iter implements hextypes.Reusable.
func (r Range) Iter() hextypes.OneShot {
	next := r.Start
	return &hextypes.SeqFunc{Name: "range_iterator", Pull: func() (any, bool, error) {
		if next >= r.Stop {
			return nil, false, nil
		}
		v := next
		next++
		return v, true, nil
	}}
}

func (r Range) String() string {
	return fmt.Sprintf("range(%d, %d)", r.Start, r.Stop)
}

var errnoNames = map[Errno]string{
	1: "EPERM", 2: "ENOENT", 3: "ESRCH", 4: "EINTR", 5: "EIO", 9: "EBADF", 11: "EAGAIN",
	12: "ENOMEM", 13: "EACCES", 17: "EEXIST", 20: "ENOTDIR", 21: "EISDIR", 22: "EINVAL",
	28: "ENOSPC", 32: "EPIPE",
}

// Errno is an error number. Known numbers display as "<Errno.NAME: n>".
type Errno int

// HasCustomForm implements hextypes.CustomFormer.
func (e Errno) HasCustomForm() bool {
	_, ok := errnoNames[e]
	return ok
}

// CustomForm implements hextypes.CustomFormer.
func (e Errno) CustomForm() string {
	return fmt.Sprintf("<Errno.%s: %d>", errnoNames[e], int(e))
}

var signalNames = map[Signal]string{
	1: "SIGHUP", 2: "SIGINT", 3: "SIGQUIT", 6: "SIGABRT", 9: "SIGKILL", 11: "SIGSEGV",
	13: "SIGPIPE", 14: "SIGALRM", 15: "SIGTERM",
}

// Signal is a process signal number whose String form is the signal name.
type Signal int

func (s Signal) String() string {
	if name, ok := signalNames[s]; ok {
		return name
	}
	return "signal " + strconv.Itoa(int(s))
}

// counter is the infinite sequence behind "count".
func counter(start int) hextypes.OneShot {
	next := start
	return &hextypes.SeqFunc{Name: "count", Pull: func() (any, bool, error) {
		v := next
		next++
		return v, true, nil
	}}
}

// iterate returns a one-shot sequence over v. One-shot values are returned as they are.
func iterate(v any) (hextypes.OneShot, error) {
	if r, ok := v.(hextypes.Reusable); ok {
		return r.Iter(), nil
	}
	if src, ok := render.AsOneShot(v); ok && render.Classify(v) == hextypes.ShapeOneShot {
		return src, nil
	}
	items, name, err := elements(v)
	if err != nil {
		return nil, err
	}
	return hextypes.FromSlice(name, items...), nil
}

// collect materializes v. One-shot values are consumed.
func collect(v any) ([]any, error) {
	if r, ok := v.(hextypes.Reusable); ok {
		return hextypes.Drain(r.Iter())
	}
	if src, ok := render.AsOneShot(v); ok && render.Classify(v) == hextypes.ShapeOneShot {
		return hextypes.Drain(src)
	}
	items, _, err := elements(v)
	return items, err
}

func elements(v any) ([]any, string, error) {
	if s, ok := v.(string); ok {
		items := make([]any, 0, len(s))
		for _, r := range s {
			items = append(items, string(r))
		}
		return items, "str_iterator", nil
	}
	switch shape := render.Classify(v); shape {
	case hextypes.ShapeList, hextypes.ShapeTuple, hextypes.ShapeSet:
		return render.Elements(v), shape.String() + "_iterator", nil
	case hextypes.ShapeMapping:
		entries := render.Entries(v)
		keys := make([]any, len(entries))
		for i, e := range entries {
			keys[i] = e.Key
		}
		return keys, "dict_keyiterator", nil
	}
	return nil, "", fmt.Errorf("%s is not iterable", typeName(v))
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
