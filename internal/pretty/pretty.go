// Package pretty lays out values over multiple lines to fit a column budget. Leaf values
// use exactly the forms produced by package render.
package pretty

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"hexshell/internal/render"
	"hexshell/pkg/hextypes"
)

// DefaultWidth is the column budget used when Options.Width is not positive.
const DefaultWidth = 80

// Options control the layout.
type Options struct {
	// Width is the target number of columns.
	Width int
	// Indent is the number of spaces added per nesting level.
	Indent int
	// MaxDepth limits container nesting; 0 means unlimited.
	MaxDepth int
	// SortKeys orders mapping keys with render.CompareKeys. Set members are always sorted.
	SortKeys bool
	// Leaf holds the leaf formatting options shared with render.
	Leaf render.Options
}

// DefaultOptions returns the options matching the default settings.
func DefaultOptions() Options {
	return Options{
		Width:    DefaultWidth,
		Indent:   1,
		SortKeys: true,
		Leaf:     render.DefaultOptions(),
	}
}

// Render lays v out. It reports false when nothing should be printed.
func Render(v any, opts Options) (string, bool) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	opts.Indent = max(opts.Indent, 0)

	f := &formatter{opts: opts}
	var b strings.Builder
	ok := f.format(&b, v, nil, 0, 0, 0, 0, true)
	return b.String(), ok
}

type formatter struct {
	opts    Options
	oneLine bool
}

type item struct {
	key    any
	hasKey bool
	value  any
}

type layout struct {
	open, close string
	items       []item
}

// format writes v starting at column col. indent is the indentation of the line v lives
// on, level its container nesting depth and allowance the number of columns written after
// v on its last line.
func (f *formatter) format(b *strings.Builder, v any, ancestors render.Ancestors, col, indent, level, allowance int, top bool) bool {
	ancestors, recursive := ancestors.Enter(v)
	if recursive {
		b.WriteString(render.Recursion)
		return true
	}
	if target, ok := render.Indirect(v); ok {
		return f.format(b, target, ancestors, col, indent, level, allowance, top)
	}

	shape := render.Classify(v)
	if !shape.IsContainer() {
		s, ok := render.Leaf(v, shape, top, f.opts.Leaf)
		b.WriteString(s)
		return ok
	}
	if f.opts.MaxDepth > 0 && level >= f.opts.MaxDepth {
		b.WriteString(placeholder(shape))
		return true
	}

	l := f.layout(v, shape)
	if len(l.items) == 0 || f.oneLine {
		f.writeLine(b, l, ancestors, level)
		return true
	}

	if line := f.line(l, ancestors, level); col+ansi.StringWidth(line)+allowance <= f.opts.Width {
		b.WriteString(line)
		return true
	}

	inner := indent + f.opts.Indent
	pad := strings.Repeat(" ", inner)
	b.WriteString(l.open)
	for i, it := range l.items {
		b.WriteByte('\n')
		b.WriteString(pad)
		childCol := inner
		if it.hasKey {
			key := f.single(it.key, ancestors, level+1) + ": "
			b.WriteString(key)
			childCol += ansi.StringWidth(key)
		}
		last := i == len(l.items)-1
		trailing := 1
		if last {
			trailing = 0
		}
		f.format(b, it.value, ancestors, childCol, inner, level+1, trailing, false)
		if !last {
			b.WriteByte(',')
		}
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString(l.close)
	return true
}

// writeLine writes a container on a single line.
func (f *formatter) writeLine(b *strings.Builder, l layout, ancestors render.Ancestors, level int) {
	one := f.flat()
	b.WriteString(l.open)
	for i, it := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		if it.hasKey {
			one.format(b, it.key, ancestors, 0, 0, level+1, 0, false)
			b.WriteString(": ")
		}
		one.format(b, it.value, ancestors, 0, 0, level+1, 0, false)
	}
	b.WriteString(l.close)
}

func (f *formatter) line(l layout, ancestors render.Ancestors, level int) string {
	var b strings.Builder
	f.writeLine(&b, l, ancestors, level)
	return b.String()
}

func (f *formatter) single(v any, ancestors render.Ancestors, level int) string {
	var b strings.Builder
	f.flat().format(&b, v, ancestors, 0, 0, level, 0, false)
	return b.String()
}

func (f *formatter) flat() *formatter {
	if f.oneLine {
		return f
	}
	return &formatter{opts: f.opts, oneLine: true}
}

func (f *formatter) layout(v any, shape hextypes.Shape) layout {
	var l layout
	switch shape {
	case hextypes.ShapeTuple:
		l.open, l.close = "(", ")"
	case hextypes.ShapeList:
		l.open, l.close = "[", "]"
	default:
		l.open, l.close = "{", "}"
	}

	if shape == hextypes.ShapeMapping {
		entries := render.Entries(v)
		if f.opts.SortKeys {
			render.SortEntries(entries)
		}
		for _, e := range entries {
			l.items = append(l.items, item{key: e.Key, hasKey: true, value: e.Value})
		}
		return l
	}

	for _, e := range render.Elements(v) {
		l.items = append(l.items, item{value: e})
	}
	return l
}

func placeholder(shape hextypes.Shape) string {
	switch shape {
	case hextypes.ShapeTuple:
		return "(...)"
	case hextypes.ShapeList:
		return "[...]"
	default:
		return "{...}"
	}
}
