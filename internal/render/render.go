package render

import (
	"strings"

	"hexshell/pkg/hextypes"
)

// Render formats v as a single line. It reports false when nothing should be printed,
// which only happens for a suppressed top-level nil.
func Render(v any, opts Options) (string, bool) {
	r := renderer{opts: opts}
	return r.render(v, nil, true)
}

// Nested formats v as a child value: top-level-only rules do not apply.
func Nested(v any, opts Options) string {
	r := renderer{opts: opts}
	s, _ := r.render(v, nil, false)
	return s
}

type renderer struct {
	opts Options
}

func (r renderer) render(v any, ancestors Ancestors, top bool) (string, bool) {
	ancestors, recursive := ancestors.Enter(v)
	if recursive {
		return Recursion, true
	}
	if target, ok := Indirect(v); ok {
		return r.render(target, ancestors, top)
	}

	shape := Classify(v)
	switch shape {
	case hextypes.ShapeTuple:
		return "(" + r.join(Elements(v), ancestors) + ")", true
	case hextypes.ShapeList:
		return "[" + r.join(Elements(v), ancestors) + "]", true
	case hextypes.ShapeSet:
		return "{" + r.join(Elements(v), ancestors) + "}", true
	case hextypes.ShapeMapping:
		var b strings.Builder
		b.WriteByte('{')
		for i, e := range Entries(v) {
			if i > 0 {
				b.WriteString(", ")
			}
			k, _ := r.render(e.Key, ancestors, false)
			val, _ := r.render(e.Value, ancestors, false)
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(val)
		}
		b.WriteByte('}')
		return b.String(), true
	}
	return Leaf(v, shape, top, r.opts)
}

func (r renderer) join(items []any, ancestors Ancestors) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i], _ = r.render(item, ancestors, false)
	}
	return strings.Join(parts, ", ")
}
