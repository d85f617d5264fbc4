// Package hextypes defines the value model shared by the hexshell renderers, the preview
// extractor and the console host.
package hextypes

// Shape is the closed classification of a value used to select a rendering rule.
type Shape int

const (
	// ShapeOpaque is the fallback; the value's own default textual form is used.
	ShapeOpaque Shape = iota
	// ShapeBool represents boolean values.
	ShapeBool
	// ShapeNull represents nil and absent values.
	ShapeNull
	// ShapeInteger represents integral numbers of any width.
	ShapeInteger
	// ShapeNearIntegral represents reals whose fractional part is below the epsilon.
	ShapeNearIntegral
	// ShapeText represents strings.
	ShapeText
	// ShapeTuple represents fixed-arity ordered sequences.
	ShapeTuple
	// ShapeList represents resizable ordered sequences.
	ShapeList
	// ShapeMapping represents key-value mappings.
	ShapeMapping
	// ShapeSet represents unordered unique sequences.
	ShapeSet
	// ShapeOneShot represents single-pass sequences such as iterators and channels.
	ShapeOneShot
	// ShapeEllipsis represents the truncation sentinel.
	ShapeEllipsis
)

var shapeNames = map[Shape]string{
	ShapeOpaque:       "opaque",
	ShapeBool:         "bool",
	ShapeNull:         "null",
	ShapeInteger:      "integer",
	ShapeNearIntegral: "near-integral",
	ShapeText:         "text",
	ShapeTuple:        "tuple",
	ShapeList:         "list",
	ShapeMapping:      "mapping",
	ShapeSet:          "set",
	ShapeOneShot:      "one-shot",
	ShapeEllipsis:     "ellipsis",
}

// String returns the lower-case shape name.
func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsContainer reports whether values of this shape have children to recurse into.
func (s Shape) IsContainer() bool {
	switch s {
	case ShapeTuple, ShapeList, ShapeMapping, ShapeSet:
		return true
	default:
		return false
	}
}
