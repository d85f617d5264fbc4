// Package render implements the compact, cycle-safe value renderer and the leaf formatting
// rules shared with the pretty-layout formatter.
package render

import (
	"fmt"
	"iter"
	"math"
	"math/big"
	"reflect"
	"slices"

	"hexshell/pkg/hextypes"
)

// Epsilon is the largest fractional part for which a real is shown as an integer.
const Epsilon = 1e-4

// Classify returns the shape of v. It never consumes or calls into sequences.
// Pointers are not followed; Indirect does that.
func Classify(v any) hextypes.Shape {
	if v == nil {
		return hextypes.ShapeNull
	}
	if hextypes.IsEllipsis(v) {
		return hextypes.ShapeEllipsis
	}

	switch x := v.(type) {
	case hextypes.OneShot, iter.Seq[any]:
		return hextypes.ShapeOneShot
	case *hextypes.OrderedMap:
		if x == nil {
			return hextypes.ShapeNull
		}
		return hextypes.ShapeMapping
	case *hextypes.Set:
		if x == nil {
			return hextypes.ShapeNull
		}
		return hextypes.ShapeSet
	case hextypes.Tuple:
		return hextypes.ShapeTuple
	case *big.Int:
		if x == nil {
			return hextypes.ShapeNull
		}
		return hextypes.ShapeInteger
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return hextypes.ShapeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return hextypes.ShapeInteger
	case reflect.Float32, reflect.Float64:
		if _, ok := nearIntegral(rv.Float()); ok {
			return hextypes.ShapeNearIntegral
		}
		return hextypes.ShapeOpaque
	case reflect.String:
		return hextypes.ShapeText
	case reflect.Array:
		return hextypes.ShapeTuple
	case reflect.Slice:
		return hextypes.ShapeList
	case reflect.Map:
		return hextypes.ShapeMapping
	case reflect.Chan:
		if rv.Type().ChanDir()&reflect.RecvDir != 0 && !rv.IsNil() {
			return hextypes.ShapeOneShot
		}
		return hextypes.ShapeOpaque
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return hextypes.ShapeNull
		}
	}
	return hextypes.ShapeOpaque
}

// Indirect returns the pointee of a non-nil pointer that should be displayed through its
// target. Pointers to structs and pointers carrying their own display methods are kept.
func Indirect(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, false
	}
	switch v.(type) {
	case *hextypes.OrderedMap, *hextypes.Set, *big.Int,
		hextypes.OneShot, hextypes.CustomFormer, fmt.Stringer, error:
		return nil, false
	}
	if rv.Elem().Kind() == reflect.Struct {
		return nil, false
	}
	return rv.Elem().Interface(), true
}

// AsOneShot adapts a value of ShapeOneShot into a sequence handle.
func AsOneShot(v any) (hextypes.OneShot, bool) {
	switch x := v.(type) {
	case hextypes.OneShot:
		return x, true
	case iter.Seq[any]:
		return hextypes.FromSeq("generator", x), true
	}
	return hextypes.FromChan(v)
}

// nearIntegral returns floor(f) when f is within Epsilon above it.
func nearIntegral(f float64) (*big.Int, bool) {
	fl := math.Floor(f)
	if !(f-fl < Epsilon) {
		return nil, false
	}
	if math.Abs(fl) < 1<<62 {
		return big.NewInt(int64(fl)), true
	}
	n, _ := new(big.Float).SetFloat64(fl).Int(nil)
	return n, true
}

// Elements returns the children of a tuple, list or set value. Set members are sorted
// with CompareKeys.
func Elements(v any) []any {
	switch x := v.(type) {
	case hextypes.Tuple:
		return []any(x)
	case *hextypes.Set:
		items := x.Items()
		slices.SortStableFunc(items, CompareKeys)
		return items
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return nil
}

// Entries returns the entries of a mapping value. OrderedMap keeps insertion order; Go maps
// have none and are sorted with CompareKeys.
func Entries(v any) []hextypes.Entry {
	if m, ok := v.(*hextypes.OrderedMap); ok {
		return m.Entries()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil
	}
	out := make([]hextypes.Entry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out = append(out, hextypes.Entry{Key: it.Key().Interface(), Value: it.Value().Interface()})
	}
	SortEntries(out)
	return out
}
