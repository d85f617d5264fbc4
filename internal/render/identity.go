package render

import "reflect"

// Ident identifies a reference value by address, length and type.
type Ident struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// Identify returns the identity of v. Only values that can reach themselves have one:
// non-nil pointers, maps, channels and non-empty slices.
func Identify(v any) (Ident, bool) {
	if v == nil {
		return Ident{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan:
		if rv.IsNil() {
			return Ident{}, false
		}
		return Ident{ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return Ident{}, false
		}
		return Ident{ptr: rv.Pointer(), len: rv.Len(), typ: rv.Type()}, true
	}
	return Ident{}, false
}

// Ancestors is the chain of values currently being rendered.
type Ancestors []Ident

// Contains reports whether id is already on the chain.
func (a Ancestors) Contains(id Ident) bool {
	for _, x := range a {
		if x == id {
			return true
		}
	}
	return false
}

// With returns a copy of the chain extended by id. The receiver is never modified, so
// sibling branches do not see each other.
func (a Ancestors) With(id Ident) Ancestors {
	out := make(Ancestors, len(a)+1)
	copy(out, a)
	out[len(a)] = id
	return out
}

// Enter checks v against the chain. It reports recursion when v is already being rendered,
// otherwise returns the chain to use for v's children.
func (a Ancestors) Enter(v any) (Ancestors, bool) {
	id, ok := Identify(v)
	if !ok {
		return a, false
	}
	if a.Contains(id) {
		return a, true
	}
	return a.With(id), false
}
