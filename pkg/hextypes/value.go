package hextypes

import (
	"fmt"
	"reflect"
)

type ellipsis struct{}

func (ellipsis) String() string { return "..." }

// Ellipsis is the sentinel appended to a truncated preview.
var Ellipsis any = ellipsis{}

// IsEllipsis reports whether v is the Ellipsis sentinel.
func IsEllipsis(v any) bool {
	_, ok := v.(ellipsis)
	return ok
}

// Tuple is a fixed-arity ordered sequence. It renders with parentheses.
type Tuple []any

// CustomFormer is implemented by numeric-like values (enumeration members, flag sets) that
// carry a display form of their own. Plain integers do not implement it.
type CustomFormer interface {
	HasCustomForm() bool
	CustomForm() string
}

// Entry is one key-value pair of a mapping.
type Entry struct {
	Key   any
	Value any
}

// OrderedMap is a mapping that remembers insertion order. Keys that are comparable are
// de-duplicated; non-comparable keys are appended as given.
type OrderedMap struct {
	entries []Entry
	index   map[any]int
}

// NewOrderedMap creates an OrderedMap holding the given entries in order.
func NewOrderedMap(entries ...Entry) *OrderedMap {
	m := &OrderedMap{index: make(map[any]int)}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set stores value under key, keeping the original position of an existing key.
func (m *OrderedMap) Set(key, value any) {
	if m.index == nil {
		m.index = make(map[any]int)
	}
	if isComparable(key) {
		if i, ok := m.index[key]; ok {
			m.entries[i].Value = value
			return
		}
		m.index[key] = len(m.entries)
	}
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under a comparable key.
func (m *OrderedMap) Get(key any) (any, bool) {
	if !isComparable(key) {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Entries returns the entries in insertion order. The slice is a copy.
func (m *OrderedMap) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.entries)
}

// Set is an unordered collection of unique comparable values.
type Set struct {
	items map[any]struct{}
}

// NewSet builds a set from items. It fails on the first non-comparable item.
func NewSet(items ...any) (*Set, error) {
	s := &Set{items: make(map[any]struct{}, len(items))}
	for _, item := range items {
		if err := s.Add(item); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts item into the set.
func (s *Set) Add(item any) error {
	if !isComparable(item) {
		return fmt.Errorf("unhashable set element of type %T", item)
	}
	if s.items == nil {
		s.items = make(map[any]struct{})
	}
	s.items[item] = struct{}{}
	return nil
}

// Contains reports whether item is a member.
func (s *Set) Contains(item any) bool {
	if !isComparable(item) {
		return false
	}
	_, ok := s.items[item]
	return ok
}

// Items returns the members in the set's iteration order, which is unspecified.
func (s *Set) Items() []any {
	out := make([]any, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	return out
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.items)
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
