package hextypes

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap(Entry{Key: 2, Value: "b"}, Entry{Key: 1, Value: "a"})
	m.Set(2, "B")
	m.Set([]int{1}, "unhashable")

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 2, entries[0].Key)
	assert.Equal(t, "B", entries[0].Value)
	assert.Equal(t, 1, entries[1].Key)

	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = m.Get([]int{1})
	assert.False(t, ok)
}

func TestSetRejectsUnhashable(t *testing.T) {
	s, err := NewSet(1, 2, 2, "x")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("x"))

	_, err = NewSet([]any{1})
	assert.Error(t, err)
}

func TestFromSliceIsSinglePass(t *testing.T) {
	seq := FromSlice("nums", 1, 2, 3)
	first, err := Drain(seq)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, first)

	second, err := Drain(seq)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, "nums", TypeName(seq))
}

func TestFromChan(t *testing.T) {
	ch := make(chan int, 2)
	ch <- 7
	ch <- 8
	close(ch)

	seq, ok := FromChan(ch)
	require.True(t, ok)
	items, err := Drain(seq)
	require.NoError(t, err)
	assert.Equal(t, []any{7, 8}, items)
	assert.Equal(t, "chan int", TypeName(seq))

	_, ok = FromChan(make(chan<- int))
	assert.False(t, ok, "send-only channels cannot be drained")
}

func TestTypeNameOfChannels(t *testing.T) {
	ch := make(chan any)
	recv := (<-chan any)(ch)
	seq, ok := FromChan(recv)
	require.True(t, ok)

	assert.Equal(t, "chan interface {}", TypeName(recv))
	assert.Equal(t, TypeName(recv), TypeName(seq))
	assert.Equal(t, TypeName(ch), TypeName(recv))
}

func TestFromSeq(t *testing.T) {
	seq := FromSeq("letters", slices.Values([]string{"a", "b"}))
	items, err := Drain(seq)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, items)
}

func naturals(stopped *bool) func(yield func(int) bool) {
	return func(yield func(int) bool) {
		defer func() { *stopped = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func TestFromSeqClose(t *testing.T) {
	var stopped bool
	seq := FromSeq("naturals", naturals(&stopped))

	v, ok, err := seq.Next()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.False(t, stopped)

	closer, ok := seq.(io.Closer)
	require.True(t, ok)
	require.NoError(t, closer.Close())
	assert.True(t, stopped, "closing ends the pull coroutine")

	_, ok, err = seq.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, closer.Close(), "close is idempotent")
}

func TestSeqFuncStopsAfterError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	seq := &SeqFunc{Pull: func() (any, bool, error) {
		calls++
		return nil, false, boom
	}}
	_, err := Drain(seq)
	assert.ErrorIs(t, err, boom)
	_, ok, err := seq.Next()
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "generator", TypeName(seq))
}

type counter struct{}

func (*counter) Next() (any, bool, error) { return 0, true, nil }

func TestTypeNameStripsPointer(t *testing.T) {
	assert.Equal(t, "counter", TypeName(&counter{}))
	assert.Equal(t, "nil", TypeName(nil))
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "near-integral", ShapeNearIntegral.String())
	assert.True(t, ShapeSet.IsContainer())
	assert.False(t, ShapeOneShot.IsContainer())
	assert.Equal(t, "unknown", Shape(99).String())
}

func TestEllipsis(t *testing.T) {
	assert.True(t, IsEllipsis(Ellipsis))
	assert.False(t, IsEllipsis("..."))
}
