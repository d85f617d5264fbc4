package render

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexshell/pkg/hextypes"
)

type signal int

func (s signal) String() string { return "SIGKILL" }

type errno int

func (e errno) HasCustomForm() bool { return e != 0 }
func (e errno) CustomForm() string  { return fmt.Sprintf("<Errno.ENOENT: %d>", int(e)) }

type point struct{ X, Y int }

func TestClassify(t *testing.T) {
	ch := make(chan int)
	tests := []struct {
		name  string
		value any
		want  hextypes.Shape
	}{
		{"nil", nil, hextypes.ShapeNull},
		{"bool", true, hextypes.ShapeBool},
		{"int", 5, hextypes.ShapeInteger},
		{"uint8", uint8(5), hextypes.ShapeInteger},
		{"big", big.NewInt(5), hextypes.ShapeInteger},
		{"custom", signal(9), hextypes.ShapeInteger},
		{"near integral", 2.00001, hextypes.ShapeNearIntegral},
		{"fractional", 2.5, hextypes.ShapeOpaque},
		{"text", "x", hextypes.ShapeText},
		{"tuple", hextypes.Tuple{1}, hextypes.ShapeTuple},
		{"array", [2]int{1, 2}, hextypes.ShapeTuple},
		{"list", []int{1}, hextypes.ShapeList},
		{"map", map[string]int{}, hextypes.ShapeMapping},
		{"ordered map", hextypes.NewOrderedMap(), hextypes.ShapeMapping},
		{"set", &hextypes.Set{}, hextypes.ShapeSet},
		{"one shot", hextypes.FromSlice("s"), hextypes.ShapeOneShot},
		{"channel", ch, hextypes.ShapeOneShot},
		{"send channel", (chan<- int)(ch), hextypes.ShapeOpaque},
		{"ellipsis", hextypes.Ellipsis, hextypes.ShapeEllipsis},
		{"struct", point{1, 2}, hextypes.ShapeOpaque},
		{"nil pointer", (*int)(nil), hextypes.ShapeNull},
		{"nil ordered map", (*hextypes.OrderedMap)(nil), hextypes.ShapeNull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value))
		})
	}
}

func TestRenderIntegers(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 15, 16, 255, 4096, 123456789} {
		on, ok := Render(n, Options{AlsoDecimal: true})
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("%d / 0x%x", n, n), on)

		off, _ := Render(n, Options{})
		assert.Equal(t, fmt.Sprintf("0x%x", n), off)

		nested, _ := Render([]any{n}, Options{AlsoDecimal: true})
		assert.Equal(t, fmt.Sprintf("[0x%x]", n), nested)
	}
}

func TestRenderIntegerVariants(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789abcdef0123", 16)
	require.True(t, ok)

	tests := []struct {
		name  string
		value any
		opts  Options
		want  string
	}{
		{"negative", -5, Options{AlsoDecimal: true}, "-5 / -0x5"},
		{"uint64 max", ^uint64(0), Options{}, "0xffffffffffffffff"},
		{"big", huge, Options{}, "0x123456789abcdef0123"},
		{"bytes", []byte{1, 0xab}, Options{AlsoDecimal: true}, "[0x1, 0xab]"},
		{"pointer", func() any { n := 5; return &n }(), Options{AlsoDecimal: true}, "5 / 0x5"},
		{"stringer embeds no decimal", signal(9), Options{AlsoDecimal: true}, "SIGKILL / 9 / 0x9"},
		{"custom embeds decimal", errno(2), Options{AlsoDecimal: true}, "<Errno.ENOENT: 2> / 0x2"},
		{"custom without decimal option", errno(2), Options{}, "<Errno.ENOENT: 2>"},
		{"custom declined", errno(0), Options{AlsoDecimal: true}, "0 / 0x0"},
		{"custom nested", []any{errno(2), signal(9)}, Options{AlsoDecimal: true}, "[<Errno.ENOENT: 2>, SIGKILL]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Render(tt.value, tt.opts)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderNearIntegral(t *testing.T) {
	got, _ := Render(2.00001, Options{AlsoDecimal: true})
	assert.Equal(t, "~2 / ~0x2", got)

	got, _ = Render(2.00001, Options{})
	assert.Equal(t, "~0x2", got)

	got, _ = Render(-2.99999, Options{AlsoDecimal: true})
	assert.Equal(t, "~-3 / ~-0x3", got)

	got, _ = Render(float32(16), Options{})
	assert.Equal(t, "~0x10", got)

	got, _ = Render([]any{255.0}, Options{AlsoDecimal: true})
	assert.Equal(t, "[~0xff]", got)

	got, _ = Render(2.5, Options{AlsoDecimal: true})
	assert.Equal(t, "2.5", got)
}

func TestRenderNull(t *testing.T) {
	got, ok := Render(nil, Options{})
	assert.False(t, ok)
	assert.Empty(t, got)

	got, ok = Render(nil, Options{ShowTopNull: true})
	assert.True(t, ok)
	assert.Equal(t, "nil", got)

	got, ok = Render([]any{nil, (*int)(nil)}, Options{})
	assert.True(t, ok)
	assert.Equal(t, "[nil, nil]", got)
}

func TestRenderBoolIsNotHex(t *testing.T) {
	got, _ := Render(true, Options{AlsoDecimal: true})
	assert.Equal(t, "true", got)

	got, _ = Render([]any{false, 1}, Options{})
	assert.Equal(t, "[false, 0x1]", got)
}

func TestRenderContainers(t *testing.T) {
	set, err := hextypes.NewSet(7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"tuple", hextypes.Tuple{1, "a"}, "(0x1, 'a')"},
		{"array", [2]int{1, 2}, "(0x1, 0x2)"},
		{"list", []any{1, []any{2, 3}}, "[0x1, [0x2, 0x3]]"},
		{"empty list", []int{}, "[]"},
		{"ordered map", hextypes.NewOrderedMap(
			hextypes.Entry{Key: 1, Value: "a"},
			hextypes.Entry{Key: 2, Value: "b"},
		), "{0x1: 'a', 0x2: 'b'}"},
		{"insertion order kept", hextypes.NewOrderedMap(
			hextypes.Entry{Key: "z", Value: 1},
			hextypes.Entry{Key: "a", Value: 2},
		), "{'z': 0x1, 'a': 0x2}"},
		{"go map sorted", map[string]int{"b": 2, "a": 1}, "{'a': 0x1, 'b': 0x2}"},
		{"set", set, "{0x7}"},
		{"empty set", &hextypes.Set{}, "{}"},
		{"ellipsis", []any{1, hextypes.Ellipsis}, "[0x1, ...]"},
		{"opaque struct", point{1, 2}, "{1 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Render(tt.value, Options{AlsoDecimal: true})
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderSetMembers(t *testing.T) {
	set, err := hextypes.NewSet(3, "b", 1, "a", nil, 2)
	require.NoError(t, err)

	got, _ := Render(set, Options{})
	assert.Equal(t, "{nil, 0x1, 0x2, 0x3, 'a', 'b'}", got)
}

func TestRenderCycles(t *testing.T) {
	t.Run("list contains itself", func(t *testing.T) {
		list := []any{1, nil}
		list[1] = list
		got, _ := Render(list, Options{})
		assert.Equal(t, "[0x1, <recursion>]", got)
	})

	t.Run("indirect through nested list", func(t *testing.T) {
		outer := []any{1, nil}
		inner := []any{outer}
		outer[1] = inner
		got, _ := Render(outer, Options{})
		assert.Equal(t, "[0x1, [<recursion>]]", got)
	})

	t.Run("map contains itself", func(t *testing.T) {
		m := hextypes.NewOrderedMap()
		m.Set("self", m)
		got, _ := Render(m, Options{})
		assert.Equal(t, "{'self': <recursion>}", got)
	})

	t.Run("go map contains itself", func(t *testing.T) {
		m := map[string]any{}
		m["self"] = m
		got, _ := Render(m, Options{})
		assert.Equal(t, "{'self': <recursion>}", got)
	})

	t.Run("pointer cycle", func(t *testing.T) {
		var v any
		v = &v
		got, _ := Render(v, Options{})
		assert.Equal(t, Recursion, got)
	})

	t.Run("shared siblings are not recursion", func(t *testing.T) {
		shared := []any{1}
		got, _ := Render([]any{shared, shared}, Options{})
		assert.Equal(t, "[[0x1], [0x1]]", got)
	})
}

func TestRenderNestedOneShotIsNotConsumed(t *testing.T) {
	seq := hextypes.FromSlice("nums", 1, 2)
	got, _ := Render([]any{seq}, Options{})
	assert.Equal(t, "[<generator nums>]", got)

	items, err := hextypes.Drain(seq)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, items)
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"abc":        `'abc'`,
		"it's":       `"it's"`,
		`both ' "`:   `'both \' "'`,
		"a\\b":       `'a\\b'`,
		"line\nend":  `'line\nend'`,
		"\t\r":       `'\t\r'`,
		"\x00\x7f":   `'\x00\x7f'`,
		"\xff":       `'\xff'`,
		"héllo":      `'héllo'`,
		"\u200b":     `'\u200b'`,
		"\u0085":     `'\x85'`,
		"\u00a0":     `'\xa0'`,
		"\U000e0001": `'\U000e0001'`,
	}
	for in, want := range tests {
		assert.Equal(t, want, Quote(in), "input %q", in)
	}
}

func TestNestedSkipsTopLevelRules(t *testing.T) {
	assert.Equal(t, "0x10", Nested(16, Options{AlsoDecimal: true}))
	assert.Equal(t, "nil", Nested(nil, Options{}))
}

func TestCompareKeys(t *testing.T) {
	entries := []hextypes.Entry{
		{Key: "b"}, {Key: 10}, {Key: nil}, {Key: 2.5}, {Key: true}, {Key: "a"}, {Key: false}, {Key: uint8(3)},
	}
	SortEntries(entries)
	keys := make([]any, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	assert.Equal(t, []any{nil, false, true, 2.5, uint8(3), 10, "a", "b"}, keys)
}
