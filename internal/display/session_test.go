package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexshell/internal/settings"
	"hexshell/internal/testutils"
	"hexshell/internal/width"
	"hexshell/pkg/hextypes"
)

const consolePrefix = "hexshell/internal/display.consoleFrame"

// consoleFrame runs f with a frame that StackDetector recognizes as console code.
//
//go:noinline
func consoleFrame(f func()) {
	f()
}

type recordingHost struct {
	last  any
	calls []any
}

func (h *recordingHost) SetLast(v any) {
	h.last = v
	h.calls = append(h.calls, v)
}

type fixture struct {
	session *Session
	store   *settings.Store
	host    *recordingHost
	out     *bytes.Buffer
}

func newFixture(t *testing.T, overrides map[string]string) *fixture {
	t.Helper()
	store, err := settings.NewDefault()
	require.NoError(t, err)
	for key, value := range overrides {
		require.NoError(t, store.Set(key, value))
	}

	var ids testutils.SequentialIDs
	f := &fixture{store: store, host: &recordingHost{}, out: &bytes.Buffer{}}
	f.session = NewSession(store,
		WithHost(f.host),
		WithWriter(f.out),
		WithDetector(StackDetector{Prefixes: []string{consolePrefix}}),
		WithIDGenerator(ids.Next),
		WithEstimator(width.New(func() int { return store.GetInt(settings.PrettyPrintWidth) },
			width.WithProbe(width.ProbeFunc(func() (int, error) { return 80, nil })))),
	)
	return f
}

func TestDisplayValues(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		value     any
		want      string
	}{
		{name: "integer", value: 255, want: "255 / 0xff\n"},
		{name: "integer without decimal", overrides: map[string]string{settings.AlsoDecimal: "false"}, value: 255, want: "0xff\n"},
		{name: "nested integers", value: []any{1, 2}, want: "[0x1, 0x2]\n"},
		{name: "text", value: "hi", want: "'hi'\n"},
		{name: "nil suppressed", value: nil, want: ""},
		{name: "nil shown", overrides: map[string]string{settings.ShowTopNone: "true"}, value: nil, want: "nil\n"},
		{name: "near integral", value: 3.00001, want: "~3 / ~0x3\n"},
		{
			name:      "pretty",
			overrides: map[string]string{settings.PrettyPrint: "true", settings.PrettyPrintWidth: "10"},
			value:     []any{1, 2, 3},
			want:      "[\n 0x1,\n 0x2,\n 0x3\n]\n",
		},
		{
			name:      "pretty indent",
			overrides: map[string]string{settings.PrettyPrint: "true", settings.PrettyPrintWidth: "10", settings.PrettyPrintIndent: "2"},
			value:     []any{1, 2, 3},
			want:      "[\n  0x1,\n  0x2,\n  0x3\n]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.overrides)
			require.NoError(t, f.session.Display(tt.value))
			assert.Equal(t, tt.want, f.out.String())
			assert.Equal(t, tt.value, f.host.last)
			require.Len(t, f.host.calls, 2)
			assert.Nil(t, f.host.calls[0], "last value is cleared before rendering")
		})
	}
}

func TestDisplayGeneratorPreview(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.session.Display(hextypes.FromSlice("gen", 1, 2, 3)))
	assert.Equal(t, "(generator gen) [0x1, 0x2, 0x3]\n", f.out.String())

	copied, ok := f.host.last.(hextypes.OneShot)
	require.True(t, ok)
	items, err := hextypes.Drain(copied)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, items)
}

func TestDisplayGeneratorTruncated(t *testing.T) {
	f := newFixture(t, map[string]string{settings.GeneratorLength: "5"})
	counter := testutils.NewCounter(0)
	require.NoError(t, f.session.Display(counter))

	assert.Equal(t, "(generator count) [0x0, 0x1, 0x2, 0x3, 0x4, ...]\n", f.out.String())
	assert.Equal(t, 6, counter.Pulled())

	copied := f.host.last.(hextypes.OneShot)
	for want := 0; want < 8; want++ {
		v, ok, err := copied.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
}

func TestDisplayGeneratorPreviewDisabled(t *testing.T) {
	f := newFixture(t, map[string]string{settings.Generators: "false"})
	counter := testutils.NewCounter(0)
	require.NoError(t, f.session.Display(counter))

	assert.Equal(t, "<generator count>\n", f.out.String())
	assert.Same(t, counter, f.host.last)
	assert.Equal(t, 0, counter.Pulled())
}

func TestDisplayChannel(t *testing.T) {
	f := newFixture(t, nil)
	ch := make(chan int, 2)
	ch <- 7
	ch <- 8
	close(ch)

	require.NoError(t, f.session.Display((<-chan int)(ch)))
	assert.Equal(t, "(generator chan int) [0x7, 0x8]\n", f.out.String())
}

func TestChannelNameIsStable(t *testing.T) {
	recv := (<-chan int)(make(chan int))

	nested := newFixture(t, nil)
	require.NoError(t, nested.session.Display([]any{recv}))
	assert.Equal(t, "[<generator chan int>]\n", nested.out.String())

	disabled := newFixture(t, map[string]string{settings.Generators: "false"})
	require.NoError(t, disabled.session.Display(recv))
	assert.Equal(t, "<generator chan int>\n", disabled.out.String())
}

func TestDisplayPreviewError(t *testing.T) {
	f := newFixture(t, nil)
	boom := assert.AnError

	err := f.session.Display(testutils.NewFailingSeq(boom, 1))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.out.String())
	assert.Nil(t, f.host.last)
}

func TestPrintPassThroughOutsideConsole(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.session.Print([]any{5, "a", nil}))
	assert.Equal(t, "5 a <nil>\n", f.out.String())

	gen := hextypes.FromSlice("gen", 1)
	require.NoError(t, f.session.Print([]any{gen}))
	v, ok, err := gen.Next()
	require.NoError(t, err)
	assert.True(t, ok, "pass-through does not consume")
	assert.Equal(t, 1, v)
}

func TestPrintInConsole(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		args      []any
		opts      []PrintOption
		want      string
	}{
		{name: "formats values", args: []any{5, "a", []any{1}}, want: "5 / 0x5 a [0x1]\n"},
		{name: "strings stay bare", args: []any{"it's"}, want: "it's\n"},
		{name: "nil is printed", args: []any{nil}, want: "nil\n"},
		{name: "separator and end", args: []any{1, 2}, opts: []PrintOption{WithSep(", "), WithEnd("!")}, want: "1 / 0x1, 2 / 0x2!"},
		{name: "preview", args: []any{hextypes.FromSlice("gen", 1, 2)}, want: "(generator gen) [0x1, 0x2]\n"},
		{name: "no preview with options", args: []any{hextypes.FromSlice("gen", 1)}, opts: []PrintOption{WithEnd("\n")}, want: "<generator gen>\n"},
		{name: "no preview with several args", args: []any{hextypes.FromSlice("gen", 1), 2}, want: "<generator gen> 2 / 0x2\n"},
		{
			name:      "preview disabled",
			overrides: map[string]string{settings.Generators: "false"},
			args:      []any{hextypes.FromSlice("gen", 1)},
			want:      "<generator gen>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.overrides)
			var err error
			consoleFrame(func() { err = f.session.Print(tt.args, tt.opts...) })
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.out.String())
			assert.Empty(t, f.host.calls, "print never rebinds the last value")
		})
	}
}

func TestPrintToFile(t *testing.T) {
	f := newFixture(t, nil)
	var other bytes.Buffer
	var err error
	consoleFrame(func() { err = f.session.Print([]any{16}, WithFile(&other)) })
	require.NoError(t, err)
	assert.Equal(t, "16 / 0x10\n", other.String())
	assert.Empty(t, f.out.String())
}

func TestPrintPreviewError(t *testing.T) {
	f := newFixture(t, nil)
	var err error
	consoleFrame(func() { err = f.session.Print([]any{testutils.NewFailingSeq(assert.AnError)}) })
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, f.out.String())
}

func TestClose(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.session.Close())

	assert.ErrorIs(t, f.session.Display(1), ErrClosed)
	assert.ErrorIs(t, f.session.Print([]any{1}), ErrClosed)
	assert.ErrorIs(t, f.session.Close(), ErrClosed)
	assert.Empty(t, f.out.String())
}

func TestSessionID(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, "00000001-0000-4000-8000-000000000001", f.session.ID())

	store, err := settings.NewDefault()
	require.NoError(t, err)
	assert.Len(t, NewSession(store).ID(), 36)
}

func TestFormat(t *testing.T) {
	f := newFixture(t, nil)
	text, ok := f.session.Format(map[string]any{"b": 2, "a": 1})
	assert.True(t, ok)
	assert.Equal(t, "{'a': 0x1, 'b': 0x2}", text)

	_, ok = f.session.Format(nil)
	assert.False(t, ok)
}

func TestStackDetector(t *testing.T) {
	d := StackDetector{Prefixes: []string{consolePrefix}}
	assert.False(t, d.InConsole())

	var inside bool
	consoleFrame(func() { inside = d.InConsole() })
	assert.True(t, inside)

	consoleFrame(func() { inside = StackDetector{}.InConsole() })
	assert.False(t, inside)

	assert.True(t, DetectorFunc(func() bool { return true }).InConsole())
}

func TestFprint(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Fprint(&b, "|", ".", 1, "x", nil))
	assert.Equal(t, "1|x|<nil>.", b.String())
}
