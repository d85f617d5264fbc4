package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty", input: "  ", want: nil},
		{name: "single", input: "5", want: []string{"5"}},
		{name: "several", input: "1, 'a', x", want: []string{"1", "'a'", "x"}},
		{name: "nested commas", input: "[1, 2], {a: 1, b: 2}", want: []string{"[1, 2]", "{a: 1, b: 2}"}},
		{name: "quoted commas", input: `'a,b', "c,\"d"`, want: []string{"'a,b'", `"c,\"d"`}},
		{name: "unterminated quote", input: "'abc", wantErr: true},
		{name: "unbalanced", input: "1]", wantErr: true},
		{name: "unclosed", input: "[1", wantErr: true},
		{name: "empty argument", input: "1,,2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArgs(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrint(t *testing.T) {
	call, err := ParsePrint("1, [2, 3], sep='-', end=\"!\\n\"")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "[2, 3]"}, call.Args)
	require.NotNil(t, call.Sep)
	require.NotNil(t, call.End)
	assert.Equal(t, "-", *call.Sep)
	assert.Equal(t, "!\n", *call.End)
	assert.True(t, call.HasOptions())

	call, err = ParsePrint("count")
	require.NoError(t, err)
	assert.Equal(t, []string{"count"}, call.Args)
	assert.False(t, call.HasOptions())

	call, err = ParsePrint("'x', end=")
	require.NoError(t, err)
	assert.Equal(t, "", *call.End)

	call, err = ParsePrint("")
	require.NoError(t, err)
	assert.Empty(t, call.Args)

	_, err = ParsePrint("sep='-', 1")
	assert.Error(t, err)
}
