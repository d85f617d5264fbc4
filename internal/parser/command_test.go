package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedName string
		expectedMsg  string
		expectedOpts map[string]string
		expectedKeys []string
	}{
		{
			name:         "simple command with message",
			input:        `\set console.hexIntegers.alsoDecimal false`,
			expectedName: "set",
			expectedMsg:  "console.hexIntegers.alsoDecimal false",
			expectedOpts: map[string]string{},
		},
		{
			name:         "command with single word",
			input:        `  \help  `,
			expectedName: "help",
			expectedOpts: map[string]string{},
		},
		{
			name:         "command with bracket options",
			input:        `\set[console.hexIntegers.prettyPrint=true]`,
			expectedName: "set",
			expectedOpts: map[string]string{"console.hexIntegers.prettyPrint": "true"},
			expectedKeys: []string{"console.hexIntegers.prettyPrint"},
		},
		{
			name:         "multiple options and a flag",
			input:        `\set[b=2, a=1, verbose] rest`,
			expectedName: "set",
			expectedMsg:  "rest",
			expectedOpts: map[string]string{"a": "1", "b": "2", "verbose": ""},
			expectedKeys: []string{"b", "a", "verbose"},
		},
		{
			name:         "quoted values",
			input:        `\set[x="a, b", y='c']`,
			expectedName: "set",
			expectedOpts: map[string]string{"x": "a, b", "y": "c"},
			expectedKeys: []string{"x", "y"},
		},
		{
			name:         "bracket inside quotes",
			input:        `\set[x="[a] b"] tail text`,
			expectedName: "set",
			expectedMsg:  "tail text",
			expectedOpts: map[string]string{"x": "[a] b"},
			expectedKeys: []string{"x"},
		},
		{
			name:         "message containing brackets",
			input:        `\get x[1]`,
			expectedName: "get",
			expectedMsg:  "x[1]",
			expectedOpts: map[string]string{},
		},
		{
			name:         "empty brackets",
			input:        `\settings[]`,
			expectedName: "settings",
			expectedOpts: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, cmd.Name)
			assert.Equal(t, tt.expectedMsg, cmd.Message)
			assert.Equal(t, tt.expectedOpts, cmd.Options)
			assert.Equal(t, tt.expectedKeys, cmd.OptionOrder)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{input: "help", want: ErrNotCommand},
		{input: `\`},
		{input: `\ help`},
		{input: `\se-t`},
		{input: `\set[a=1`},
		{input: `\set[=1]`},
		{input: `\set[a=1]rest`},
		{input: `\set[a="1]`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseCommand(tt.input)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	cmd, err := ParseCommand(`\set[b=2, a="x y", flag] msg`)
	require.NoError(t, err)
	assert.Equal(t, `\set[a="x y", b="2", flag] msg`, cmd.String())

	cmd, err = ParseCommand(`\exit`)
	require.NoError(t, err)
	assert.Equal(t, `\exit`, cmd.String())
}

func TestCommandStringParsesBack(t *testing.T) {
	inputs := []string{
		`\set[console.hexIntegers.alsoDecimal=false, console.hexIntegers.prettyPrintIndent=2]`,
		`\get[a, b] trailing`,
		`\set[x="a, b"]`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			cmd, err := ParseCommand(input)
			require.NoError(t, err)

			again, err := ParseCommand(cmd.String())
			require.NoError(t, err)
			assert.Equal(t, cmd.Name, again.Name)
			assert.Equal(t, cmd.Options, again.Options)
			assert.Equal(t, cmd.Message, again.Message)
		})
	}
}
