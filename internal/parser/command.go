// Package parser parses console backslash commands of the form \name[opt=value, flag] text.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Command is a parsed backslash command.
type Command struct {
	Name string
	// Options holds bracket options; flags without a value map to "".
	Options map[string]string
	// OptionOrder lists option keys as written.
	OptionOrder []string
	// Message is the text after the name and options.
	Message string
}

var (
	// ErrNotCommand is returned for input without the leading backslash.
	ErrNotCommand = errors.New(`command must start with '\'`)

	namePattern        = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	nameOptionsPattern = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\[(.*)\]$`)
)

// ParseCommand parses input such as `\set[console.hexIntegers.alsoDecimal=false]` or
// `\get console.hexIntegers.generators`.
func ParseCommand(input string) (*Command, error) {
	input = strings.TrimSpace(input)
	rest, ok := strings.CutPrefix(input, `\`)
	if !ok {
		return nil, ErrNotCommand
	}

	head, message, err := splitHead(rest)
	if err != nil {
		return nil, err
	}
	if head == "" {
		return nil, errors.New("empty command")
	}
	cmd := &Command{
		Options: make(map[string]string),
		Message: strings.TrimSpace(message),
	}

	if !strings.Contains(head, "[") {
		if !namePattern.MatchString(head) {
			return nil, fmt.Errorf("invalid command name %q", head)
		}
		cmd.Name = head
		return cmd, nil
	}

	matches := nameOptionsPattern.FindStringSubmatch(head)
	if matches == nil {
		return nil, fmt.Errorf("invalid command format %q", head)
	}
	cmd.Name = matches[1]
	if err := cmd.parseOptions(matches[2]); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cmd, nil
}

// splitHead separates "name[options]" from the message. Spaces inside the brackets
// belong to the options.
func splitHead(rest string) (head, message string, err error) {
	space := strings.IndexAny(rest, " \t")
	open := strings.IndexByte(rest, '[')
	if open < 0 || (space >= 0 && space < open) {
		if space < 0 {
			return rest, "", nil
		}
		return rest[:space], rest[space+1:], nil
	}

	end := closingBracket(rest, open)
	if end < 0 {
		return "", "", fmt.Errorf("invalid command format %q: unclosed options", rest)
	}
	head, message = rest[:end+1], rest[end+1:]
	if message != "" && message[0] != ' ' && message[0] != '\t' {
		return "", "", fmt.Errorf("invalid command format %q", rest)
	}
	return head, message, nil
}

// closingBracket returns the index of the ']' closing the '[' at open, skipping quoted
// text, or -1.
func closingBracket(s string, open int) int {
	quoteChar := byte(0)
	for i := open + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case quoteChar == 0 && (c == '"' || c == '\''):
			quoteChar = c
		case quoteChar != 0 && c == quoteChar:
			quoteChar = 0
		case quoteChar == 0 && c == ']':
			return i
		}
	}
	return -1
}

func (c *Command) parseOptions(optionsStr string) error {
	for _, part := range splitOptions(optionsStr) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("option without name in %q", part)
		}
		if hasValue {
			value = unquote(strings.TrimSpace(value))
		}
		if _, seen := c.Options[key]; !seen {
			c.OptionOrder = append(c.OptionOrder, key)
		}
		c.Options[key] = value
	}
	return nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// splitOptions splits at commas outside quotes.
func splitOptions(s string) []string {
	var parts []string
	var current strings.Builder
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoteChar == 0 && (c == '"' || c == '\''):
			quoteChar = c
		case quoteChar != 0 && c == quoteChar:
			quoteChar = 0
		case quoteChar == 0 && c == ',':
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteByte(c)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// String formats the command back, options sorted by key.
func (c *Command) String() string {
	var b strings.Builder
	b.WriteString(`\` + c.Name)
	if len(c.Options) > 0 {
		keys := make([]string, 0, len(c.Options))
		for k := range c.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("[")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			if v := c.Options[k]; v != "" {
				fmt.Fprintf(&b, "=%q", v)
			}
		}
		b.WriteString("]")
	}
	if c.Message != "" {
		b.WriteString(" " + c.Message)
	}
	return b.String()
}
