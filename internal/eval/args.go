package eval

import (
	"errors"
	"fmt"
	"strings"
)

// PrintCall is a parsed print statement.
type PrintCall struct {
	// Args are the unevaluated argument expressions.
	Args []string
	// Sep and End are set when given as sep=... or end=...
	Sep *string
	End *string
}

// HasOptions reports whether a keyword option was given.
func (c PrintCall) HasOptions() bool {
	return c.Sep != nil || c.End != nil
}

// ParsePrint parses the argument list of a print statement:
// comma separated expressions optionally followed by sep=TEXT and end=TEXT, where TEXT is
// a YAML scalar such as '-' or "\n".
func ParsePrint(text string) (PrintCall, error) {
	var call PrintCall
	parts, err := SplitArgs(text)
	if err != nil {
		return call, err
	}
	for _, part := range parts {
		key, value, isOption := option(part)
		if !isOption {
			if call.HasOptions() {
				return call, errors.New("positional argument after keyword option")
			}
			call.Args = append(call.Args, part)
			continue
		}
		s, err := optionText(value)
		if err != nil {
			return call, fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "sep":
			call.Sep = &s
		case "end":
			call.End = &s
		}
	}
	return call, nil
}

func option(part string) (key, value string, ok bool) {
	for _, key := range []string{"sep", "end"} {
		if rest, found := strings.CutPrefix(part, key+"="); found {
			return key, rest, true
		}
	}
	return "", "", false
}

func optionText(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	v, err := ParseLiteral(value)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	if v == nil {
		return "", nil
	}
	return fmt.Sprint(v), nil
}

// SplitArgs splits text at commas that are outside brackets and quotes. Empty input gives
// no arguments; an empty argument between commas is an error.
func SplitArgs(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var (
		parts []string
		depth int
		quote rune
		start int
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			switch {
			case r == '\\' && quote == '"':
				i++
			case r == quote:
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '[' || r == '{' || r == '(':
			depth++
		case r == ']' || r == '}' || r == ')':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced %q at offset %d", r, i)
			}
			depth--
		case r == ',' && depth == 0:
			parts = append(parts, string(runes[start:i]))
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if depth != 0 {
		return nil, errors.New("unclosed bracket")
	}
	parts = append(parts, string(runes[start:]))

	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return nil, errors.New("empty argument")
		}
	}
	return parts, nil
}
