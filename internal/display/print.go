package display

import (
	"fmt"
	"io"
	"strings"
)

// Primitive is the host's generic output function. It writes args separated by sep and
// followed by end.
type Primitive func(w io.Writer, sep, end string, args ...any) error

// Fprint is the default Primitive. Each argument is written in its fmt default form.
func Fprint(w io.Writer, sep, end string, args ...any) error {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	_, err := io.WriteString(w, strings.Join(parts, sep)+end)
	return err
}

// PrintOptions are the keyword options of an explicit print call.
type PrintOptions struct {
	Sep  string
	End  string
	File io.Writer
}

// PrintOption sets one print keyword.
type PrintOption func(*PrintOptions)

// WithSep sets the separator written between arguments.
func WithSep(sep string) PrintOption {
	return func(o *PrintOptions) { o.Sep = sep }
}

// WithEnd sets the text written after the last argument.
func WithEnd(end string) PrintOption {
	return func(o *PrintOptions) { o.End = end }
}

// WithFile redirects the output of a single call.
func WithFile(w io.Writer) PrintOption {
	return func(o *PrintOptions) {
		if w != nil {
			o.File = w
		}
	}
}
