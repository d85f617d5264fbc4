// Package script runs .hex files. Statements use the console language, but results are not
// displayed and print writes its arguments unchanged.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hexshell/internal/display"
	"hexshell/internal/eval"
	"hexshell/internal/logger"
)

// Extension is the required script file extension.
const Extension = ".hex"

// ErrCommandInScript is returned for backslash commands, which only the console accepts.
var ErrCommandInScript = errors.New("console commands are not available in scripts")

// Runner executes scripts.
type Runner struct {
	session   *display.Session
	evaluator *eval.Evaluator
	last      any
}

// New creates a Runner writing to w. Extra options are passed to the display session.
func New(settings display.Reader, w io.Writer, opts ...display.Option) *Runner {
	r := &Runner{}
	r.evaluator = eval.New(func() any { return r.last })
	opts = append([]display.Option{display.WithWriter(w)}, opts...)
	r.session = display.NewSession(settings, opts...)
	return r
}

// Last returns the value of the last expression statement.
func (r *Runner) Last() any { return r.last }

// RunFile validates and runs the script at path.
func (r *Runner) RunFile(path string) error {
	if ext := filepath.Ext(path); ext != Extension {
		return fmt.Errorf("script file must have %s extension, got: %q", Extension, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Run(f, path)
}

// Run executes every line of src. The first failing statement stops the script; its error
// carries name and line number.
func (r *Runner) Run(src io.Reader, name string) error {
	logger.Debug("Running script", "script", name)
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := r.execute(scanner.Text()); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

func (r *Runner) execute(line string) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "" || strings.HasPrefix(line, "#"):
		return nil
	case strings.HasPrefix(line, `\`):
		return ErrCommandInScript
	case line == "print" || strings.HasPrefix(line, "print "):
		return r.print(strings.TrimPrefix(line, "print"))
	}

	v, err := r.evaluator.Eval(line)
	if err != nil {
		return err
	}
	r.last = v
	return nil
}

func (r *Runner) print(rest string) error {
	call, err := eval.ParsePrint(rest)
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}
	args := make([]any, len(call.Args))
	for i, expr := range call.Args {
		if args[i], err = r.evaluator.Eval(expr); err != nil {
			return err
		}
	}
	var opts []display.PrintOption
	if call.Sep != nil {
		opts = append(opts, display.WithSep(*call.Sep))
	}
	if call.End != nil {
		opts = append(opts, display.WithEnd(*call.End))
	}
	return r.session.Print(args, opts...)
}
