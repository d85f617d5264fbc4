// Package golden compares script output against recorded .expected files.
package golden

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Extension is the suffix of recorded output files.
const Extension = ".expected"

// ErrMismatch is returned when output differs from the recorded file.
var ErrMismatch = errors.New("output does not match expected")

// ExpectedPath returns the recorded output path for a script: demo.hex -> demo.expected.
func ExpectedPath(script string) string {
	return strings.TrimSuffix(script, filepath.Ext(script)) + Extension
}

// Normalize makes outputs comparable across platforms and trailing newlines.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRight(s, "\n")
}

// Result is the outcome of one comparison.
type Result struct {
	Name     string
	Expected string
	Actual   string
	Diffs    []diffmatchpatch.Diff
}

// Equal reports whether the outputs matched.
func (r *Result) Equal() bool { return r.Expected == r.Actual }

// Compare normalizes both outputs and diffs them.
func Compare(name, expected, actual string) *Result {
	r := &Result{Name: name, Expected: Normalize(expected), Actual: Normalize(actual)}
	if !r.Equal() {
		dmp := diffmatchpatch.New()
		r.Diffs = dmp.DiffMain(r.Expected, r.Actual, false)
	}
	return r
}

// Check compares actual against the file at path.
func Check(path, actual string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read expected file %s: %w", path, err)
	}
	return Compare(filepath.Base(path), string(data), actual), nil
}

// Record writes actual to path as the new expected output.
func Record(path, actual string) error {
	if err := os.WriteFile(path, []byte(Normalize(actual)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write expected file: %w", err)
	}
	return nil
}

// Report writes a numbered listing of both outputs followed by the diff.
func (r *Result) Report(w io.Writer) {
	fmt.Fprintf(w, "=== %s ===\n", r.Name)
	if r.Equal() {
		fmt.Fprintln(w, "No differences found")
		return
	}

	fmt.Fprintln(w, "\n--- Expected ---")
	printNumberedLines(w, r.Expected)
	fmt.Fprintln(w, "\n--- Actual ---")
	printNumberedLines(w, r.Actual)

	fmt.Fprintln(w, "\n--- Diff ---")
	for _, diff := range r.Diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(w, "- %q\n", diff.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(w, "+ %q\n", diff.Text)
		case diffmatchpatch.DiffEqual:
			if len(diff.Text) > 50 {
				fmt.Fprintf(w, "  %q...\n", diff.Text[:47])
			} else {
				fmt.Fprintf(w, "  %q\n", diff.Text)
			}
		}
	}
}

func printNumberedLines(w io.Writer, content string) {
	for i, line := range strings.Split(content, "\n") {
		fmt.Fprintf(w, "%4d| %s\n", i+1, line)
	}
}
