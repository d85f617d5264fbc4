package width

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Probe inspects the host console to find its visible column count.
type Probe interface {
	Columns() (int, error)
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func() (int, error)

// Columns implements Probe.
func (f ProbeFunc) Columns() (int, error) { return f() }

// ErrNoTerminal is returned when the output is not attached to a terminal.
var ErrNoTerminal = errors.New("output is not a terminal")

// TerminalProbe asks the terminal driver for the size of the terminal behind File.
type TerminalProbe struct {
	File *os.File
}

// Columns implements Probe.
func (p TerminalProbe) Columns() (int, error) {
	f := p.File
	if f == nil {
		f = os.Stdout
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, ErrNoTerminal
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0, fmt.Errorf("get terminal size: %w", err)
	}
	return w, nil
}

// EnvProbe reads the column count from an environment variable, COLUMNS by default.
type EnvProbe struct {
	Name string
}

// Columns implements Probe.
func (p EnvProbe) Columns() (int, error) {
	name := p.Name
	if name == "" {
		name = "COLUMNS"
	}
	raw, ok := os.LookupEnv(name)
	if !ok {
		return 0, fmt.Errorf("%s is not set", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return n, nil
}

// Chain tries each probe in order and returns the first positive answer.
type Chain []Probe

// Columns implements Probe.
func (c Chain) Columns() (int, error) {
	var errs []error
	for _, p := range c {
		n, err := p.Columns()
		if err == nil && n > 0 {
			return n, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return 0, errors.New("no probe reported a width")
	}
	return 0, errors.Join(errs...)
}
