// Package eval evaluates the expression language of the hexshell console: YAML flow
// literals plus a handful of builtins that produce sequences and enumeration values.
package eval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hexshell/pkg/hextypes"
)

// ErrEmpty is returned for blank expressions.
var ErrEmpty = errors.New("empty expression")

// LastValue names the previous result in expressions.
const LastValue = "_"

type builtin func(e *Evaluator, arg string) (any, error)

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"range":  evalRange,
		"count":  evalCount,
		"iter":   evalIter,
		"list":   evalList,
		"tuple":  evalTuple,
		"set":    evalSet,
		"chan":   evalChan,
		"errno":  evalErrno,
		"signal": evalSignal,
	}
}

// Builtins returns the builtin names.
func Builtins() []string {
	return []string{"range", "count", "iter", "list", "tuple", "set", "chan", "errno", "signal"}
}

// Evaluator evaluates console expressions.
type Evaluator struct {
	last func() any
}

// New creates an Evaluator. last supplies the value of "_"; nil makes "_" evaluate to nil.
func New(last func() any) *Evaluator {
	if last == nil {
		last = func() any { return nil }
	}
	return &Evaluator{last: last}
}

// Eval evaluates one expression.
func (e *Evaluator) Eval(expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	switch expr {
	case "":
		return nil, ErrEmpty
	case LastValue:
		return e.last(), nil
	case "...":
		return hextypes.Ellipsis, nil
	}

	name, arg, _ := strings.Cut(expr, " ")
	if fn, ok := builtins[name]; ok {
		v, err := fn(e, strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}
	return ParseLiteral(expr)
}

func ints(arg string, minArgs, maxArgs int) ([]int, error) {
	fields := strings.Fields(arg)
	if len(fields) < minArgs || len(fields) > maxArgs {
		if minArgs == maxArgs {
			return nil, fmt.Errorf("expected %d integer argument(s), got %d", minArgs, len(fields))
		}
		return nil, fmt.Errorf("expected %d to %d integer arguments, got %d", minArgs, maxArgs, len(fields))
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		out[i] = int(n)
	}
	return out, nil
}

func evalRange(_ *Evaluator, arg string) (any, error) {
	n, err := ints(arg, 1, 2)
	if err != nil {
		return nil, err
	}
	if len(n) == 1 {
		return Range{Stop: n[0]}, nil
	}
	return Range{Start: n[0], Stop: n[1]}, nil
}

func evalCount(_ *Evaluator, arg string) (any, error) {
	n, err := ints(arg, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(n) == 0 {
		return counter(0), nil
	}
	return counter(n[0]), nil
}

func evalErrno(_ *Evaluator, arg string) (any, error) {
	n, err := ints(arg, 1, 1)
	if err != nil {
		return nil, err
	}
	return Errno(n[0]), nil
}

func evalSignal(_ *Evaluator, arg string) (any, error) {
	n, err := ints(arg, 1, 1)
	if err != nil {
		return nil, err
	}
	return Signal(n[0]), nil
}

func (e *Evaluator) operand(arg string) (any, error) {
	if arg == "" {
		return nil, errors.New("missing operand")
	}
	return e.Eval(arg)
}

func evalIter(e *Evaluator, arg string) (any, error) {
	v, err := e.operand(arg)
	if err != nil {
		return nil, err
	}
	return iterate(v)
}

func evalList(e *Evaluator, arg string) (any, error) {
	v, err := e.operand(arg)
	if err != nil {
		return nil, err
	}
	items, err := collect(v)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []any{}
	}
	return items, nil
}

func evalTuple(e *Evaluator, arg string) (any, error) {
	items, err := evalList(e, arg)
	if err != nil {
		return nil, err
	}
	return hextypes.Tuple(items.([]any)), nil
}

func evalSet(e *Evaluator, arg string) (any, error) {
	items, err := evalList(e, arg)
	if err != nil {
		return nil, err
	}
	return hextypes.NewSet(items.([]any)...)
}

func evalChan(e *Evaluator, arg string) (any, error) {
	items, err := evalList(e, arg)
	if err != nil {
		return nil, err
	}
	list := items.([]any)
	ch := make(chan any, len(list))
	for _, v := range list {
		ch <- v
	}
	close(ch)
	return (<-chan any)(ch), nil
}
