// Package console implements the interactive hexsh console: it evaluates one statement per
// line and shows results through a display session.
package console

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"

	"hexshell/internal/display"
	"hexshell/internal/eval"
	"hexshell/internal/logger"
	"hexshell/internal/output"
	"hexshell/internal/parser"
	"hexshell/internal/settings"
	"hexshell/internal/version"
	"hexshell/internal/width"
)

// Prompt is the interactive prompt.
const Prompt = "hex> "

//go:embed help.md
var helpText string

var (
	// ErrExit is returned by Execute for \exit.
	ErrExit = errors.New("exit requested")
	// ErrUnknownCommand is returned for unrecognized backslash commands.
	ErrUnknownCommand = errors.New("unknown command")
)

// framePrefix matches every function of this package in a stack trace.
var framePrefix = reflect.TypeOf(Console{}).PkgPath() + "."

// Detector recognizes calls made while the console executes a statement.
func Detector() display.Detector {
	return display.StackDetector{Prefixes: []string{framePrefix}}
}

// Console is the interactive statement executor. It is the display host: results are
// bound to "_" through SetLast.
type Console struct {
	store     *settings.Store
	session   *display.Session
	evaluator *eval.Evaluator
	printer   *output.Printer
	estimator *width.Estimator
	out       io.Writer
	ids       func() string
	log       *log.Logger
	last      any
}

// Option configures a Console.
type Option func(*Console)

// WithWriter sets where results and messages are written.
func WithWriter(w io.Writer) Option {
	return func(c *Console) {
		if w != nil {
			c.out = w
		}
	}
}

// WithPrinter sets the printer for messages. Its writer should match WithWriter.
func WithPrinter(p *output.Printer) Option {
	return func(c *Console) {
		if p != nil {
			c.printer = p
		}
	}
}

// WithEstimator sets the width estimator shared by pretty output and \width.
func WithEstimator(e *width.Estimator) Option {
	return func(c *Console) {
		if e != nil {
			c.estimator = e
		}
	}
}

// WithIDGenerator sets the display session id source.
func WithIDGenerator(next func() string) Option {
	return func(c *Console) {
		c.ids = next
	}
}

// New creates a console over store.
func New(store *settings.Store, opts ...Option) *Console {
	c := &Console{
		store: store,
		out:   os.Stdout,
		log:   logger.NewStyledLogger("Console"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.printer == nil {
		c.printer = output.NewPrinter(output.WithWriter(c.out))
	}
	if c.estimator == nil {
		c.estimator = width.New(func() int { return store.GetInt(settings.PrettyPrintWidth) })
	}

	c.evaluator = eval.New(c.Last)
	c.session = display.NewSession(store,
		display.WithHost(c),
		display.WithWriter(c.out),
		display.WithDetector(Detector()),
		display.WithEstimator(c.estimator),
		display.WithIDGenerator(c.ids),
	)
	return c
}

// SetLast implements display.Host.
func (c *Console) SetLast(v any) { c.last = v }

// Last returns the value bound to "_".
func (c *Console) Last() any { return c.last }

// Session returns the display session of the console.
func (c *Console) Session() *display.Session { return c.session }

// Close ends the display session.
func (c *Console) Close() error {
	return c.session.Close()
}

// Execute runs one line: a blank line, a # comment, a backslash command, a print
// statement or an expression whose result is displayed.
func (c *Console) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	c.log.Debug("Execute", "line", line)

	if strings.HasPrefix(line, `\`) {
		cmd, err := parser.ParseCommand(line)
		if err != nil {
			return err
		}
		return c.command(cmd)
	}
	if rest, ok := cutKeyword(line, "print"); ok {
		return c.print(rest)
	}

	v, err := c.evaluator.Eval(line)
	if err != nil {
		return err
	}
	return c.session.Display(v)
}

func cutKeyword(line, keyword string) (string, bool) {
	if line == keyword {
		return "", true
	}
	if rest, ok := strings.CutPrefix(line, keyword+" "); ok {
		return rest, true
	}
	return "", false
}

func (c *Console) print(rest string) error {
	call, err := eval.ParsePrint(rest)
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}
	args := make([]any, len(call.Args))
	for i, expr := range call.Args {
		v, err := c.evaluator.Eval(expr)
		if err != nil {
			return err
		}
		args[i] = v
	}

	var opts []display.PrintOption
	if call.Sep != nil {
		opts = append(opts, display.WithSep(*call.Sep))
	}
	if call.End != nil {
		opts = append(opts, display.WithEnd(*call.End))
	}
	return c.session.Print(args, opts...)
}

func (c *Console) command(cmd *parser.Command) error {
	arg := cmd.Message

	switch cmd.Name {
	case "help":
		c.printer.Markdown(helpText)
	case "settings":
		for _, def := range c.store.Settings() {
			v, err := c.store.Get(def.Key)
			if err != nil {
				return err
			}
			c.printer.Setting(def.Key, v, def.Description)
		}
	case "get":
		keys := cmd.OptionOrder
		if arg != "" {
			keys = append(keys, arg)
		}
		if len(keys) == 0 {
			return errors.New(`usage: \get KEY`)
		}
		for _, key := range keys {
			v, err := c.store.Get(key)
			if err != nil {
				return err
			}
			c.printer.Setting(key, v, "")
		}
	case "set":
		// \set[key=value, ...] and \set KEY VALUE may be combined.
		for _, key := range cmd.OptionOrder {
			if err := c.set(key, cmd.Options[key]); err != nil {
				return err
			}
		}
		if arg == "" && len(cmd.OptionOrder) > 0 {
			return nil
		}
		key, value, ok := strings.Cut(arg, " ")
		if !ok || strings.TrimSpace(value) == "" {
			return errors.New(`usage: \set KEY VALUE`)
		}
		return c.set(key, value)
	case "width":
		c.printer.Printf("%d\n", c.estimator.Current())
	case "version":
		c.printer.Println(version.String())
	case "exit", "quit":
		return ErrExit
	default:
		return fmt.Errorf("%w: \\%s", ErrUnknownCommand, cmd.Name)
	}
	return nil
}

func (c *Console) set(key, value string) error {
	if err := c.store.Set(key, strings.TrimSpace(value)); err != nil {
		return err
	}
	v, _ := c.store.Get(key)
	c.printer.Setting(key, v, "")
	return nil
}
