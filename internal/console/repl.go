package console

import (
	"errors"
	"io"

	"github.com/chzyer/readline"

	"hexshell/internal/eval"
	"hexshell/internal/logger"
	"hexshell/internal/settings"
)

// LineReader supplies input lines. *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
}

// Run reads and executes lines until EOF or \exit. Statement errors are reported and the
// loop continues; an interrupt discards the current line.
func (c *Console) Run(r LineReader) error {
	for {
		line, err := r.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			logger.Error("Line editor failed", "error", err)
			return err
		}

		if err := c.Execute(line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			c.log.Debug("Statement failed", "error", err)
			c.printer.Error(err.Error())
		}
	}
}

// NewReadline creates the line editor for the interactive console. An empty historyFile
// disables history.
func NewReadline(store *settings.Store, historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       `\exit`,
		AutoComplete:    completer(store),
	})
}

func completer(store *settings.Store) *readline.PrefixCompleter {
	keys := func(string) []string {
		defs := store.Settings()
		out := make([]string, len(defs))
		for i, def := range defs {
			out[i] = def.Key
		}
		return out
	}

	items := []readline.PrefixCompleterInterface{
		readline.PcItem(`\help`),
		readline.PcItem(`\settings`),
		readline.PcItem(`\get`, readline.PcItemDynamic(keys)),
		readline.PcItem(`\set`, readline.PcItemDynamic(keys)),
		readline.PcItem(`\width`),
		readline.PcItem(`\version`),
		readline.PcItem(`\exit`),
		readline.PcItem("print"),
	}
	for _, name := range eval.Builtins() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}
