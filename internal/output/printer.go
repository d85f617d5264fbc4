package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the markdown wrap width used when none is configured.
const DefaultWidth = 80

// Printer writes console messages in plain or styled form.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	width         int
	forcePlain    bool
	testMode      bool
	silent        bool
	prefix        string

	// Thread safety for concurrent output
	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout and uses styles only on a color terminal.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
		width:  DefaultWidth,
	}

	for _, opt := range options {
		opt(p)
	}

	if p.styleProvider == nil && !p.forcePlain && p.styled() {
		p.styleProvider = NewLipglossStyles()
	}
	return p
}

// Printf outputs formatted text without any semantic styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text with info styling.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text with success styling (typically green).
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text with warning styling (typically yellow).
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text with error styling (typically red).
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Setting outputs one "key = value" line, followed by an indented description if any.
func (p *Printer) Setting(key string, value any, description string) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	line := p.style(SemanticKey).Render(key) + " = " + p.style(SemanticValue).Render(fmt.Sprint(value)) + "\n"
	if description != "" {
		line += "    " + p.style(SemanticComment).Render(description) + "\n"
	}
	p.write(line)
}

// Markdown outputs markdown text, rendered by glamour in styled mode and verbatim otherwise.
func (p *Printer) Markdown(md string) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	text := md
	if p.stylable() {
		if rendered, err := renderMarkdown(md, p.width); err == nil {
			text = rendered
		}
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	p.write(text)
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fallback to dark theme if auto-detection fails
		r, err = glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
	}
	return r.Render(md)
}

// output is the core output method that handles all rendering logic.
func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	result := p.style(semantic).Render(text)
	if addNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	p.write(result)
}

func (p *Printer) write(text string) {
	if p.prefix != "" {
		text = p.prefix + text
	}
	_, _ = io.WriteString(p.writer, text) // Ignore write errors for output operations
}

func (p *Printer) style(semantic SemanticType) TextStyle {
	if p.stylable() {
		return p.styleProvider.GetStyle(string(semantic))
	}
	return plainStyleFor(string(semantic))
}

func (p *Printer) styled() bool {
	switch p.mode {
	case ModeStyled:
		return true
	case ModeAuto:
		return SupportsStyles(p.writer)
	default:
		return false
	}
}

// stylable reports whether styles apply. Callers hold the printer lock.
func (p *Printer) stylable() bool {
	return !p.forcePlain && p.mode != ModePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}
