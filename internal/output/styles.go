package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// LipglossStyles is the default StyleProvider.
type LipglossStyles struct {
	styles map[string]lipgloss.Style
}

// NewLipglossStyles returns the default console styles.
func NewLipglossStyles() *LipglossStyles {
	return &LipglossStyles{styles: map[string]lipgloss.Style{
		string(SemanticPlain):   lipgloss.NewStyle(),
		string(SemanticInfo):    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		string(SemanticSuccess): lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		string(SemanticWarning): lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		string(SemanticError):   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		string(SemanticKey):     lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		string(SemanticValue):   lipgloss.NewStyle().Bold(true),
		string(SemanticComment): lipgloss.NewStyle().Faint(true),
	}}
}

// GetStyle implements StyleProvider.
func (l *LipglossStyles) GetStyle(semantic string) TextStyle {
	if style, ok := l.styles[semantic]; ok {
		return style
	}
	return l.styles[string(SemanticPlain)]
}

// IsAvailable implements StyleProvider.
func (l *LipglossStyles) IsAvailable() bool { return l != nil }

// plainStyle renders text with a semantic prefix and no escape sequences.
type plainStyle struct {
	prefix string
}

func (s plainStyle) Render(strs ...string) string {
	text := ""
	for _, str := range strs {
		text += str
	}
	return s.prefix + text
}

var plainPrefixes = map[string]string{
	string(SemanticInfo):    "ℹ ",
	string(SemanticSuccess): "✓ ",
	string(SemanticWarning): "⚠ ",
	string(SemanticError):   "✗ ",
}

func plainStyleFor(semantic string) TextStyle {
	return plainStyle{prefix: plainPrefixes[semantic]}
}

// SupportsStyles reports whether w is a terminal that can show colors. NO_COLOR and
// non-terminal writers disable styles.
func SupportsStyles(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	out := termenv.NewOutput(f)
	if out.EnvNoColor() {
		return false
	}
	return out.ColorProfile() != termenv.Ascii
}
