// Package output provides the console output system for hexshell messages: errors,
// notices, settings listings and help text. Displayed values go through package display.
package output

// StyleProvider supplies styled text rendering for semantic output types.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the style provider is ready to provide styles.
	// This allows the output system to gracefully fall back to plain text.
	IsAvailable() bool
}

// TextStyle represents the capability to render text with styling.
// This interface is implemented by lipgloss.Style.
type TextStyle interface {
	Render(strs ...string) string
}

// Mode defines different output modes the printer can operate in.
type Mode int

const (
	// ModeAuto uses styles when the writer is a color-capable terminal
	ModeAuto Mode = iota

	// ModeStyled forces styled output (with colors, formatting)
	ModeStyled

	// ModePlain forces plain text output (no colors, minimal formatting)
	ModePlain
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess represents success or completion text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"

	// SemanticKey represents a setting key in listings.
	SemanticKey SemanticType = "key"
	// SemanticValue represents a setting value in listings.
	SemanticValue SemanticType = "value"
	// SemanticComment represents secondary descriptive text.
	SemanticComment SemanticType = "comment"
)
