// Package output provides the console output system for Xion's driver messages.
// It supports optional theming through a StyleProvider and falls back to plain text.
package output

// StyleProvider is implemented by themes that can style text by semantic type.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic SemanticType) TextStyle

	// IsAvailable returns true if the provider is ready to provide styles.
	IsAvailable() bool
}

// TextStyle renders text with styling. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(strs ...string) string
}

// Mode defines the output mode of a Printer.
type Mode int

const (
	// ModeAuto styles output when a StyleProvider is available.
	ModeAuto Mode = iota
	// ModePlain never styles and strips escape sequences from text.
	ModePlain
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"
	// SemanticBanner represents the startup banner.
	SemanticBanner SemanticType = "banner"
)
