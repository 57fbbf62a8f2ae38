package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"xion/internal/data/embedded"
)

// ThemeFile is the YAML layout of a theme definition.
type ThemeFile struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Styles      map[string]StyleConfig `yaml:"styles"`
}

// StyleConfig is the styling of one semantic type. Colors are either a
// string (ANSI number or hex) or a {light, dark} adaptive pair.
type StyleConfig struct {
	Foreground interface{} `yaml:"foreground,omitempty"`
	Background interface{} `yaml:"background,omitempty"`
	Bold       bool        `yaml:"bold,omitempty"`
	Italic     bool        `yaml:"italic,omitempty"`
	Underline  bool        `yaml:"underline,omitempty"`
}

// Theme maps semantic types to lipgloss styles and implements StyleProvider.
type Theme struct {
	Name   string
	styles map[SemanticType]lipgloss.Style
	plain  lipgloss.Style
}

// LoadTheme parses theme YAML, binding styles to renderer (the default
// renderer when nil).
func LoadTheme(data []byte, renderer *lipgloss.Renderer) (*Theme, error) {
	var file ThemeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}

	theme := &Theme{
		Name:   file.Name,
		styles: make(map[SemanticType]lipgloss.Style, len(file.Styles)),
		plain:  renderer.NewStyle(),
	}
	for semantic, cfg := range file.Styles {
		theme.styles[SemanticType(semantic)] = createStyle(renderer, cfg)
	}
	return theme, nil
}

// DefaultTheme loads the embedded default theme.
func DefaultTheme(renderer *lipgloss.Renderer) (*Theme, error) {
	return LoadTheme(embedded.DefaultThemeData, renderer)
}

// GetStyle returns the style for semantic, or an unstyled style if the theme has none.
func (t *Theme) GetStyle(semantic SemanticType) TextStyle {
	if style, ok := t.styles[semantic]; ok {
		return style
	}
	return t.plain
}

// IsAvailable reports whether the theme has any styles.
func (t *Theme) IsAvailable() bool {
	return t != nil && len(t.styles) > 0
}

func createStyle(renderer *lipgloss.Renderer, cfg StyleConfig) lipgloss.Style {
	style := renderer.NewStyle()

	if color := parseColor(cfg.Foreground); color != nil {
		style = style.Foreground(color)
	}
	if color := parseColor(cfg.Background); color != nil {
		style = style.Background(color)
	}
	if cfg.Bold {
		style = style.Bold(true)
	}
	if cfg.Italic {
		style = style.Italic(true)
	}
	if cfg.Underline {
		style = style.Underline(true)
	}
	return style
}

func parseColor(value interface{}) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
	}
	return nil
}
