// Package theme holds the lipgloss styles used by the jsonview terminal
// viewer and the CLI's styled output.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// EnvTheme overrides the configured theme.
const EnvTheme = "JSONVIEW_THEME"

// --- Dark palette ---
const (
	darkKey       = "#7E9CD8"
	darkString    = "#98BB6C"
	darkNumber    = "#FFA066"
	darkBoolean   = "#957FB8"
	darkNull      = "#727169"
	darkText      = "#DCD7BA"
	darkMuted     = "#727169"
	darkBorder    = "#363646"
	darkSelected  = "#223249"
	darkMatch     = "#FF9E3B"
	darkMatchText = "#1D1C19"
	darkRed       = "#FF5D62"
	darkGreen     = "#98BB6C"
	darkYellow    = "#FF9E3B"
	darkCyan      = "#7FB4CA"
	darkAccent    = "#D27E99"
	darkSubtleBg  = "#1F1F28"
)

// --- Light palette ---
const (
	lightKey       = "#4F7CAC"
	lightString    = "#4E7C5A"
	lightNumber    = "#CC6B4E"
	lightBoolean   = "#674D7A"
	lightNull      = "#6C7086"
	lightText      = "#2B2F42"
	lightMuted     = "#6C7086"
	lightBorder    = "#B5BDC5"
	lightSelected  = "#E2E6F3"
	lightMatch     = "#A68A64"
	lightMatchText = "#F7F7FB"
	lightRed       = "#C34043"
	lightGreen     = "#4E7C5A"
	lightYellow    = "#A68A64"
	lightCyan      = "#5B8BBE"
	lightAccent    = "#B35C74"
	lightSubtleBg  = "#F7F7FB"
)

// Colors encapsulates the palette used by a theme.
type Colors struct {
	Key       lipgloss.TerminalColor
	String    lipgloss.TerminalColor
	Number    lipgloss.TerminalColor
	Boolean   lipgloss.TerminalColor
	Null      lipgloss.TerminalColor
	Text      lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Selected  lipgloss.TerminalColor
	Match     lipgloss.TerminalColor
	MatchText lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Accent    lipgloss.TerminalColor
	SubtleBg  lipgloss.TerminalColor
}

// Theme holds all the pre-configured styles for jsonview.
type Theme struct {
	Name   string
	Dark   bool
	Colors Colors

	// Headers and titles
	Header lipgloss.Style
	Title  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Text styles
	Bold     lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Tree styles, one per value kind
	Key     lipgloss.Style
	String  lipgloss.Style
	Number  lipgloss.Style
	Boolean lipgloss.Style
	Null    lipgloss.Style
	Bracket lipgloss.Style
	Summary lipgloss.Style

	// Search highlighting
	Match        lipgloss.Style
	CurrentMatch lipgloss.Style

	// Interactive elements
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Prompt      lipgloss.Style

	// Containers
	Box    lipgloss.Style
	Code   lipgloss.Style
	Accent lipgloss.Style
}

// DefaultTheme is resolved from JSONVIEW_THEME or the theme setting.
var DefaultTheme = New(themeName())

// New builds the theme for a configured name: light, dark or system.
// Unknown names behave like system.
func New(name string) *Theme {
	name = normalize(name)
	var dark bool
	switch name {
	case config.ThemeLight:
		dark = false
	case config.ThemeDark:
		dark = true
	default:
		name = config.ThemeSystem
		dark = detectDark()
	}
	return fromColors(name, dark, palette(dark))
}

// Mode reports the palette a theme name resolves to on this terminal.
func Mode(name string) string {
	if New(name).Dark {
		return config.ThemeDark
	}
	return config.ThemeLight
}

// ValueStyle returns the style for scalar values of a kind.
func (t *Theme) ValueStyle(kind jsonvalue.Kind) lipgloss.Style {
	switch kind {
	case jsonvalue.KindString:
		return t.String
	case jsonvalue.KindNumber:
		return t.Number
	case jsonvalue.KindBoolean:
		return t.Boolean
	case jsonvalue.KindNull:
		return t.Null
	default:
		return t.Bracket
	}
}

// RenderHeader renders a header with the default styling.
func RenderHeader(title string) string {
	return DefaultTheme.Header.Render(title)
}

// RenderStatus renders text with the appropriate status style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

func palette(dark bool) Colors {
	if dark {
		return Colors{
			Key:       lipgloss.Color(darkKey),
			String:    lipgloss.Color(darkString),
			Number:    lipgloss.Color(darkNumber),
			Boolean:   lipgloss.Color(darkBoolean),
			Null:      lipgloss.Color(darkNull),
			Text:      lipgloss.Color(darkText),
			Muted:     lipgloss.Color(darkMuted),
			Border:    lipgloss.Color(darkBorder),
			Selected:  lipgloss.Color(darkSelected),
			Match:     lipgloss.Color(darkMatch),
			MatchText: lipgloss.Color(darkMatchText),
			Red:       lipgloss.Color(darkRed),
			Green:     lipgloss.Color(darkGreen),
			Yellow:    lipgloss.Color(darkYellow),
			Cyan:      lipgloss.Color(darkCyan),
			Accent:    lipgloss.Color(darkAccent),
			SubtleBg:  lipgloss.Color(darkSubtleBg),
		}
	}
	return Colors{
		Key:       lipgloss.Color(lightKey),
		String:    lipgloss.Color(lightString),
		Number:    lipgloss.Color(lightNumber),
		Boolean:   lipgloss.Color(lightBoolean),
		Null:      lipgloss.Color(lightNull),
		Text:      lipgloss.Color(lightText),
		Muted:     lipgloss.Color(lightMuted),
		Border:    lipgloss.Color(lightBorder),
		Selected:  lipgloss.Color(lightSelected),
		Match:     lipgloss.Color(lightMatch),
		MatchText: lipgloss.Color(lightMatchText),
		Red:       lipgloss.Color(lightRed),
		Green:     lipgloss.Color(lightGreen),
		Yellow:    lipgloss.Color(lightYellow),
		Cyan:      lipgloss.Color(lightCyan),
		Accent:    lipgloss.Color(lightAccent),
		SubtleBg:  lipgloss.Color(lightSubtleBg),
	}
}

func fromColors(name string, dark bool, colors Colors) *Theme {
	return &Theme{
		Name:   name,
		Dark:   dark,
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:     lipgloss.NewStyle().Bold(true),
		Normal:   lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(colors.Muted),
		Selected: lipgloss.NewStyle().Background(colors.Selected).Foreground(colors.Text),

		Key:     lipgloss.NewStyle().Foreground(colors.Key),
		String:  lipgloss.NewStyle().Foreground(colors.String),
		Number:  lipgloss.NewStyle().Foreground(colors.Number),
		Boolean: lipgloss.NewStyle().Foreground(colors.Boolean),
		Null:    lipgloss.NewStyle().Foreground(colors.Null).Italic(true),
		Bracket: lipgloss.NewStyle().Foreground(colors.Muted),
		Summary: lipgloss.NewStyle().Foreground(colors.Muted).Italic(true),

		Match: lipgloss.NewStyle().
			Underline(true).
			Foreground(colors.Match),

		CurrentMatch: lipgloss.NewStyle().
			Background(colors.Match).
			Foreground(colors.MatchText).
			Bold(true),

		Input:       lipgloss.NewStyle().Foreground(colors.Text),
		Placeholder: lipgloss.NewStyle().Foreground(colors.Muted).Italic(true),
		Prompt:      lipgloss.NewStyle().Foreground(colors.Accent).Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Code: lipgloss.NewStyle().
			Background(colors.SubtleBg).
			Foreground(colors.Text).
			Padding(0, 1),

		Accent: lipgloss.NewStyle().Foreground(colors.Accent).Bold(true),
	}
}

// detectDark asks the terminal for its background. Outside a terminal
// termenv reports dark.
func detectDark() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func themeName() string {
	if name := normalize(os.Getenv(EnvTheme)); name != "" {
		return name
	}
	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return config.DefaultTheme
	}
	return cfg.Theme
}
