package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects how terminal colour support is determined.
type ColorMode string

// Supported colour modes.
const (
	ColorModeAuto   ColorMode = "auto"
	ColorModeAlways ColorMode = "always"
	ColorModeNever  ColorMode = "never"
)

const (
	unsupportedColorModeTemplateConstant = "unsupported color mode %q (expected auto, always, or never)"
	headingColorConstant                 = "12"
	identifierColorConstant              = "#FFA500"
	accentColorConstant                  = "#00FFFF"
	mutedColorConstant                   = "241"
	successColorConstant                 = "#00FF00"
	failureColorConstant                 = "#FF0000"
)

// ParseColorMode converts configuration text into a ColorMode. Empty input selects ColorModeAuto.
func ParseColorMode(rawValue string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(rawValue))) {
	case "", ColorModeAuto:
		return ColorModeAuto, nil
	case ColorModeAlways:
		return ColorModeAlways, nil
	case ColorModeNever:
		return ColorModeNever, nil
	default:
		return "", fmt.Errorf(unsupportedColorModeTemplateConstant, rawValue)
	}
}

// Palette groups the lipgloss styles used to render human-readable results.
type Palette struct {
	Heading    lipgloss.Style
	Identifier lipgloss.Style
	Accent     lipgloss.Style
	Muted      lipgloss.Style
	Success    lipgloss.Style
	Failure    lipgloss.Style
	Selected   lipgloss.Style
}

// NewPalette builds styles bound to writer using the colour profile implied by mode.
func NewPalette(writer io.Writer, mode ColorMode) Palette {
	renderer := lipgloss.NewRenderer(writer)
	renderer.SetColorProfile(ResolveColorProfile(writer, mode))

	return Palette{
		Heading:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(headingColorConstant)),
		Identifier: renderer.NewStyle().Foreground(lipgloss.Color(identifierColorConstant)),
		Accent:     renderer.NewStyle().Foreground(lipgloss.Color(accentColorConstant)),
		Muted:      renderer.NewStyle().Foreground(lipgloss.Color(mutedColorConstant)),
		Success:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(successColorConstant)),
		Failure:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(failureColorConstant)),
		Selected:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(accentColorConstant)),
	}
}

// ResolveColorProfile maps a colour mode to a termenv profile.
// Auto mode inspects writer and honours NO_COLOR and CLICOLOR_FORCE.
func ResolveColorProfile(writer io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorModeAlways:
		return termenv.TrueColor
	case ColorModeNever:
		return termenv.Ascii
	default:
		return termenv.NewOutput(writer).EnvColorProfile()
	}
}
