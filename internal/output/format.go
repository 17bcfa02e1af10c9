package output

import (
	"fmt"
	"strings"
)

// Format identifies how command results are written to standard output.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

const unsupportedFormatTemplateConstant = "unsupported output format %q (expected text, json, yaml, or toml)"

// SupportedFormats lists every accepted format in display order.
func SupportedFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatTOML)}
}

// ParseFormat converts configuration text into a Format. Empty input selects FormatText.
func ParseFormat(rawValue string) (Format, error) {
	normalizedValue := Format(strings.ToLower(strings.TrimSpace(rawValue)))
	switch normalizedValue {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return normalizedValue, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, rawValue)
	}
}
