package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/temirov/repoinsight/internal/ui"
)

const (
	writerNotConfiguredMessageConstant = "output writer not configured"
	textRendererMissingMessageConstant = "text renderer not provided"
	encodingErrorTemplateConstant      = "%s encoding failed: %w"
	jsonIndentConstant                 = "  "
	yamlIndentConstant                 = 2
)

var (
	// ErrWriterNotConfigured indicates a renderer was used without a destination writer.
	ErrWriterNotConfigured = errors.New(writerNotConfiguredMessageConstant)
	// ErrTextRendererMissing indicates text output was requested for a document without a text renderer.
	ErrTextRendererMissing = errors.New(textRendererMissingMessageConstant)
)

// TextRenderer writes the human-readable form of a document.
type TextRenderer func(writer io.Writer, palette ui.Palette) error

// Renderer writes command results in the configured format.
type Renderer struct {
	writer  io.Writer
	format  Format
	palette ui.Palette
}

// NewRenderer constructs a renderer that writes to writer. Text output is styled with palette.
func NewRenderer(writer io.Writer, format Format, palette ui.Palette) *Renderer {
	if len(format) == 0 {
		format = FormatText
	}
	return &Renderer{writer: writer, format: format, palette: palette}
}

// Format reports the configured output format.
func (renderer *Renderer) Format() Format {
	return renderer.format
}

// Palette exposes the styles used for text output.
func (renderer *Renderer) Palette() ui.Palette {
	return renderer.palette
}

// Writer exposes the destination writer.
func (renderer *Renderer) Writer() io.Writer {
	return renderer.writer
}

// Render writes document in the configured structured format, or calls renderText for text output.
// TOML documents must encode as a table, so document should be a struct or map.
func (renderer *Renderer) Render(document any, renderText TextRenderer) error {
	if renderer == nil || renderer.writer == nil {
		return ErrWriterNotConfigured
	}

	switch renderer.format {
	case FormatJSON:
		encoder := json.NewEncoder(renderer.writer)
		encoder.SetIndent("", jsonIndentConstant)
		if encodingError := encoder.Encode(document); encodingError != nil {
			return fmt.Errorf(encodingErrorTemplateConstant, FormatJSON, encodingError)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(renderer.writer)
		encoder.SetIndent(yamlIndentConstant)
		if encodingError := encoder.Encode(document); encodingError != nil {
			return fmt.Errorf(encodingErrorTemplateConstant, FormatYAML, encodingError)
		}
		if closeError := encoder.Close(); closeError != nil {
			return fmt.Errorf(encodingErrorTemplateConstant, FormatYAML, closeError)
		}
		return nil
	case FormatTOML:
		if encodingError := toml.NewEncoder(renderer.writer).Encode(document); encodingError != nil {
			return fmt.Errorf(encodingErrorTemplateConstant, FormatTOML, encodingError)
		}
		return nil
	default:
		if renderText == nil {
			return ErrTextRendererMissing
		}
		return renderText(renderer.writer, renderer.palette)
	}
}

// RendererProvider supplies the renderer for results written to writer.
type RendererProvider func(writer io.Writer) *Renderer

// ResolveRenderer returns the renderer from provider, or an auto-coloured text renderer for writer
// when provider is nil or yields nothing.
func ResolveRenderer(provider RendererProvider, writer io.Writer) *Renderer {
	if provider != nil {
		if renderer := provider(writer); renderer != nil {
			return renderer
		}
	}
	return NewRenderer(writer, FormatText, ui.NewPalette(writer, ui.ColorModeAuto))
}
