package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/temirov/repoinsight/internal/screen"
)

const (
	pickerTitleTemplateConstant          = "Select Files (%d/%d)"
	pickerSelectAllLabelConstant         = "select all"
	pickerDeselectAllLabelConstant       = "deselect all"
	pickerCursorConstant                 = "> "
	pickerNoCursorConstant               = "  "
	pickerCheckedBoxConstant             = "[x] "
	pickerUncheckedBoxConstant           = "[ ] "
	pickerNoFilesConstant                = "No files available."
	pickerLineSeparatorConstant          = "\n"
	pickerUnexpectedModelMessageConstant = "file picker returned an unexpected model"
	pickerLabelSeparatorConstant         = "  "
	pickerToggleAllHintTemplateConstant  = "[a] %s"
)

var errUnexpectedPickerModel = errors.New(pickerUnexpectedModelMessageConstant)

// SelectableFiles is the selection state driven by the file picker.
type SelectableFiles interface {
	Available() []string
	IsSelected(path string) bool
	Toggle(path string)
	ToggleAll()
	Counts() (int, int)
	AllSelected() bool
}

// FileLabeler converts a file identifier into the label shown in the picker.
type FileLabeler func(path string) string

// FilePickerKeyMap lists the key bindings understood by the file picker.
type FilePickerKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

// DefaultFilePickerKeyMap returns arrow and vim-style movement, space to toggle, "a" to toggle all,
// enter to submit, and q or esc to cancel.
func DefaultFilePickerKeyMap() FilePickerKeyMap {
	return FilePickerKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
		Cancel:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "cancel")),
	}
}

// FilePickerModel is a bubbletea model for choosing files from a SelectableFiles selection.
type FilePickerModel struct {
	selection        SelectableFiles
	labeler          FileLabeler
	palette          Palette
	keys             FilePickerKeyMap
	help             help.Model
	cursor           int
	submitted        bool
	cancelled        bool
	showEmptyWarning bool
}

// NewFilePickerModel constructs a picker over selection. A nil labeler shows the raw identifiers.
func NewFilePickerModel(selection SelectableFiles, palette Palette, labeler FileLabeler) FilePickerModel {
	if labeler == nil {
		labeler = func(path string) string { return path }
	}
	return FilePickerModel{
		selection: selection,
		labeler:   labeler,
		palette:   palette,
		keys:      DefaultFilePickerKeyMap(),
		help:      help.New(),
	}
}

// Init implements tea.Model.
func (model FilePickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model FilePickerModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKeyMessage := message.(tea.KeyMsg)
	if !isKeyMessage {
		return model, nil
	}

	files := model.selection.Available()
	switch {
	case key.Matches(keyMessage, model.keys.Cancel):
		model.cancelled = true
		return model, tea.Quit
	case key.Matches(keyMessage, model.keys.Submit):
		if selectedCount, _ := model.selection.Counts(); selectedCount == 0 {
			model.showEmptyWarning = true
			return model, nil
		}
		model.submitted = true
		return model, tea.Quit
	case key.Matches(keyMessage, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(keyMessage, model.keys.Down):
		if model.cursor < len(files)-1 {
			model.cursor++
		}
	case key.Matches(keyMessage, model.keys.Toggle):
		if model.cursor < len(files) {
			model.selection.Toggle(files[model.cursor])
		}
		model.showEmptyWarning = false
	case key.Matches(keyMessage, model.keys.ToggleAll):
		model.selection.ToggleAll()
		model.showEmptyWarning = false
	}
	return model, nil
}

// View implements tea.Model.
func (model FilePickerModel) View() string {
	if model.submitted || model.cancelled {
		return ""
	}

	files := model.selection.Available()
	selectedCount, availableCount := model.selection.Counts()

	toggleAllLabel := pickerSelectAllLabelConstant
	if model.selection.AllSelected() {
		toggleAllLabel = pickerDeselectAllLabelConstant
	}

	var builder strings.Builder
	builder.WriteString(model.palette.Heading.Render(fmt.Sprintf(pickerTitleTemplateConstant, selectedCount, availableCount)))
	builder.WriteString(pickerLabelSeparatorConstant)
	builder.WriteString(model.palette.Muted.Render(fmt.Sprintf(pickerToggleAllHintTemplateConstant, toggleAllLabel)))
	builder.WriteString(pickerLineSeparatorConstant)

	if len(files) == 0 {
		builder.WriteString(model.palette.Muted.Render(pickerNoFilesConstant))
		builder.WriteString(pickerLineSeparatorConstant)
	}

	for fileIndex, file := range files {
		cursor := pickerNoCursorConstant
		if fileIndex == model.cursor {
			cursor = pickerCursorConstant
		}
		checkbox := pickerUncheckedBoxConstant
		label := model.labeler(file)
		if model.selection.IsSelected(file) {
			checkbox = pickerCheckedBoxConstant
			label = model.palette.Selected.Render(label)
		}
		builder.WriteString(cursor + checkbox + label + pickerLineSeparatorConstant)
	}

	if model.showEmptyWarning {
		builder.WriteString(model.palette.Failure.Render(screen.EmptySelectionMessage))
		builder.WriteString(pickerLineSeparatorConstant)
	}

	builder.WriteString(pickerLineSeparatorConstant)
	builder.WriteString(model.help.ShortHelpView([]key.Binding{
		model.keys.Up,
		model.keys.Down,
		model.keys.Toggle,
		model.keys.ToggleAll,
		model.keys.Submit,
		model.keys.Cancel,
	}))
	builder.WriteString(pickerLineSeparatorConstant)
	return builder.String()
}

// Submitted reports whether the user confirmed the selection.
func (model FilePickerModel) Submitted() bool {
	return model.submitted
}

// Cancelled reports whether the user abandoned the picker.
func (model FilePickerModel) Cancelled() bool {
	return model.cancelled
}

// RunFilePicker runs model as a bubbletea program on the given terminal streams and returns its final state.
func RunFilePicker(executionContext context.Context, model FilePickerModel, input io.Reader, output io.Writer) (FilePickerModel, error) {
	program := tea.NewProgram(model, tea.WithContext(executionContext), tea.WithInput(input), tea.WithOutput(output))
	finalModel, runError := program.Run()
	if runError != nil {
		return model, runError
	}

	pickerModel, isPickerModel := finalModel.(FilePickerModel)
	if !isPickerModel {
		return model, errUnexpectedPickerModel
	}
	return pickerModel, nil
}
