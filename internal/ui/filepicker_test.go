package ui_test

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/temirov/repoinsight/internal/docstrings"
	"github.com/temirov/repoinsight/internal/ui"
)

const (
	testFirstFileConstant  = "https://github.com/octo/project/blob/main/app.py"
	testSecondFileConstant = "https://github.com/octo/project/blob/main/pkg/util.py"
	testThirdFileConstant  = "https://github.com/octo/project/blob/main/setup.py"
)

func newTestPicker() (ui.FilePickerModel, *docstrings.FileSelection) {
	selection := docstrings.NewFileSelection()
	selection.Replace([]string{testFirstFileConstant, testSecondFileConstant, testThirdFileConstant})
	var buffer bytes.Buffer
	return ui.NewFilePickerModel(selection, ui.NewPalette(&buffer, ui.ColorModeNever), nil), selection
}

func sendKeys(testInstance *testing.T, model ui.FilePickerModel, messages ...tea.KeyMsg) (ui.FilePickerModel, tea.Cmd) {
	var command tea.Cmd
	for _, message := range messages {
		var updatedModel tea.Model
		updatedModel, command = model.Update(message)
		pickerModel, isPickerModel := updatedModel.(ui.FilePickerModel)
		require.True(testInstance, isPickerModel)
		model = pickerModel
	}
	return model, command
}

func runeKey(character rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}}
}

func requireQuit(testInstance *testing.T, command tea.Cmd) {
	require.NotNil(testInstance, command)
	_, isQuit := command().(tea.QuitMsg)
	require.True(testInstance, isQuit)
}

func TestFilePickerTogglesUnderCursor(testInstance *testing.T) {
	model, selection := newTestPicker()

	model, _ = sendKeys(testInstance, model,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace},
		runeKey('j'),
		tea.KeyMsg{Type: tea.KeySpace},
		runeKey('k'),
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeySpace},
	)

	require.Equal(testInstance, []string{testSecondFileConstant, testThirdFileConstant, testFirstFileConstant}, selection.Selected())
	require.Contains(testInstance, model.View(), "Select Files (3/3)")
	require.Contains(testInstance, model.View(), "[a] deselect all")
}

func TestFilePickerToggleAll(testInstance *testing.T) {
	model, selection := newTestPicker()

	model, _ = sendKeys(testInstance, model, tea.KeyMsg{Type: tea.KeySpace}, runeKey('a'))
	require.Equal(testInstance, []string{testFirstFileConstant, testSecondFileConstant, testThirdFileConstant}, selection.Selected())

	model, _ = sendKeys(testInstance, model, runeKey('a'))
	require.Empty(testInstance, selection.Selected())
	require.Contains(testInstance, model.View(), "Select Files (0/3)")
}

func TestFilePickerSubmitRequiresSelection(testInstance *testing.T) {
	model, _ := newTestPicker()

	model, command := sendKeys(testInstance, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(testInstance, command)
	require.False(testInstance, model.Submitted())
	require.Contains(testInstance, model.View(), docstrings.EmptySelectionMessage)

	model, command = sendKeys(testInstance, model, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyEnter})
	requireQuit(testInstance, command)
	require.True(testInstance, model.Submitted())
	require.False(testInstance, model.Cancelled())
	require.Empty(testInstance, model.View())
}

func TestFilePickerCancel(testInstance *testing.T) {
	testCases := []struct {
		name    string
		message tea.KeyMsg
	}{
		{name: "q", message: runeKey('q')},
		{name: "esc", message: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl_c", message: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			model, _ := newTestPicker()
			model, command := sendKeys(testInstance, model, testCase.message)
			requireQuit(testInstance, command)
			require.True(testInstance, model.Cancelled())
			require.False(testInstance, model.Submitted())
		})
	}
}

func TestFilePickerViewUsesLabeler(testInstance *testing.T) {
	selection := docstrings.NewFileSelection()
	selection.Replace([]string{testFirstFileConstant})
	var buffer bytes.Buffer
	model := ui.NewFilePickerModel(selection, ui.NewPalette(&buffer, ui.ColorModeNever), func(path string) string {
		return "label:" + path[len(path)-6:]
	})

	view := model.View()
	require.Contains(testInstance, view, "> [ ] label:app.py")
	require.NotContains(testInstance, view, testFirstFileConstant)
}
