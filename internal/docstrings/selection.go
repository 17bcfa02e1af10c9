package docstrings

import "slices"

// FileSelection tracks the files offered for docstring generation and the subset picked by the user.
// It is not safe for concurrent use.
type FileSelection struct {
	availableFiles []string
	selectedFiles  []string
	generated      bool
}

// NewFileSelection returns an empty selection.
func NewFileSelection() *FileSelection {
	return &FileSelection{}
}

// Replace installs a freshly listed set of files and clears the selection.
func (selection *FileSelection) Replace(files []string) {
	selection.availableFiles = append([]string{}, files...)
	selection.selectedFiles = nil
	selection.generated = false
}

// Clear drops both the available files and the selection.
func (selection *FileSelection) Clear() {
	selection.availableFiles = nil
	selection.selectedFiles = nil
	selection.generated = false
}

// Toggle removes path from the selection when present and appends it otherwise.
// Membership in the available files is the caller's responsibility.
func (selection *FileSelection) Toggle(path string) {
	if selectedIndex := slices.Index(selection.selectedFiles, path); selectedIndex >= 0 {
		selection.selectedFiles = slices.Delete(selection.selectedFiles, selectedIndex, selectedIndex+1)
		return
	}
	selection.selectedFiles = append(selection.selectedFiles, path)
}

// ToggleAll clears the selection when its size equals the number of available files,
// otherwise it selects every available file.
func (selection *FileSelection) ToggleAll() {
	if len(selection.selectedFiles) == len(selection.availableFiles) {
		selection.selectedFiles = nil
		return
	}
	selection.selectedFiles = append([]string{}, selection.availableFiles...)
}

// Available returns the listed files in backend order.
func (selection *FileSelection) Available() []string {
	return append([]string{}, selection.availableFiles...)
}

// Selected returns the selected files in selection order.
func (selection *FileSelection) Selected() []string {
	return append([]string{}, selection.selectedFiles...)
}

// Contains reports whether path is one of the available files.
func (selection *FileSelection) Contains(path string) bool {
	return slices.Contains(selection.availableFiles, path)
}

// IsSelected reports whether path is currently selected.
func (selection *FileSelection) IsSelected(path string) bool {
	return slices.Contains(selection.selectedFiles, path)
}

// Counts returns the number of selected and available files.
func (selection *FileSelection) Counts() (int, int) {
	return len(selection.selectedFiles), len(selection.availableFiles)
}

// AllSelected reports whether the next ToggleAll would clear the selection.
func (selection *FileSelection) AllSelected() bool {
	return len(selection.selectedFiles) == len(selection.availableFiles)
}

// Generated reports whether the last submission succeeded.
func (selection *FileSelection) Generated() bool {
	return selection.generated
}

func (selection *FileSelection) markGenerated() {
	selection.availableFiles = nil
	selection.selectedFiles = nil
	selection.generated = true
}
