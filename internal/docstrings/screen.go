package docstrings

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/backend"
	"github.com/temirov/repoinsight/internal/screen"
)

// Messages shown by the docstring screen.
const (
	ListFailureMessage       = "Failed to retrieve files. Please check the repository URL."
	GenerationFailureMessage = "Failed to generate docstrings. Please try again."
	EmptySelectionMessage    = screen.EmptySelectionMessage
	GenerationSuccessMessage = "Docstrings generated successfully! Check your repository for a new branch with the updated files."
)

const (
	collaboratorMissingMessageConstant   = "docstring backend not configured"
	logMessageListFailedConstant         = "repository file listing failed"
	logMessageGenerationFailedConstant   = "docstring generation failed"
	logMessageGenerationFinishedConstant = "docstring generation finished"
	logFieldRepositoryConstant           = "repository"
	logFieldFileCountConstant            = "file_count"
	logFieldSucceededConstant            = "succeeded"
)

// ErrBackendNotConfigured indicates the screen was constructed without a backend collaborator.
var ErrBackendNotConfigured = errors.New(collaboratorMissingMessageConstant)

// Backend lists repository files and generates docstrings for a selection of them.
type Backend interface {
	ListRepositoryFiles(executionContext context.Context, repositoryURL string) ([]string, error)
	GenerateDocstrings(executionContext context.Context, files []string) (backend.DocstringGenerationResult, error)
}

// Screen holds the docstring form state: the listing and generation request lifecycles and the file selection.
type Screen struct {
	logger          *zap.Logger
	backend         Backend
	listState       screen.State
	generationState screen.State
	selection       *FileSelection
}

// NewScreen constructs a docstring screen with an empty selection.
func NewScreen(logger *zap.Logger, docstringBackend Backend) (*Screen, error) {
	if docstringBackend == nil {
		return nil, ErrBackendNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{logger: logger, backend: docstringBackend, selection: NewFileSelection()}, nil
}

// Selection exposes the file selection driven by toggles and the interactive picker.
func (docstringScreen *Screen) Selection() *FileSelection {
	return docstringScreen.selection
}

// FetchFiles validates repositoryInput, clears the current files, and lists the repository files.
// On success the listed files replace the available files and the selection is reset.
func (docstringScreen *Screen) FetchFiles(executionContext context.Context, repositoryInput string) ([]string, error) {
	repositoryURL, validationError := docstringScreen.listState.AcceptRepositoryURL(repositoryInput)
	if validationError != nil {
		return nil, validationError
	}

	files, listError := screen.Execute(&docstringScreen.listState, ListFailureMessage, func() ([]string, error) {
		docstringScreen.selection.Clear()

		listedFiles, requestError := docstringScreen.backend.ListRepositoryFiles(executionContext, repositoryURL)
		if requestError != nil {
			docstringScreen.logger.Warn(logMessageListFailedConstant, zap.String(logFieldRepositoryConstant, repositoryURL), zap.Error(requestError))
			return nil, requestError
		}
		return listedFiles, nil
	})
	if listError != nil {
		return nil, listError
	}

	docstringScreen.selection.Replace(files)
	return docstringScreen.selection.Available(), nil
}

// Submit sends the selected files for docstring generation. An empty selection is rejected with
// EmptySelectionMessage and no request. A truthy backend status clears the files and marks the selection generated.
func (docstringScreen *Screen) Submit(executionContext context.Context) (backend.DocstringGenerationResult, error) {
	selectedFiles := docstringScreen.selection.Selected()
	if len(selectedFiles) == 0 {
		return backend.DocstringGenerationResult{}, docstringScreen.generationState.Reject(EmptySelectionMessage)
	}

	result, generationError := screen.Execute(&docstringScreen.generationState, GenerationFailureMessage, func() (backend.DocstringGenerationResult, error) {
		generationResult, requestError := docstringScreen.backend.GenerateDocstrings(executionContext, selectedFiles)
		if requestError != nil {
			docstringScreen.logger.Warn(logMessageGenerationFailedConstant, zap.Int(logFieldFileCountConstant, len(selectedFiles)), zap.Error(requestError))
			return backend.DocstringGenerationResult{}, requestError
		}
		return generationResult, nil
	})
	if generationError != nil {
		return backend.DocstringGenerationResult{}, generationError
	}

	docstringScreen.logger.Debug(logMessageGenerationFinishedConstant, zap.Int(logFieldFileCountConstant, len(selectedFiles)), zap.Bool(logFieldSucceededConstant, result.Succeeded))
	if result.Succeeded {
		docstringScreen.selection.markGenerated()
	}
	return result, nil
}

// ListSnapshot reports the file listing request state.
func (docstringScreen *Screen) ListSnapshot() screen.Snapshot {
	return docstringScreen.listState.Snapshot()
}

// GenerationSnapshot reports the docstring generation request state.
func (docstringScreen *Screen) GenerationSnapshot() screen.Snapshot {
	return docstringScreen.generationState.Snapshot()
}
