package docstrings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/gitrepo"
	"github.com/temirov/repoinsight/internal/output"
	"github.com/temirov/repoinsight/internal/ui"
	"github.com/temirov/repoinsight/internal/utils/flags"
	pathutils "github.com/temirov/repoinsight/internal/utils/path"
)

const (
	commandUseConstant                     = "docstrings " + flags.RepositoryArgumentPlaceholder
	commandShortDescriptionConstant        = "Generate docstrings for selected repository files"
	commandLongDescriptionConstant         = "docstrings lists the files of a GitHub or GitLab repository and asks the analysis backend to generate docstrings for the selected files. Without a selection flag the file listing is printed."
	fileFlagNameConstant                   = "file"
	fileFlagDescriptionConstant            = "Toggle a listed file by URL or repository-relative path (repeatable)"
	allFlagNameConstant                    = "all"
	allFlagDescriptionConstant             = "Toggle selection of every listed file"
	interactiveFlagNameConstant            = "interactive"
	interactiveFlagDescriptionConstant     = "Choose files with an interactive picker"
	listOnlyFlagNameConstant               = "list-only"
	listOnlyFlagDescriptionConstant        = "Print the repository files without generating docstrings"
	outputDirectoryFlagNameConstant        = "output-directory"
	outputDirectoryFlagDescriptionConstant = "Write generated file contents under this directory"
	backendResolverMissingConstant         = "docstring backend resolver not configured"
	unknownFileTemplateConstant            = "file %q is not part of the repository listing"
	logMessagePickerCancelledConstant      = "file selection cancelled"
	logMessageFilesWrittenConstant         = "generated files written"
	logFieldOutputDirectoryConstant        = "output_directory"
	repositoryPathSeparatorConstant        = "/"
)

var errBackendResolverMissing = errors.New(backendResolverMissingConstant)

// UnknownFileError reports a --file value that matches none of the listed files.
type UnknownFileError struct {
	Path string
}

// Error describes the unmatched file.
func (unknownFileError UnknownFileError) Error() string {
	return fmt.Sprintf(unknownFileTemplateConstant, unknownFileError.Path)
}

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current docstrings configuration.
type ConfigurationProvider func() Configuration

// BackendResolver creates the backend collaborator used by the command.
type BackendResolver func(logger *zap.Logger) (Backend, error)

// PickerRunner drives the interactive file picker until the user submits or cancels.
type PickerRunner func(executionContext context.Context, model ui.FilePickerModel, input io.Reader, output io.Writer) (ui.FilePickerModel, error)

// CommandBuilder assembles the docstrings command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	BackendResolver       BackendResolver
	RendererProvider      output.RendererProvider
	PickerRunner          PickerRunner
	HomeExpander          *pathutils.HomeExpander
}

type commandOptions struct {
	files           []string
	toggleAll       bool
	interactive     bool
	listOnly        bool
	outputDirectory string
}

// Build constructs the docstrings command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	flags.BindRepositoryFlag(command)

	command.Flags().StringArray(fileFlagNameConstant, nil, fileFlagDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), nil, allFlagNameConstant, "", false, allFlagDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), nil, interactiveFlagNameConstant, "", false, interactiveFlagDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), nil, listOnlyFlagNameConstant, "", false, listOnlyFlagDescriptionConstant)
	command.Flags().String(outputDirectoryFlagNameConstant, "", outputDirectoryFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	if builder.BackendResolver == nil {
		return errBackendResolverMissing
	}
	docstringBackend, resolveError := builder.BackendResolver(logger)
	if resolveError != nil {
		return resolveError
	}

	docstringScreen, screenError := NewScreen(logger, docstringBackend)
	if screenError != nil {
		return screenError
	}

	repositoryInput := flags.ResolveRepositoryInput(command, arguments)
	files, fetchError := docstringScreen.FetchFiles(command.Context(), repositoryInput)
	if fetchError != nil {
		return fetchError
	}

	renderer := output.ResolveRenderer(builder.RendererProvider, command.OutOrStdout())
	if options.listOnly || !options.selects() {
		listDocument := NewFileListDocument(repositoryInput, files)
		return renderer.Render(listDocument, listDocument.RenderText)
	}

	selection := docstringScreen.Selection()
	if selectionError := applyFileToggles(selection, options.files); selectionError != nil {
		return selectionError
	}
	if options.toggleAll {
		selection.ToggleAll()
	}

	if options.interactive {
		pickerModel := ui.NewFilePickerModel(selection, renderer.Palette(), gitrepo.RelativeFilePath)
		finalModel, pickerError := builder.resolvePickerRunner()(command.Context(), pickerModel, command.InOrStdin(), command.ErrOrStderr())
		if pickerError != nil {
			return pickerError
		}
		if !finalModel.Submitted() {
			logger.Info(logMessagePickerCancelledConstant)
			return nil
		}
	}

	submittedFiles := selection.Selected()
	result, submitError := docstringScreen.Submit(command.Context())
	if submitError != nil {
		return submitError
	}

	var writtenFiles []string
	if len(options.outputDirectory) > 0 {
		writtenPaths, writeError := NewGeneratedFileWriter(builder.HomeExpander).Write(options.outputDirectory, result.Results)
		if writeError != nil {
			return writeError
		}
		logger.Debug(logMessageFilesWrittenConstant, zap.String(logFieldOutputDirectoryConstant, options.outputDirectory), zap.Int(logFieldFileCountConstant, len(writtenPaths)))
		writtenFiles = writtenPaths
	}

	generationDocument := NewGenerationDocument(repositoryInput, submittedFiles, result, writtenFiles)
	return renderer.Render(generationDocument, generationDocument.RenderText)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (commandOptions, error) {
	configuration := builder.resolveConfiguration()

	files, filesError := command.Flags().GetStringArray(fileFlagNameConstant)
	if filesError != nil {
		return commandOptions{}, filesError
	}
	toggleAll, toggleAllError := command.Flags().GetBool(allFlagNameConstant)
	if toggleAllError != nil {
		return commandOptions{}, toggleAllError
	}
	interactive, interactiveError := command.Flags().GetBool(interactiveFlagNameConstant)
	if interactiveError != nil {
		return commandOptions{}, interactiveError
	}
	listOnly, listOnlyError := command.Flags().GetBool(listOnlyFlagNameConstant)
	if listOnlyError != nil {
		return commandOptions{}, listOnlyError
	}

	outputDirectory := configuration.OutputDirectory
	if command.Flags().Changed(outputDirectoryFlagNameConstant) {
		flagOutputDirectory, outputDirectoryError := command.Flags().GetString(outputDirectoryFlagNameConstant)
		if outputDirectoryError != nil {
			return commandOptions{}, outputDirectoryError
		}
		outputDirectory = strings.TrimSpace(flagOutputDirectory)
	}

	return commandOptions{
		files:           files,
		toggleAll:       toggleAll,
		interactive:     interactive,
		listOnly:        listOnly,
		outputDirectory: outputDirectory,
	}, nil
}

func (options commandOptions) selects() bool {
	return len(options.files) > 0 || options.toggleAll || options.interactive
}

// applyFileToggles toggles each requested file, matching listed files by URL or repository-relative path.
func applyFileToggles(selection *FileSelection, requestedFiles []string) error {
	for _, requestedFile := range requestedFiles {
		matchedFile, matched := matchListedFile(selection.Available(), requestedFile)
		if !matched {
			return UnknownFileError{Path: requestedFile}
		}
		selection.Toggle(matchedFile)
	}
	return nil
}

func matchListedFile(availableFiles []string, requestedFile string) (string, bool) {
	trimmedRequest := strings.TrimSpace(requestedFile)
	for _, availableFile := range availableFiles {
		if availableFile == trimmedRequest || gitrepo.RelativeFilePath(availableFile) == strings.TrimPrefix(trimmedRequest, repositoryPathSeparatorConstant) {
			return availableFile, true
		}
	}
	return "", false
}

func (builder *CommandBuilder) resolvePickerRunner() PickerRunner {
	if builder.PickerRunner == nil {
		return ui.RunFilePicker
	}
	return builder.PickerRunner
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
