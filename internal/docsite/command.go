package docsite

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/output"
	"github.com/temirov/repoinsight/internal/utils/flags"
	pathutils "github.com/temirov/repoinsight/internal/utils/path"
)

const (
	commandUseConstant                  = "docs " + flags.RepositoryArgumentPlaceholder
	commandShortDescriptionConstant     = "Generate documentation for a repository"
	commandLongDescriptionConstant      = "docs asks the analysis backend to build Sphinx documentation for a GitHub or GitLab repository, optionally downloads the generated archive, and can remove the archive from the backend afterwards."
	downloadFlagNameConstant            = "download"
	downloadFlagDescriptionConstant     = "Save the generated documentation archive to this file or directory"
	cleanupFlagNameConstant             = "cleanup"
	cleanupFlagDescriptionConstant      = "Remove the generated archive from the backend when done"
	backendResolverMissingConstant      = "documentation backend resolver not configured"
	logMessageArchiveDownloadedConstant = "documentation archive downloaded"
	logFieldPathConstant                = "path"
	logFieldBytesConstant               = "bytes"
)

var errBackendResolverMissing = errors.New(backendResolverMissingConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current docs configuration.
type ConfigurationProvider func() Configuration

// BackendResolver creates the backend collaborator used by the command.
type BackendResolver func(logger *zap.Logger) (Backend, error)

// CommandBuilder assembles the docs command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	BackendResolver       BackendResolver
	RendererProvider      output.RendererProvider
	HomeExpander          *pathutils.HomeExpander
}

type commandOptions struct {
	downloadPath string
	cleanup      bool
}

// Build constructs the docs command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	flags.BindRepositoryFlag(command)

	command.Flags().String(downloadFlagNameConstant, "", downloadFlagDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), nil, cleanupFlagNameConstant, "", false, cleanupFlagDescriptionConstant)

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
	documentationBackend, resolveError := builder.BackendResolver(logger)
	if resolveError != nil {
		return resolveError
	}

	documentationScreen, screenError := NewScreen(logger, documentationBackend)
	if screenError != nil {
		return screenError
	}

	repositoryInput := flags.ResolveRepositoryInput(command, arguments)
	result, generationError := documentationScreen.Generate(command.Context(), repositoryInput)
	if generationError != nil {
		return generationError
	}
	document := NewResultDocument(repositoryInput, result)

	if len(options.downloadPath) > 0 {
		archiveFile, createError := CreateArchiveFile(builder.HomeExpander, options.downloadPath)
		if createError != nil {
			return createError
		}
		bytesWritten, downloadError := documentationScreen.Download(command.Context(), archiveFile)
		if downloadError != nil {
			archiveFile.Discard()
			return downloadError
		}
		if closeError := archiveFile.Close(); closeError != nil {
			return closeError
		}
		logger.Debug(logMessageArchiveDownloadedConstant, zap.String(logFieldPathConstant, archiveFile.Path), zap.Int64(logFieldBytesConstant, bytesWritten))
		document.DownloadedTo = archiveFile.Path
		document.DownloadedBytes = bytesWritten
	}

	if options.cleanup && len(result.ArchivePath) > 0 {
		document.ArchiveRemoved = documentationScreen.Cleanup(command.Context()) == nil
	}

	return output.ResolveRenderer(builder.RendererProvider, command.OutOrStdout()).Render(document, document.RenderText)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (commandOptions, error) {
	configuration := builder.resolveConfiguration()
	options := commandOptions{downloadPath: configuration.DownloadPath, cleanup: configuration.Cleanup}

	if command.Flags().Changed(downloadFlagNameConstant) {
		downloadPath, downloadPathError := command.Flags().GetString(downloadFlagNameConstant)
		if downloadPathError != nil {
			return commandOptions{}, downloadPathError
		}
		options.downloadPath = strings.TrimSpace(downloadPath)
	}
	if command.Flags().Changed(cleanupFlagNameConstant) {
		cleanup, cleanupError := command.Flags().GetBool(cleanupFlagNameConstant)
		if cleanupError != nil {
			return commandOptions{}, cleanupError
		}
		options.cleanup = cleanup
	}
	return options, nil
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
