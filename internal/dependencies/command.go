package dependencies

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/output"
	"github.com/temirov/repoinsight/internal/utils/flags"
)

const (
	commandUseConstant              = "dependencies " + flags.RepositoryArgumentPlaceholder
	commandAliasConstant            = "deps"
	commandShortDescriptionConstant = "Show the dependencies of a repository"
	commandLongDescriptionConstant  = "dependencies asks the analysis backend to inspect a GitHub or GitLab repository and prints the dependency report it returns."
	fetcherResolverMissingConstant  = "dependency fetcher resolver not configured"
)

var errFetcherResolverMissing = errors.New(fetcherResolverMissingConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// FetcherResolver creates the backend collaborator used by the command.
type FetcherResolver func(logger *zap.Logger) (Fetcher, error)

// CommandBuilder assembles the dependencies command.
type CommandBuilder struct {
	LoggerProvider   LoggerProvider
	FetcherResolver  FetcherResolver
	RendererProvider output.RendererProvider
}

// Build constructs the dependencies command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Aliases: []string{commandAliasConstant},
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		RunE:    builder.run,
	}
	flags.BindRepositoryFlag(command)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	if builder.FetcherResolver == nil {
		return errFetcherResolverMissing
	}
	fetcher, resolveError := builder.FetcherResolver(logger)
	if resolveError != nil {
		return resolveError
	}

	dependencyScreen, screenError := NewScreen(logger, fetcher)
	if screenError != nil {
		return screenError
	}

	repositoryInput := flags.ResolveRepositoryInput(command, arguments)
	report, analyzeError := dependencyScreen.Analyze(command.Context(), repositoryInput)
	if analyzeError != nil {
		return analyzeError
	}

	document := NewReportDocument(repositoryInput, report)
	return output.ResolveRenderer(builder.RendererProvider, command.OutOrStdout()).Render(document, document.RenderText)
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
