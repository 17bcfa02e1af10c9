package commits

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/output"
	"github.com/temirov/repoinsight/internal/utils/flags"
)

const (
	commandUseConstant              = "commits " + flags.RepositoryArgumentPlaceholder
	commandShortDescriptionConstant = "Show the commit history of a repository"
	commandLongDescriptionConstant  = "commits retrieves the commit history of a GitHub or GitLab repository from the analysis backend and lists each commit by short SHA."
	fetcherResolverMissingConstant  = "commit history fetcher resolver not configured"
)

var errFetcherResolverMissing = errors.New(fetcherResolverMissingConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// HistoryFetcherResolver creates the backend collaborator used by the command.
type HistoryFetcherResolver func(logger *zap.Logger) (HistoryFetcher, error)

// CommandBuilder assembles the commits command.
type CommandBuilder struct {
	LoggerProvider   LoggerProvider
	FetcherResolver  HistoryFetcherResolver
	RendererProvider output.RendererProvider
}

// Build constructs the commits command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
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

	historyScreen, screenError := NewScreen(logger, fetcher)
	if screenError != nil {
		return screenError
	}

	repositoryInput := flags.ResolveRepositoryInput(command, arguments)
	records, searchError := historyScreen.Search(command.Context(), repositoryInput)
	if searchError != nil {
		return searchError
	}

	document := NewHistoryDocument(repositoryInput, records)
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
