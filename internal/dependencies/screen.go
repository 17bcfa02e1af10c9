package dependencies

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/screen"
)

// FetchFailureMessage is shown when the dependency request fails.
const FetchFailureMessage = "Failed to fetch dependencies. Please check the repository URL."

const (
	fetcherMissingMessageConstant        = "dependency fetcher not configured"
	logMessageFetchFailedConstant        = "dependency request failed"
	logMessageDependenciesLoadedConstant = "dependencies loaded"
	logFieldRepositoryConstant           = "repository"
	logFieldReportLengthConstant         = "report_length"
)

// ErrFetcherNotConfigured indicates the screen was constructed without a fetcher.
var ErrFetcherNotConfigured = errors.New(fetcherMissingMessageConstant)

// Fetcher retrieves the free-text dependency report for a repository.
type Fetcher interface {
	FetchDependencies(executionContext context.Context, repositoryURL string) (string, error)
}

// Screen holds the dependency form state and the latest report.
type Screen struct {
	logger      *zap.Logger
	fetcher     Fetcher
	state       screen.State
	reportMutex sync.Mutex
	report      string
}

// NewScreen constructs a dependency screen.
func NewScreen(logger *zap.Logger, fetcher Fetcher) (*Screen, error) {
	if fetcher == nil {
		return nil, ErrFetcherNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{logger: logger, fetcher: fetcher}, nil
}

// Analyze validates repositoryInput, clears the previous report, and loads the dependency report verbatim.
func (dependencyScreen *Screen) Analyze(executionContext context.Context, repositoryInput string) (string, error) {
	repositoryURL, validationError := dependencyScreen.state.AcceptRepositoryURL(repositoryInput)
	if validationError != nil {
		return "", validationError
	}

	report, analyzeError := screen.Execute(&dependencyScreen.state, FetchFailureMessage, func() (string, error) {
		dependencyScreen.setReport("")

		dependencyReport, fetchError := dependencyScreen.fetcher.FetchDependencies(executionContext, repositoryURL)
		if fetchError != nil {
			dependencyScreen.logger.Warn(logMessageFetchFailedConstant, zap.String(logFieldRepositoryConstant, repositoryURL), zap.Error(fetchError))
			return "", fetchError
		}
		return dependencyReport, nil
	})
	if analyzeError != nil {
		return "", analyzeError
	}

	dependencyScreen.logger.Debug(logMessageDependenciesLoadedConstant, zap.String(logFieldRepositoryConstant, repositoryURL), zap.Int(logFieldReportLengthConstant, len(report)))
	dependencyScreen.setReport(report)
	return report, nil
}

// Report returns the dependency report from the latest successful request.
func (dependencyScreen *Screen) Report() string {
	dependencyScreen.reportMutex.Lock()
	defer dependencyScreen.reportMutex.Unlock()
	return dependencyScreen.report
}

// Snapshot reports the loading flag and the current error message.
func (dependencyScreen *Screen) Snapshot() screen.Snapshot {
	return dependencyScreen.state.Snapshot()
}

func (dependencyScreen *Screen) setReport(report string) {
	dependencyScreen.reportMutex.Lock()
	defer dependencyScreen.reportMutex.Unlock()
	dependencyScreen.report = report
}
