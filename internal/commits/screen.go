package commits

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/screen"
)

// FetchFailureMessage is shown when the commit history request fails.
const FetchFailureMessage = "Failed to retrieve commit history. Please check the repository URL."

const (
	historyFetcherMissingMessageConstant = "commit history fetcher not configured"
	logMessageHistoryFetchFailedConstant = "commit history request failed"
	logMessageHistoryParsedConstant      = "commit history parsed"
	logFieldRepositoryConstant           = "repository"
	logFieldCommitCountConstant          = "commit_count"
)

// ErrHistoryFetcherNotConfigured indicates the screen was constructed without a fetcher.
var ErrHistoryFetcherNotConfigured = errors.New(historyFetcherMissingMessageConstant)

// HistoryFetcher retrieves the raw commit history blob for a repository.
type HistoryFetcher interface {
	FetchCommitHistory(executionContext context.Context, repositoryURL string) (string, error)
}

// Screen holds the commit history form state and the records from the latest search.
type Screen struct {
	logger       *zap.Logger
	fetcher      HistoryFetcher
	state        screen.State
	recordsMutex sync.Mutex
	records      []CommitRecord
}

// NewScreen constructs a commit history screen.
func NewScreen(logger *zap.Logger, fetcher HistoryFetcher) (*Screen, error) {
	if fetcher == nil {
		return nil, ErrHistoryFetcherNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{logger: logger, fetcher: fetcher}, nil
}

// Search validates repositoryInput, discards the previous records, and loads the commit history.
// Validation failures return screen.ValidationError without contacting the backend;
// request failures return screen.UserFacingError carrying FetchFailureMessage.
func (historyScreen *Screen) Search(executionContext context.Context, repositoryInput string) ([]CommitRecord, error) {
	repositoryURL, validationError := historyScreen.state.AcceptRepositoryURL(repositoryInput)
	if validationError != nil {
		return nil, validationError
	}

	records, searchError := screen.Execute(&historyScreen.state, FetchFailureMessage, func() ([]CommitRecord, error) {
		historyScreen.replaceRecords(nil)

		rawCommitLog, fetchError := historyScreen.fetcher.FetchCommitHistory(executionContext, repositoryURL)
		if fetchError != nil {
			historyScreen.logger.Warn(logMessageHistoryFetchFailedConstant, zap.String(logFieldRepositoryConstant, repositoryURL), zap.Error(fetchError))
			return nil, fetchError
		}
		return ParseCommitLog(rawCommitLog), nil
	})
	if searchError != nil {
		return nil, searchError
	}

	historyScreen.logger.Debug(logMessageHistoryParsedConstant, zap.String(logFieldRepositoryConstant, repositoryURL), zap.Int(logFieldCommitCountConstant, len(records)))
	historyScreen.replaceRecords(records)
	return records, nil
}

// Records returns the commits from the latest successful search.
func (historyScreen *Screen) Records() []CommitRecord {
	historyScreen.recordsMutex.Lock()
	defer historyScreen.recordsMutex.Unlock()
	return append([]CommitRecord{}, historyScreen.records...)
}

// Snapshot reports the loading flag and the current error message.
func (historyScreen *Screen) Snapshot() screen.Snapshot {
	return historyScreen.state.Snapshot()
}

// Invalidate drops any in-flight search so its response is discarded.
func (historyScreen *Screen) Invalidate() {
	historyScreen.state.Invalidate()
}

func (historyScreen *Screen) replaceRecords(records []CommitRecord) {
	historyScreen.recordsMutex.Lock()
	defer historyScreen.recordsMutex.Unlock()
	historyScreen.records = records
}
