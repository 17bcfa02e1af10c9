package docsite

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/backend"
	"github.com/temirov/repoinsight/internal/screen"
)

// Messages shown by the documentation screen.
const (
	GenerationFailureMessage  = "Failed to generate docsite. Please check the repository URL."
	DownloadFailureMessage    = "Failed to download docsite."
	ArchiveUnavailableMessage = "Generate documentation before downloading it."
)

const (
	backendMissingMessageConstant          = "documentation backend not configured"
	logMessageGenerationFailedConstant     = "documentation generation failed"
	logMessageDocumentationReadyConstant   = "documentation ready"
	logMessageDownloadFailedConstant       = "documentation download failed"
	logMessageArchiveRemovedConstant       = "documentation archive removed"
	logMessageArchiveRemovalFailedConstant = "documentation archive removal failed"
	logFieldRepositoryConstant             = "repository"
	logFieldDocsURLConstant                = "docs_url"
	logFieldFilesDocumentedConstant        = "files_documented"
	logFieldArchivePathConstant            = "archive_path"
)

// ErrBackendNotConfigured indicates the screen was constructed without a backend collaborator.
var ErrBackendNotConfigured = errors.New(backendMissingMessageConstant)

// Backend generates documentation sites and manages their downloadable archives.
type Backend interface {
	GenerateDocumentation(executionContext context.Context, repositoryURL string) (backend.DocumentationResult, error)
	DownloadDocumentation(executionContext context.Context, archivePath string, destination io.Writer) (int64, error)
	RemoveDocumentationArchive(executionContext context.Context, archivePath string) error
	DocumentationSiteURL() string
}

// Screen holds the documentation form state: generation and download lifecycles and the ready result.
type Screen struct {
	logger          *zap.Logger
	backend         Backend
	generationState screen.State
	downloadState   screen.State
	resultMutex     sync.Mutex
	result          backend.DocumentationResult
	docsReady       bool
}

// NewScreen constructs a documentation screen.
func NewScreen(logger *zap.Logger, documentationBackend Backend) (*Screen, error) {
	if documentationBackend == nil {
		return nil, ErrBackendNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{logger: logger, backend: documentationBackend}, nil
}

// Generate validates repositoryInput and requests a documentation build. The ready flag is cleared
// before the request and set on success. A missing docs URL falls back to the backend docs site.
func (documentationScreen *Screen) Generate(executionContext context.Context, repositoryInput string) (backend.DocumentationResult, error) {
	repositoryURL, validationError := documentationScreen.generationState.AcceptRepositoryURL(repositoryInput)
	if validationError != nil {
		return backend.DocumentationResult{}, validationError
	}

	result, generationError := screen.Execute(&documentationScreen.generationState, GenerationFailureMessage, func() (backend.DocumentationResult, error) {
		documentationScreen.setResult(backend.DocumentationResult{}, false)

		documentationResult, requestError := documentationScreen.backend.GenerateDocumentation(executionContext, repositoryURL)
		if requestError != nil {
			documentationScreen.logger.Warn(logMessageGenerationFailedConstant, zap.String(logFieldRepositoryConstant, repositoryURL), zap.Error(requestError))
			return backend.DocumentationResult{}, requestError
		}
		return documentationResult, nil
	})
	if generationError != nil {
		return backend.DocumentationResult{}, generationError
	}

	if len(result.DocsURL) == 0 {
		result.DocsURL = documentationScreen.backend.DocumentationSiteURL()
	}
	if result.FilesDocumented < 0 {
		result.FilesDocumented = 0
	}
	documentationScreen.logger.Info(logMessageDocumentationReadyConstant, zap.String(logFieldDocsURLConstant, result.DocsURL), zap.Int(logFieldFilesDocumentedConstant, result.FilesDocumented))
	documentationScreen.setResult(result, true)
	return result, nil
}

// Download streams the generated archive into destination. It is rejected with ArchiveUnavailableMessage
// until a generation succeeded with an archive path.
func (documentationScreen *Screen) Download(executionContext context.Context, destination io.Writer) (int64, error) {
	result, docsReady := documentationScreen.Result()
	if !docsReady || len(result.ArchivePath) == 0 {
		return 0, documentationScreen.downloadState.Reject(ArchiveUnavailableMessage)
	}

	return screen.Execute(&documentationScreen.downloadState, DownloadFailureMessage, func() (int64, error) {
		bytesWritten, downloadError := documentationScreen.backend.DownloadDocumentation(executionContext, result.ArchivePath, destination)
		if downloadError != nil {
			documentationScreen.logger.Warn(logMessageDownloadFailedConstant, zap.String(logFieldArchivePathConstant, result.ArchivePath), zap.Error(downloadError))
			return bytesWritten, downloadError
		}
		return bytesWritten, nil
	})
}

// Cleanup asks the backend to delete the generated archive. Failures are logged and returned
// but leave the screen state untouched.
func (documentationScreen *Screen) Cleanup(executionContext context.Context) error {
	result, docsReady := documentationScreen.Result()
	if !docsReady || len(result.ArchivePath) == 0 {
		return nil
	}

	if removalError := documentationScreen.backend.RemoveDocumentationArchive(executionContext, result.ArchivePath); removalError != nil {
		documentationScreen.logger.Warn(logMessageArchiveRemovalFailedConstant, zap.String(logFieldArchivePathConstant, result.ArchivePath), zap.Error(removalError))
		return removalError
	}
	documentationScreen.logger.Debug(logMessageArchiveRemovedConstant, zap.String(logFieldArchivePathConstant, result.ArchivePath))
	return nil
}

// Result returns the latest documentation result and whether the documentation is ready.
func (documentationScreen *Screen) Result() (backend.DocumentationResult, bool) {
	documentationScreen.resultMutex.Lock()
	defer documentationScreen.resultMutex.Unlock()
	return documentationScreen.result, documentationScreen.docsReady
}

// GenerationSnapshot reports the generation request state.
func (documentationScreen *Screen) GenerationSnapshot() screen.Snapshot {
	return documentationScreen.generationState.Snapshot()
}

// DownloadSnapshot reports the download request state.
func (documentationScreen *Screen) DownloadSnapshot() screen.Snapshot {
	return documentationScreen.downloadState.Snapshot()
}

func (documentationScreen *Screen) setResult(result backend.DocumentationResult, docsReady bool) {
	documentationScreen.resultMutex.Lock()
	defer documentationScreen.resultMutex.Unlock()
	documentationScreen.result = result
	documentationScreen.docsReady = docsReady
}
