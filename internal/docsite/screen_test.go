package docsite_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/repoinsight/internal/backend"
	"github.com/temirov/repoinsight/internal/docsite"
	"github.com/temirov/repoinsight/internal/screen"
)

const (
	testRepositoryURLConstant  = "https://github.com/octo/project"
	testOtherHostURLConstant   = "https://example.com/octo/project"
	testDocsSiteURLConstant    = "http://backend.test/repoanalyze/docs/"
	testDocsURLConstant        = "http://backend.test/repoanalyze/docs/index.html"
	testArchivePathConstant    = "/tmp/repoanalyze/documentation.zip"
	testArchiveContentConstant = "PK\x03\x04archive"
	testBackendFailureConstant = "backend returned unexpected status 500"
)

type stubDocumentationBackend struct {
	result            backend.DocumentationResult
	generationFailure error
	downloadFailure   error
	removalFailure    error
	repositories      []string
	downloadedPaths   []string
	removedPaths      []string
}

func newStubBackend() *stubDocumentationBackend {
	return &stubDocumentationBackend{
		result: backend.DocumentationResult{
			DocsURL:         testDocsURLConstant,
			FilesDocumented: 4,
			ArchivePath:     testArchivePathConstant,
			Message:         "Documentation generated",
		},
	}
}

func (stub *stubDocumentationBackend) GenerateDocumentation(_ context.Context, repositoryURL string) (backend.DocumentationResult, error) {
	stub.repositories = append(stub.repositories, repositoryURL)
	if stub.generationFailure != nil {
		return backend.DocumentationResult{}, stub.generationFailure
	}
	return stub.result, nil
}

func (stub *stubDocumentationBackend) DownloadDocumentation(_ context.Context, archivePath string, destination io.Writer) (int64, error) {
	stub.downloadedPaths = append(stub.downloadedPaths, archivePath)
	if stub.downloadFailure != nil {
		return 0, stub.downloadFailure
	}
	written, writeError := io.WriteString(destination, testArchiveContentConstant)
	return int64(written), writeError
}

func (stub *stubDocumentationBackend) RemoveDocumentationArchive(_ context.Context, archivePath string) error {
	stub.removedPaths = append(stub.removedPaths, archivePath)
	return stub.removalFailure
}

func (stub *stubDocumentationBackend) DocumentationSiteURL() string {
	return testDocsSiteURLConstant
}

func newTestScreen(testInstance *testing.T, stub *stubDocumentationBackend, logger *zap.Logger) *docsite.Screen {
	documentationScreen, creationError := docsite.NewScreen(logger, stub)
	require.NoError(testInstance, creationError)
	return documentationScreen
}

func TestNewScreenRequiresBackend(testInstance *testing.T) {
	documentationScreen, creationError := docsite.NewScreen(zap.NewNop(), nil)
	require.ErrorIs(testInstance, creationError, docsite.ErrBackendNotConfigured)
	require.Nil(testInstance, documentationScreen)
}

func TestScreenGenerateAppliesDefaults(testInstance *testing.T) {
	testCases := []struct {
		name           string
		backendResult  backend.DocumentationResult
		expectedResult backend.DocumentationResult
	}{
		{
			name:           "complete_response",
			backendResult:  backend.DocumentationResult{DocsURL: testDocsURLConstant, FilesDocumented: 4, ArchivePath: testArchivePathConstant},
			expectedResult: backend.DocumentationResult{DocsURL: testDocsURLConstant, FilesDocumented: 4, ArchivePath: testArchivePathConstant},
		},
		{
			name:           "missing_fields",
			backendResult:  backend.DocumentationResult{},
			expectedResult: backend.DocumentationResult{DocsURL: testDocsSiteURLConstant},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			stub := newStubBackend()
			stub.result = testCase.backendResult
			documentationScreen := newTestScreen(testInstance, stub, nil)

			result, generationError := documentationScreen.Generate(context.Background(), testRepositoryURLConstant)
			require.NoError(testInstance, generationError)
			require.Equal(testInstance, testCase.expectedResult, result)

			storedResult, docsReady := documentationScreen.Result()
			require.True(testInstance, docsReady)
			require.Equal(testInstance, testCase.expectedResult, storedResult)
			require.Equal(testInstance, screen.Snapshot{}, documentationScreen.GenerationSnapshot())
		})
	}
}

func TestScreenGenerateFailures(testInstance *testing.T) {
	testCases := []struct {
		name              string
		input             string
		generationFailure error
		expectedMessage   string
		expectedCalls     int
		expectReady       bool
	}{
		{name: "empty_input", input: "", expectedMessage: screen.MissingRepositoryMessage, expectReady: true},
		{name: "other_host_rejected_by_backend", input: testOtherHostURLConstant, generationFailure: errors.New(testBackendFailureConstant), expectedMessage: docsite.GenerationFailureMessage, expectedCalls: 1},
		{name: "backend_failure", input: testRepositoryURLConstant, generationFailure: errors.New(testBackendFailureConstant), expectedMessage: docsite.GenerationFailureMessage, expectedCalls: 1},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			stub := newStubBackend()
			documentationScreen := newTestScreen(testInstance, stub, nil)
			_, seedError := documentationScreen.Generate(context.Background(), testRepositoryURLConstant)
			require.NoError(testInstance, seedError)
			stub.repositories = nil
			stub.generationFailure = testCase.generationFailure

			_, generationError := documentationScreen.Generate(context.Background(), testCase.input)
			require.Error(testInstance, generationError)
			require.Equal(testInstance, testCase.expectedMessage, generationError.Error())
			require.Equal(testInstance, testCase.expectedMessage, documentationScreen.GenerationSnapshot().ErrorMessage)
			require.Len(testInstance, stub.repositories, testCase.expectedCalls)

			_, docsReady := documentationScreen.Result()
			require.Equal(testInstance, testCase.expectReady, docsReady)
		})
	}
}

func TestScreenDownloadRequiresReadyDocumentation(testInstance *testing.T) {
	testCases := []struct {
		name     string
		generate bool
		archive  string
	}{
		{name: "not_generated"},
		{name: "no_archive_path", generate: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			stub := newStubBackend()
			stub.result.ArchivePath = testCase.archive
			documentationScreen := newTestScreen(testInstance, stub, nil)
			if testCase.generate {
				_, generationError := documentationScreen.Generate(context.Background(), testRepositoryURLConstant)
				require.NoError(testInstance, generationError)
			}

			var destination bytes.Buffer
			_, downloadError := documentationScreen.Download(context.Background(), &destination)
			require.Error(testInstance, downloadError)
			require.True(testInstance, screen.IsValidationError(downloadError))
			require.Equal(testInstance, docsite.ArchiveUnavailableMessage, downloadError.Error())
			require.Empty(testInstance, stub.downloadedPaths)
		})
	}
}

func TestScreenDownload(testInstance *testing.T) {
	stub := newStubBackend()
	documentationScreen := newTestScreen(testInstance, stub, nil)
	_, generationError := documentationScreen.Generate(context.Background(), testRepositoryURLConstant)
	require.NoError(testInstance, generationError)

	var destination bytes.Buffer
	bytesWritten, downloadError := documentationScreen.Download(context.Background(), &destination)
	require.NoError(testInstance, downloadError)
	require.Equal(testInstance, int64(len(testArchiveContentConstant)), bytesWritten)
	require.Equal(testInstance, testArchiveContentConstant, destination.String())
	require.Equal(testInstance, []string{testArchivePathConstant}, stub.downloadedPaths)

	stub.downloadFailure = errors.New(testBackendFailureConstant)
	_, downloadError = documentationScreen.Download(context.Background(), &destination)
	require.EqualError(testInstance, downloadError, docsite.DownloadFailureMessage)
	require.Equal(testInstance, docsite.DownloadFailureMessage, documentationScreen.DownloadSnapshot().ErrorMessage)
}

func TestScreenCleanup(testInstance *testing.T) {
	core, observedLogs := observer.New(zapcore.WarnLevel)
	stub := newStubBackend()
	documentationScreen := newTestScreen(testInstance, stub, zap.New(core))

	require.NoError(testInstance, documentationScreen.Cleanup(context.Background()))
	require.Empty(testInstance, stub.removedPaths)

	_, generationError := documentationScreen.Generate(context.Background(), testRepositoryURLConstant)
	require.NoError(testInstance, generationError)
	require.NoError(testInstance, documentationScreen.Cleanup(context.Background()))
	require.Equal(testInstance, []string{testArchivePathConstant}, stub.removedPaths)

	stub.removalFailure = errors.New(testBackendFailureConstant)
	require.Error(testInstance, documentationScreen.Cleanup(context.Background()))
	require.Equal(testInstance, 1, observedLogs.FilterMessage("documentation archive removal failed").Len())
	require.Equal(testInstance, screen.Snapshot{}, documentationScreen.GenerationSnapshot())
}
