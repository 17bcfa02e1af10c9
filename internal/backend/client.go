package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultEndpointPrefixConstant              = "repoanalyze"
	commitHistoryEndpointConstant              = "get_commit_history/"
	dependenciesEndpointConstant               = "get_dependencies/"
	repositoryFilesEndpointConstant            = "get_files_from_repository/"
	docstringsEndpointConstant                 = "generate_doc_strings/"
	documentationEndpointConstant              = "genDocument_from_docstr/"
	downloadDocumentationEndpointConstant      = "download_documentation/"
	removeArchiveEndpointConstant              = "remove_zip/"
	documentationSiteEndpointConstant          = "docs/"
	contentTypeHeaderConstant                  = "Content-Type"
	acceptHeaderConstant                       = "Accept"
	requestIdentifierHeaderConstant            = "X-Request-ID"
	sessionIdentifierHeaderConstant            = "X-Session-ID"
	jsonMediaTypeConstant                      = "application/json"
	inputFieldNameConstant                     = "input"
	requiredValueMessageConstant               = "value required"
	blankEntryMessageTemplateConstant          = "entry %d is blank"
	errorBodyPreviewLimitConstant              = 512
	logMessageRequestSentConstant              = "backend request sent"
	logMessageUnexpectedStatusConstant         = "backend returned unexpected status"
	logFieldOperationConstant                  = "operation"
	logFieldURLConstant                        = "url"
	logFieldRequestIdentifierConstant          = "request_id"
	logFieldStatusCodeConstant                 = "status_code"
	logFieldResponseBodyConstant               = "response_body"
	commitHistoryOperationNameConstant         = OperationName("FetchCommitHistory")
	dependenciesOperationNameConstant          = OperationName("FetchDependencies")
	repositoryFilesOperationNameConstant       = OperationName("ListRepositoryFiles")
	docstringsOperationNameConstant            = OperationName("GenerateDocstrings")
	documentationOperationNameConstant         = OperationName("GenerateDocumentation")
	downloadDocumentationOperationNameConstant = OperationName("DownloadDocumentation")
	removeArchiveOperationNameConstant         = OperationName("RemoveDocumentationArchive")
)

// HTTPClient is the subset of *http.Client used by the backend client.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// SessionIdentifierProvider resolves an optional session identifier from a request context.
type SessionIdentifierProvider func(executionContext context.Context) (string, bool)

// ServiceConfiguration describes how to address the analysis backend.
type ServiceConfiguration struct {
	BaseURL                   string
	EndpointPrefix            string
	SessionIdentifierProvider SessionIdentifierProvider
}

// DocstringFileResult reports the outcome for one file submitted for docstring generation.
type DocstringFileResult struct {
	File    string `json:"file" yaml:"file" toml:"file"`
	Content string `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// DocstringGenerationResult is the decoded generate_doc_strings response.
// Succeeded mirrors the truthiness of the response output field.
type DocstringGenerationResult struct {
	Succeeded bool
	Status    string
	Results   []DocstringFileResult
}

// DocumentationResult is the decoded genDocument_from_docstr response.
type DocumentationResult struct {
	DocsURL         string
	FilesDocumented int
	ArchivePath     string
	Message         string
}

// Client issues JSON-over-HTTP requests against the repository-analysis backend.
type Client struct {
	logger                    *zap.Logger
	httpClient                HTTPClient
	baseURL                   *url.URL
	endpointPrefix            string
	observer                  RequestEventObserver
	sessionIdentifierProvider SessionIdentifierProvider
}

// NewClient constructs a backend client. A nil observer disables lifecycle notifications.
func NewClient(logger *zap.Logger, httpClient HTTPClient, configuration ServiceConfiguration, observer RequestEventObserver) (*Client, error) {
	if httpClient == nil {
		return nil, ErrHTTPClientNotConfigured
	}

	trimmedBaseURL := strings.TrimSpace(configuration.BaseURL)
	if len(trimmedBaseURL) == 0 {
		return nil, ErrBaseURLNotConfigured
	}

	parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
	if parseError != nil {
		return nil, InvalidBaseURLError{BaseURL: trimmedBaseURL, Cause: parseError}
	}
	if len(parsedBaseURL.Scheme) == 0 || len(parsedBaseURL.Host) == 0 {
		return nil, InvalidBaseURLError{BaseURL: trimmedBaseURL, Cause: ErrBaseURLNotConfigured}
	}

	endpointPrefix := strings.Trim(strings.TrimSpace(configuration.EndpointPrefix), "/")
	if len(endpointPrefix) == 0 {
		endpointPrefix = defaultEndpointPrefixConstant
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = noopRequestEventObserver{}
	}

	return &Client{
		logger:                    logger,
		httpClient:                httpClient,
		baseURL:                   parsedBaseURL,
		endpointPrefix:            endpointPrefix,
		observer:                  observer,
		sessionIdentifierProvider: configuration.SessionIdentifierProvider,
	}, nil
}

// DocumentationSiteURL returns the backend location serving generated documentation.
func (client *Client) DocumentationSiteURL() string {
	return client.endpointURL(documentationSiteEndpointConstant)
}

// FetchCommitHistory retrieves the delimited commit blob for a repository.
func (client *Client) FetchCommitHistory(executionContext context.Context, repositoryURL string) (string, error) {
	return client.fetchTextOutput(executionContext, commitHistoryOperationNameConstant, commitHistoryEndpointConstant, repositoryURL)
}

// FetchDependencies retrieves the free-text dependency listing for a repository.
func (client *Client) FetchDependencies(executionContext context.Context, repositoryURL string) (string, error) {
	return client.fetchTextOutput(executionContext, dependenciesOperationNameConstant, dependenciesEndpointConstant, repositoryURL)
}

// ListRepositoryFiles retrieves the ordered file URLs eligible for docstring generation.
func (client *Client) ListRepositoryFiles(executionContext context.Context, repositoryURL string) ([]string, error) {
	repositoryIdentifier := strings.TrimSpace(repositoryURL)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: inputFieldNameConstant, Message: requiredValueMessageConstant}
	}

	var response struct {
		Output []string `json:"output"`
	}
	if requestError := client.postJSON(executionContext, repositoryFilesOperationNameConstant, repositoryFilesEndpointConstant, repositoryIdentifier, &response); requestError != nil {
		return nil, requestError
	}

	files := make([]string, 0, len(response.Output))
	files = append(files, response.Output...)
	return files, nil
}

// GenerateDocstrings submits the selected file URLs for docstring generation.
func (client *Client) GenerateDocstrings(executionContext context.Context, files []string) (DocstringGenerationResult, error) {
	if len(files) == 0 {
		return DocstringGenerationResult{}, InvalidInputError{FieldName: inputFieldNameConstant, Message: requiredValueMessageConstant}
	}
	for fileIndex, file := range files {
		if len(strings.TrimSpace(file)) == 0 {
			return DocstringGenerationResult{}, InvalidInputError{FieldName: inputFieldNameConstant, Message: fmt.Sprintf(blankEntryMessageTemplateConstant, fileIndex)}
		}
	}

	var response struct {
		Output  any                   `json:"output"`
		Results []DocstringFileResult `json:"results"`
	}
	if requestError := client.postJSON(executionContext, docstringsOperationNameConstant, docstringsEndpointConstant, files, &response); requestError != nil {
		return DocstringGenerationResult{}, requestError
	}

	result := DocstringGenerationResult{
		Succeeded: isTruthy(response.Output),
		Results:   response.Results,
	}
	if statusText, isText := response.Output.(string); isText {
		result.Status = statusText
	}
	return result, nil
}

// GenerateDocumentation requests a full documentation build for a repository.
func (client *Client) GenerateDocumentation(executionContext context.Context, repositoryURL string) (DocumentationResult, error) {
	repositoryIdentifier := strings.TrimSpace(repositoryURL)
	if len(repositoryIdentifier) == 0 {
		return DocumentationResult{}, InvalidInputError{FieldName: inputFieldNameConstant, Message: requiredValueMessageConstant}
	}

	var response struct {
		DocsURL         string `json:"docs_url"`
		FilesDocumented int    `json:"files_documented"`
		Output          string `json:"output"`
		Message         string `json:"message"`
	}
	if requestError := client.postJSON(executionContext, documentationOperationNameConstant, documentationEndpointConstant, repositoryIdentifier, &response); requestError != nil {
		return DocumentationResult{}, requestError
	}

	return DocumentationResult{
		DocsURL:         response.DocsURL,
		FilesDocumented: response.FilesDocumented,
		ArchivePath:     response.Output,
		Message:         response.Message,
	}, nil
}

// DownloadDocumentation streams the documentation archive stored at archivePath on the backend into destination.
func (client *Client) DownloadDocumentation(executionContext context.Context, archivePath string, destination io.Writer) (int64, error) {
	trimmedArchivePath := strings.TrimSpace(archivePath)
	if len(trimmedArchivePath) == 0 {
		return 0, InvalidInputError{FieldName: inputFieldNameConstant, Message: requiredValueMessageConstant}
	}

	var bytesCopied int64
	requestError := client.post(executionContext, downloadDocumentationOperationNameConstant, downloadDocumentationEndpointConstant, trimmedArchivePath, func(body io.Reader) error {
		copied, copyError := io.Copy(destination, body)
		bytesCopied = copied
		return copyError
	})
	return bytesCopied, requestError
}

// RemoveDocumentationArchive asks the backend to delete a previously generated archive.
func (client *Client) RemoveDocumentationArchive(executionContext context.Context, archivePath string) error {
	trimmedArchivePath := strings.TrimSpace(archivePath)
	if len(trimmedArchivePath) == 0 {
		return InvalidInputError{FieldName: inputFieldNameConstant, Message: requiredValueMessageConstant}
	}

	var response struct {
		Output string `json:"output"`
	}
	return client.postJSON(executionContext, removeArchiveOperationNameConstant, removeArchiveEndpointConstant, trimmedArchivePath, &response)
}

func (client *Client) fetchTextOutput(executionContext context.Context, operation OperationName, endpoint string, repositoryURL string) (string, error) {
	repositoryIdentifier := strings.TrimSpace(repositoryURL)
	if len(repositoryIdentifier) == 0 {
		return "", InvalidInputError{FieldName: inputFieldNameConstant, Message: requiredValueMessageConstant}
	}

	var response struct {
		Output string `json:"output"`
	}
	if requestError := client.postJSON(executionContext, operation, endpoint, repositoryIdentifier, &response); requestError != nil {
		return "", requestError
	}
	return response.Output, nil
}

func (client *Client) postJSON(executionContext context.Context, operation OperationName, endpoint string, input any, target any) error {
	return client.post(executionContext, operation, endpoint, input, func(body io.Reader) error {
		if decodingError := json.NewDecoder(body).Decode(target); decodingError != nil {
			return ResponseDecodingError{Operation: operation, Cause: decodingError}
		}
		return nil
	})
}

func (client *Client) post(executionContext context.Context, operation OperationName, endpoint string, input any, consumeBody func(io.Reader) error) error {
	payload := struct {
		Input any `json:"input"`
	}{Input: input}

	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return PayloadEncodingError{Operation: operation, Cause: encodingError}
	}

	descriptor := RequestDescriptor{
		Operation:         operation,
		Method:            http.MethodPost,
		URL:               client.endpointURL(endpoint),
		RequestIdentifier: uuid.NewString(),
	}

	request, requestError := http.NewRequestWithContext(executionContext, descriptor.Method, descriptor.URL, bytes.NewReader(payloadBytes))
	if requestError != nil {
		return RequestConstructionError{Operation: operation, Cause: requestError}
	}
	request.Header.Set(contentTypeHeaderConstant, jsonMediaTypeConstant)
	request.Header.Set(acceptHeaderConstant, jsonMediaTypeConstant)
	request.Header.Set(requestIdentifierHeaderConstant, descriptor.RequestIdentifier)
	if client.sessionIdentifierProvider != nil {
		if sessionIdentifier, available := client.sessionIdentifierProvider(executionContext); available {
			request.Header.Set(sessionIdentifierHeaderConstant, sessionIdentifier)
		}
	}

	client.logger.Debug(
		logMessageRequestSentConstant,
		zap.String(logFieldOperationConstant, string(operation)),
		zap.String(logFieldURLConstant, descriptor.URL),
		zap.String(logFieldRequestIdentifierConstant, descriptor.RequestIdentifier),
	)
	client.observer.RequestStarted(descriptor)
	startedAt := time.Now()

	response, transportError := client.httpClient.Do(request)
	if transportError != nil {
		client.observer.RequestFailed(descriptor, transportError)
		return OperationError{Operation: operation, Cause: transportError}
	}
	defer response.Body.Close()

	outcome := RequestOutcome{StatusCode: response.StatusCode, Duration: time.Since(startedAt)}
	client.observer.RequestCompleted(descriptor, outcome)

	if !outcome.Succeeded() {
		bodyPreview, _ := io.ReadAll(io.LimitReader(response.Body, errorBodyPreviewLimitConstant))
		client.logger.Debug(
			logMessageUnexpectedStatusConstant,
			zap.String(logFieldOperationConstant, string(operation)),
			zap.String(logFieldRequestIdentifierConstant, descriptor.RequestIdentifier),
			zap.Int(logFieldStatusCodeConstant, response.StatusCode),
			zap.ByteString(logFieldResponseBodyConstant, bodyPreview),
		)
		return UnexpectedStatusError{Operation: operation, StatusCode: response.StatusCode}
	}

	if consumeError := consumeBody(response.Body); consumeError != nil {
		if _, isDecodingError := consumeError.(ResponseDecodingError); isDecodingError {
			return consumeError
		}
		return OperationError{Operation: operation, Cause: consumeError}
	}
	return nil
}

func (client *Client) endpointURL(endpoint string) string {
	return client.baseURL.JoinPath(client.endpointPrefix, endpoint).String()
}

// isTruthy applies JavaScript truthiness to a decoded JSON value.
func isTruthy(value any) bool {
	switch typedValue := value.(type) {
	case nil:
		return false
	case bool:
		return typedValue
	case string:
		return len(typedValue) > 0
	case float64:
		return !math.IsNaN(typedValue) && typedValue != 0
	default:
		return true
	}
}
