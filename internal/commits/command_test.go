package commits_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/commits"
	"github.com/temirov/repoinsight/internal/output"
	"github.com/temirov/repoinsight/internal/screen"
	"github.com/temirov/repoinsight/internal/ui"
)

func newCommandRendererProvider(format output.Format) output.RendererProvider {
	return func(writer io.Writer) *output.Renderer {
		return output.NewRenderer(writer, format, ui.NewPalette(writer, ui.ColorModeNever))
	}
}

func executeCommitsCommand(testInstance *testing.T, fetcher commits.HistoryFetcher, format output.Format, arguments []string) (string, error) {
	builder := commits.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return zap.NewNop()
		},
		FetcherResolver: func(*zap.Logger) (commits.HistoryFetcher, error) {
			return fetcher, nil
		},
		RendererProvider: newCommandRendererProvider(format),
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(io.Discard)
	command.SilenceUsage = true
	command.SilenceErrors = true
	command.SetArgs(arguments)

	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func TestCommitsCommandRendersText(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "positional_argument", arguments: []string{testRepositoryURLConstant}},
		{name: "repository_flag", arguments: []string{"--repository", testRepositoryURLConstant}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fetcher := &stubHistoryFetcher{outputs: []string{testCommitLogConstant}}

			renderedOutput, executionError := executeCommitsCommand(testInstance, fetcher, output.FormatText, testCase.arguments)
			require.NoError(testInstance, executionError)
			require.Contains(testInstance, renderedOutput, "2 Commits Found")
			require.Contains(testInstance, renderedOutput, "octo/project")
			require.Contains(testInstance, renderedOutput, "abc1234  Jane Doe")
			require.Contains(testInstance, renderedOutput, "    fix bug")
			require.Contains(testInstance, renderedOutput, "def4567  John Roe")
			require.Contains(testInstance, renderedOutput, "    No message")
			require.NotContains(testInstance, renderedOutput, "abc1234567")
		})
	}
}

func TestCommitsCommandRendersJSON(testInstance *testing.T) {
	fetcher := &stubHistoryFetcher{outputs: []string{testCommitLogConstant}}

	renderedOutput, executionError := executeCommitsCommand(testInstance, fetcher, output.FormatJSON, []string{testRepositoryURLConstant})
	require.NoError(testInstance, executionError)

	var document commits.HistoryDocument
	require.NoError(testInstance, json.Unmarshal([]byte(renderedOutput), &document))
	require.Equal(testInstance, "octo/project", document.Repository)
	require.Equal(testInstance, 2, document.CommitCount)
	require.Equal(testInstance, "abc1234567", document.Commits[0].SHA)
	require.Empty(testInstance, document.Commits[1].Message)
}

func TestCommitsCommandSurfacesFixedMessages(testInstance *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		failure         error
		expectedMessage string
		expectedCalls   int
	}{
		{name: "missing_repository", arguments: []string{}, expectedMessage: screen.MissingRepositoryMessage},
		{name: "blank_repository", arguments: []string{"   "}, expectedMessage: screen.MissingRepositoryMessage},
		{name: "backend_failure", arguments: []string{testRepositoryURLConstant}, failure: errors.New(testBackendFailureConstant), expectedMessage: commits.FetchFailureMessage, expectedCalls: 1},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fetcher := &stubHistoryFetcher{outputs: []string{testCommitLogConstant}, failure: testCase.failure}

			renderedOutput, executionError := executeCommitsCommand(testInstance, fetcher, output.FormatText, testCase.arguments)
			require.Error(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedMessage, executionError.Error())
			require.Empty(testInstance, renderedOutput)
			require.Len(testInstance, fetcher.repositories, testCase.expectedCalls)
		})
	}
}

func TestCommitsCommandRequiresResolver(testInstance *testing.T) {
	builder := commits.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs([]string{testRepositoryURLConstant})
	command.SilenceErrors = true
	command.SilenceUsage = true
	command.SetOut(io.Discard)

	require.Error(testInstance, command.Execute())
}
