package screen_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repoinsight/internal/screen"
)

const (
	testExecuteResultConstant        = "requests==2.31.0"
	testGithubRepositoryURLConstant  = "https://github.com/octo/project"
	testGitlabRepositoryURLConstant  = "https://gitlab.com/octo/project"
	testSelfHostedRepositoryConstant = "https://git.example.com/octo/project.git"
	testOtherHostRepositoryConstant  = "https://bitbucket.org/octo/project"
)

func TestExecuteReturnsResultAndClearsLoading(testInstance *testing.T) {
	state := &screen.State{}

	result, executeError := screen.Execute(state, testFailureMessageConstant, func() (string, error) {
		require.True(testInstance, state.Snapshot().Loading)
		return testExecuteResultConstant, nil
	})
	require.NoError(testInstance, executeError)
	require.Equal(testInstance, testExecuteResultConstant, result)
	require.Equal(testInstance, screen.Snapshot{}, state.Snapshot())
}

func TestExecuteMapsFailureToUserMessage(testInstance *testing.T) {
	state := &screen.State{}
	backendFailure := errors.New("status 400")

	result, executeError := screen.Execute(state, testFailureMessageConstant, func() (string, error) {
		return "partial", backendFailure
	})
	require.Empty(testInstance, result)
	require.Equal(testInstance, testFailureMessageConstant, executeError.Error())
	require.ErrorIs(testInstance, executeError, backendFailure)
	require.Equal(testInstance, screen.Snapshot{ErrorMessage: testFailureMessageConstant}, state.Snapshot())
}

func TestExecuteDropsSupersededResult(testInstance *testing.T) {
	state := &screen.State{}

	result, executeError := screen.Execute(state, testFailureMessageConstant, func() (string, error) {
		state.Invalidate()
		return testExecuteResultConstant, nil
	})
	require.ErrorIs(testInstance, executeError, screen.ErrStaleResponse)
	require.Empty(testInstance, result)
}

func TestExecuteRejectsWhileLoading(testInstance *testing.T) {
	state := &screen.State{}
	_, beginError := state.Begin()
	require.NoError(testInstance, beginError)

	invoked := false
	_, executeError := screen.Execute(state, testFailureMessageConstant, func() (string, error) {
		invoked = true
		return "", nil
	})
	require.ErrorIs(testInstance, executeError, screen.ErrRequestInFlight)
	require.False(testInstance, invoked)
}

func TestAcceptRepositoryURL(testInstance *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedURL     string
		expectedMessage string
	}{
		{name: "github", input: "  " + testGithubRepositoryURLConstant + " ", expectedURL: testGithubRepositoryURLConstant},
		{name: "gitlab", input: testGitlabRepositoryURLConstant, expectedURL: testGitlabRepositoryURLConstant},
		{name: "git_suffix", input: testSelfHostedRepositoryConstant, expectedURL: testSelfHostedRepositoryConstant},
		{name: "empty", input: "   ", expectedMessage: screen.MissingRepositoryMessage},
		{name: "other_host_left_to_backend", input: testOtherHostRepositoryConstant, expectedURL: testOtherHostRepositoryConstant},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			state := &screen.State{}

			repositoryURL, acceptError := state.AcceptRepositoryURL(testCase.input)
			if len(testCase.expectedMessage) > 0 {
				require.True(testInstance, screen.IsValidationError(acceptError))
				require.Equal(testInstance, testCase.expectedMessage, acceptError.Error())
				require.Equal(testInstance, testCase.expectedMessage, state.Snapshot().ErrorMessage)
				require.Empty(testInstance, repositoryURL)
				return
			}
			require.NoError(testInstance, acceptError)
			require.Equal(testInstance, testCase.expectedURL, repositoryURL)
			require.Empty(testInstance, state.Snapshot().ErrorMessage)
		})
	}
}
