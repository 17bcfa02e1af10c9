package screen

import "github.com/temirov/repoinsight/internal/gitrepo"

// AcceptRepositoryURL returns the trimmed repository URL. Blank input is recorded on the state
// and returned as ValidationError; no request is issued. Any other URL is left for the backend to judge.
func (state *State) AcceptRepositoryURL(repositoryInput string) (string, error) {
	repositoryURL, validationError := gitrepo.ValidateRepositoryURL(repositoryInput)
	if validationError != nil {
		return "", state.Reject(MissingRepositoryMessage)
	}
	return repositoryURL, nil
}
