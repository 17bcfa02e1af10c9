package commits

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/repoinsight/internal/gitrepo"
	"github.com/temirov/repoinsight/internal/ui"
)

const (
	commitsFoundTemplateConstant   = "%d Commits Found"
	commitHeaderTemplateConstant   = "%s  %s"
	commitMessageTemplateConstant  = "    %s\n"
	committerTemplateConstant      = "committed by %s"
	headingLineTemplateConstant    = "%s\n"
	repositoryLineTemplateConstant = "%s\n\n"
)

// HistoryDocument is the rendered form of a commit history search.
type HistoryDocument struct {
	Repository  string         `json:"repository" yaml:"repository" toml:"repository"`
	CommitCount int            `json:"commit_count" yaml:"commit_count" toml:"commit_count"`
	Commits     []CommitRecord `json:"commits" yaml:"commits" toml:"commits"`
}

// NewHistoryDocument builds the document for repositoryURL and its commit records.
func NewHistoryDocument(repositoryURL string, records []CommitRecord) HistoryDocument {
	repositoryName := strings.TrimSpace(repositoryURL)
	if remoteURL, parseError := gitrepo.ParseRemoteURL(repositoryURL); parseError == nil {
		repositoryName = remoteURL.DisplayName()
	}
	if records == nil {
		records = []CommitRecord{}
	}
	return HistoryDocument{Repository: repositoryName, CommitCount: len(records), Commits: records}
}

// RenderText writes the human-readable commit listing: a count heading, then each short SHA with the author
// when known and the message or its placeholder.
func (document HistoryDocument) RenderText(writer io.Writer, palette ui.Palette) error {
	if _, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, palette.Heading.Render(fmt.Sprintf(commitsFoundTemplateConstant, document.CommitCount))); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(writer, repositoryLineTemplateConstant, palette.Muted.Render(document.Repository)); writeError != nil {
		return writeError
	}

	for _, record := range document.Commits {
		attribution := record.Author
		if len(attribution) == 0 && len(record.Committer) > 0 {
			attribution = fmt.Sprintf(committerTemplateConstant, record.Committer)
		}
		commitHeader := palette.Identifier.Render(record.ShortSHA())
		if len(attribution) > 0 {
			commitHeader = fmt.Sprintf(commitHeaderTemplateConstant, commitHeader, palette.Accent.Render(attribution))
		}
		if _, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, commitHeader); writeError != nil {
			return writeError
		}
		if _, writeError := fmt.Fprintf(writer, commitMessageTemplateConstant, record.DisplayMessage()); writeError != nil {
			return writeError
		}
	}
	return nil
}
