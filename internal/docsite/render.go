package docsite

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/repoinsight/internal/backend"
	"github.com/temirov/repoinsight/internal/gitrepo"
	"github.com/temirov/repoinsight/internal/ui"
)

const (
	documentationReadyHeadingConstant = "Documentation Ready!"
	filesDocumentedTemplateConstant   = "%d Python files documented successfully.\n"
	docsURLTemplateConstant           = "View documentation: %s\n"
	downloadedTemplateConstant        = "Archive saved to %s (%d bytes)\n"
	archiveRemovedConstant            = "Server archive removed"
	headingLineTemplateConstant       = "%s\n"
	repositoryLineTemplateConstant    = "%s\n\n"
)

// ResultDocument is the rendered form of a documentation generation.
type ResultDocument struct {
	Repository      string `json:"repository" yaml:"repository" toml:"repository"`
	DocsURL         string `json:"docs_url" yaml:"docs_url" toml:"docs_url"`
	FilesDocumented int    `json:"files_documented" yaml:"files_documented" toml:"files_documented"`
	Message         string `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
	ArchivePath     string `json:"archive_path,omitempty" yaml:"archive_path,omitempty" toml:"archive_path,omitempty"`
	DownloadedTo    string `json:"downloaded_to,omitempty" yaml:"downloaded_to,omitempty" toml:"downloaded_to,omitempty"`
	DownloadedBytes int64  `json:"downloaded_bytes,omitempty" yaml:"downloaded_bytes,omitempty" toml:"downloaded_bytes,omitempty"`
	ArchiveRemoved  bool   `json:"archive_removed,omitempty" yaml:"archive_removed,omitempty" toml:"archive_removed,omitempty"`
}

// NewResultDocument builds the document for repositoryURL and the ready documentation result.
func NewResultDocument(repositoryURL string, result backend.DocumentationResult) ResultDocument {
	repositoryName := strings.TrimSpace(repositoryURL)
	if remoteURL, parseError := gitrepo.ParseRemoteURL(repositoryURL); parseError == nil {
		repositoryName = remoteURL.DisplayName()
	}
	return ResultDocument{
		Repository:      repositoryName,
		DocsURL:         result.DocsURL,
		FilesDocumented: result.FilesDocumented,
		Message:         result.Message,
		ArchivePath:     result.ArchivePath,
	}
}

// RenderText writes the ready heading, the documented file count, the docs link and any archive activity.
func (document ResultDocument) RenderText(writer io.Writer, palette ui.Palette) error {
	if _, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, palette.Success.Render(documentationReadyHeadingConstant)); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(writer, repositoryLineTemplateConstant, palette.Muted.Render(document.Repository)); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(writer, filesDocumentedTemplateConstant, document.FilesDocumented); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(writer, docsURLTemplateConstant, palette.Accent.Render(document.DocsURL)); writeError != nil {
		return writeError
	}
	if len(document.Message) > 0 {
		if _, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, palette.Muted.Render(document.Message)); writeError != nil {
			return writeError
		}
	}
	if len(document.DownloadedTo) > 0 {
		if _, writeError := fmt.Fprintf(writer, downloadedTemplateConstant, palette.Identifier.Render(document.DownloadedTo), document.DownloadedBytes); writeError != nil {
			return writeError
		}
	}
	if document.ArchiveRemoved {
		if _, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, palette.Muted.Render(archiveRemovedConstant)); writeError != nil {
			return writeError
		}
	}
	return nil
}
