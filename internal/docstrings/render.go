package docstrings

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/repoinsight/internal/backend"
	"github.com/temirov/repoinsight/internal/gitrepo"
	"github.com/temirov/repoinsight/internal/ui"
)

// IncompleteGenerationMessage is reported when the backend answers without a truthy status.
const IncompleteGenerationMessage = "Docstring generation did not report success."

const (
	filesFoundTemplateConstant     = "%d Files Found"
	headingLineTemplateConstant    = "%s\n"
	repositoryLineTemplateConstant = "%s\n\n"
	fileLineTemplateConstant       = "  %s\n"
	resultSuccessTemplateConstant  = "  ✓ %s\n"
	resultFailureTemplateConstant  = "  ✗ %s: %s\n"
	writtenFileTemplateConstant    = "  wrote %s\n"
	submittedCountTemplateConstant = "%d files submitted\n"
	blankLineConstant              = "\n"
	writtenFilesHeadingConstant    = "Generated files"
	resultsHeadingConstant         = "Results"
	unknownResultErrorConstant     = "no content returned"
)

// FileEntry pairs a repository file URL with its repository-relative path.
type FileEntry struct {
	Path string `json:"path" yaml:"path" toml:"path"`
	URL  string `json:"url" yaml:"url" toml:"url"`
}

// FileListDocument is the rendered form of a repository file listing.
type FileListDocument struct {
	Repository string      `json:"repository" yaml:"repository" toml:"repository"`
	FileCount  int         `json:"file_count" yaml:"file_count" toml:"file_count"`
	Files      []FileEntry `json:"files" yaml:"files" toml:"files"`
}

// NewFileListDocument builds the listing document for repositoryURL.
func NewFileListDocument(repositoryURL string, files []string) FileListDocument {
	entries := make([]FileEntry, 0, len(files))
	for _, file := range files {
		entries = append(entries, FileEntry{Path: gitrepo.RelativeFilePath(file), URL: file})
	}
	return FileListDocument{Repository: repositoryDisplayName(repositoryURL), FileCount: len(entries), Files: entries}
}

// RenderText writes the file count heading followed by one relative path per line.
func (document FileListDocument) RenderText(writer io.Writer, palette ui.Palette) error {
	if _, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, palette.Heading.Render(fmt.Sprintf(filesFoundTemplateConstant, document.FileCount))); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(writer, repositoryLineTemplateConstant, palette.Muted.Render(document.Repository)); writeError != nil {
		return writeError
	}
	for _, entry := range document.Files {
		if _, writeError := fmt.Fprintf(writer, fileLineTemplateConstant, palette.Identifier.Render(entry.Path)); writeError != nil {
			return writeError
		}
	}
	return nil
}

// GenerationDocument is the rendered form of a docstring generation request.
type GenerationDocument struct {
	Repository     string                        `json:"repository" yaml:"repository" toml:"repository"`
	Succeeded      bool                          `json:"succeeded" yaml:"succeeded" toml:"succeeded"`
	Message        string                        `json:"message" yaml:"message" toml:"message"`
	Status         string                        `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
	SubmittedFiles []string                      `json:"submitted_files" yaml:"submitted_files" toml:"submitted_files"`
	Results        []backend.DocstringFileResult `json:"results" yaml:"results" toml:"results"`
	WrittenFiles   []string                      `json:"written_files,omitempty" yaml:"written_files,omitempty" toml:"written_files,omitempty"`
}

// NewGenerationDocument builds the generation document for the submitted files and the backend result.
func NewGenerationDocument(repositoryURL string, submittedFiles []string, result backend.DocstringGenerationResult, writtenFiles []string) GenerationDocument {
	message := IncompleteGenerationMessage
	if result.Succeeded {
		message = GenerationSuccessMessage
	}
	results := result.Results
	if results == nil {
		results = []backend.DocstringFileResult{}
	}
	if submittedFiles == nil {
		submittedFiles = []string{}
	}
	return GenerationDocument{
		Repository:     repositoryDisplayName(repositoryURL),
		Succeeded:      result.Succeeded,
		Message:        message,
		Status:         result.Status,
		SubmittedFiles: submittedFiles,
		Results:        results,
		WrittenFiles:   writtenFiles,
	}
}

// RenderText writes the outcome message, the per-file results and any files written locally.
func (document GenerationDocument) RenderText(writer io.Writer, palette ui.Palette) error {
	messageStyle := palette.Failure
	if document.Succeeded {
		messageStyle = palette.Success
	}
	if _, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, messageStyle.Render(document.Message)); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(writer, submittedCountTemplateConstant, len(document.SubmittedFiles)); writeError != nil {
		return writeError
	}

	if len(document.Results) > 0 {
		if _, writeError := fmt.Fprintf(writer, blankLineConstant+headingLineTemplateConstant, palette.Heading.Render(resultsHeadingConstant)); writeError != nil {
			return writeError
		}
		for _, fileResult := range document.Results {
			if writeError := renderFileResult(writer, palette, fileResult); writeError != nil {
				return writeError
			}
		}
	}

	if len(document.WrittenFiles) > 0 {
		if _, writeError := fmt.Fprintf(writer, blankLineConstant+headingLineTemplateConstant, palette.Heading.Render(writtenFilesHeadingConstant)); writeError != nil {
			return writeError
		}
		for _, writtenFile := range document.WrittenFiles {
			if _, writeError := fmt.Fprintf(writer, writtenFileTemplateConstant, palette.Muted.Render(writtenFile)); writeError != nil {
				return writeError
			}
		}
	}
	return nil
}

func renderFileResult(writer io.Writer, palette ui.Palette, fileResult backend.DocstringFileResult) error {
	filePath := gitrepo.RelativeFilePath(fileResult.File)
	if len(fileResult.Error) == 0 && len(fileResult.Content) > 0 {
		_, writeError := fmt.Fprintf(writer, resultSuccessTemplateConstant, palette.Identifier.Render(filePath))
		return writeError
	}

	failureReason := fileResult.Error
	if len(failureReason) == 0 {
		failureReason = unknownResultErrorConstant
	}
	_, writeError := fmt.Fprintf(writer, resultFailureTemplateConstant, palette.Identifier.Render(filePath), palette.Failure.Render(failureReason))
	return writeError
}

func repositoryDisplayName(repositoryURL string) string {
	if remoteURL, parseError := gitrepo.ParseRemoteURL(repositoryURL); parseError == nil {
		return remoteURL.DisplayName()
	}
	return strings.TrimSpace(repositoryURL)
}
