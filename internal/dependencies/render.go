package dependencies

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/repoinsight/internal/gitrepo"
	"github.com/temirov/repoinsight/internal/ui"
)

const (
	dependenciesHeadingConstant    = "Dependencies"
	emptyReportConstant            = "No dependencies reported."
	headingLineTemplateConstant    = "%s\n"
	repositoryLineTemplateConstant = "%s\n\n"
	lineBreakConstant              = "\n"
)

// ReportDocument is the rendered form of a dependency request.
type ReportDocument struct {
	Repository   string `json:"repository" yaml:"repository" toml:"repository"`
	Dependencies string `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

// NewReportDocument builds the document for repositoryURL and the backend report.
func NewReportDocument(repositoryURL string, report string) ReportDocument {
	repositoryName := strings.TrimSpace(repositoryURL)
	if remoteURL, parseError := gitrepo.ParseRemoteURL(repositoryURL); parseError == nil {
		repositoryName = remoteURL.DisplayName()
	}
	return ReportDocument{Repository: repositoryName, Dependencies: report}
}

// RenderText writes the report preformatted, exactly as the backend returned it.
func (document ReportDocument) RenderText(writer io.Writer, palette ui.Palette) error {
	if _, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, palette.Heading.Render(dependenciesHeadingConstant)); writeError != nil {
		return writeError
	}
	if _, writeError := fmt.Fprintf(writer, repositoryLineTemplateConstant, palette.Muted.Render(document.Repository)); writeError != nil {
		return writeError
	}

	if len(strings.TrimSpace(document.Dependencies)) == 0 {
		_, writeError := fmt.Fprintf(writer, headingLineTemplateConstant, palette.Muted.Render(emptyReportConstant))
		return writeError
	}

	if _, writeError := io.WriteString(writer, document.Dependencies); writeError != nil {
		return writeError
	}
	if !strings.HasSuffix(document.Dependencies, lineBreakConstant) {
		_, writeError := io.WriteString(writer, lineBreakConstant)
		return writeError
	}
	return nil
}
