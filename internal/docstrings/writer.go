package docstrings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/repoinsight/internal/backend"
	"github.com/temirov/repoinsight/internal/gitrepo"
	pathutils "github.com/temirov/repoinsight/internal/utils/path"
)

const (
	outputDirectoryPermissionsConstant = 0o755
	outputFilePermissionsConstant      = 0o644
	writeFailureTemplateConstant       = "write generated file %s: %w"
)

// GeneratedFileWriter stores generated file contents under a local directory, mirroring repository paths.
type GeneratedFileWriter struct {
	homeExpander *pathutils.HomeExpander
}

// NewGeneratedFileWriter constructs a writer that expands "~" through homeExpander.
func NewGeneratedFileWriter(homeExpander *pathutils.HomeExpander) *GeneratedFileWriter {
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return &GeneratedFileWriter{homeExpander: homeExpander}
}

// Write saves every result that carries content below outputDirectory and returns the written paths.
// Results with an error or without content are skipped. Paths escaping outputDirectory are rejected.
func (writer *GeneratedFileWriter) Write(outputDirectory string, results []backend.DocstringFileResult) ([]string, error) {
	rootDirectory := writer.homeExpander.Expand(outputDirectory)
	writtenFiles := make([]string, 0, len(results))
	for _, fileResult := range results {
		if len(fileResult.Error) > 0 || len(fileResult.Content) == 0 {
			continue
		}

		relativePath := gitrepo.RelativeFilePath(fileResult.File)
		destinationPath, joinError := pathutils.JoinWithinRoot(rootDirectory, relativePath)
		if joinError != nil {
			return writtenFiles, fmt.Errorf(writeFailureTemplateConstant, relativePath, joinError)
		}
		if mkdirError := os.MkdirAll(filepath.Dir(destinationPath), outputDirectoryPermissionsConstant); mkdirError != nil {
			return writtenFiles, fmt.Errorf(writeFailureTemplateConstant, relativePath, mkdirError)
		}
		if writeError := os.WriteFile(destinationPath, []byte(fileResult.Content), outputFilePermissionsConstant); writeError != nil {
			return writtenFiles, fmt.Errorf(writeFailureTemplateConstant, relativePath, writeError)
		}
		writtenFiles = append(writtenFiles, destinationPath)
	}
	return writtenFiles, nil
}
