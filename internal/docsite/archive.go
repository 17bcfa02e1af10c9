package docsite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pathutils "github.com/temirov/repoinsight/internal/utils/path"
)

const (
	defaultArchiveNameConstant          = "documentation.zip"
	archiveDirectoryPermissionsConstant = 0o755
	archiveFilePermissionsConstant      = 0o644
	archiveOpenFailureTemplateConstant  = "open documentation archive destination %s: %w"
)

// ArchiveFile is a local file receiving a downloaded documentation archive.
type ArchiveFile struct {
	Path string
	file *os.File
}

// Write implements io.Writer.
func (archiveFile *ArchiveFile) Write(data []byte) (int, error) {
	return archiveFile.file.Write(data)
}

// Close closes the underlying file.
func (archiveFile *ArchiveFile) Close() error {
	return archiveFile.file.Close()
}

// Discard closes and removes a partially written archive.
func (archiveFile *ArchiveFile) Discard() {
	_ = archiveFile.file.Close()
	_ = os.Remove(archiveFile.Path)
}

// CreateArchiveFile resolves destinationPath and creates the archive file, creating parent directories.
// An existing directory or a path ending in a separator receives documentation.zip.
func CreateArchiveFile(homeExpander *pathutils.HomeExpander, destinationPath string) (*ArchiveFile, error) {
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	trimmedPath := strings.TrimSpace(destinationPath)
	resolvedPath := homeExpander.Expand(trimmedPath)
	if len(resolvedPath) == 0 {
		resolvedPath = defaultArchiveNameConstant
	}
	if hasTrailingSeparator(trimmedPath) || isExistingDirectory(resolvedPath) {
		resolvedPath = filepath.Join(resolvedPath, defaultArchiveNameConstant)
	}

	if mkdirError := os.MkdirAll(filepath.Dir(resolvedPath), archiveDirectoryPermissionsConstant); mkdirError != nil {
		return nil, fmt.Errorf(archiveOpenFailureTemplateConstant, resolvedPath, mkdirError)
	}
	file, openError := os.OpenFile(resolvedPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, archiveFilePermissionsConstant)
	if openError != nil {
		return nil, fmt.Errorf(archiveOpenFailureTemplateConstant, resolvedPath, openError)
	}
	return &ArchiveFile{Path: resolvedPath, file: file}, nil
}

func hasTrailingSeparator(candidatePath string) bool {
	return len(candidatePath) > 0 && os.IsPathSeparator(candidatePath[len(candidatePath)-1])
}

func isExistingDirectory(candidatePath string) bool {
	fileInfo, statError := os.Stat(candidatePath)
	return statError == nil && fileInfo.IsDir()
}
