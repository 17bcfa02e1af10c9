package pathutils

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	parentDirectoryConstant           = ".."
	escapesRootErrorTemplateConstant  = "path %q escapes %q"
	emptyRelativePathTemplateConstant = "path %q is empty"
)

// JoinWithinRoot joins relativePath onto rootDirectory and rejects results that leave rootDirectory.
// Absolute relative paths are treated as rooted at rootDirectory.
func JoinWithinRoot(rootDirectory string, relativePath string) (string, error) {
	cleanedRelativePath := filepath.Clean(filepath.FromSlash(strings.TrimSpace(relativePath)))
	cleanedRelativePath = strings.TrimLeft(cleanedRelativePath, string(filepath.Separator))
	if len(cleanedRelativePath) == 0 || cleanedRelativePath == "." {
		return "", fmt.Errorf(emptyRelativePathTemplateConstant, relativePath)
	}
	if cleanedRelativePath == parentDirectoryConstant || strings.HasPrefix(cleanedRelativePath, parentDirectoryConstant+string(filepath.Separator)) {
		return "", fmt.Errorf(escapesRootErrorTemplateConstant, relativePath, rootDirectory)
	}
	return filepath.Join(rootDirectory, cleanedRelativePath), nil
}
