// Package gitrepo validates and decomposes the repository URLs submitted to the
// analysis backend.
//
// ValidateRepositoryURL trims input and rejects blank URLs,
// ParseRemoteURL extracts host, owner, and repository names for display, and
// RelativeFilePath turns the blob URLs returned by file listings back into
// repository-relative paths.
package gitrepo
