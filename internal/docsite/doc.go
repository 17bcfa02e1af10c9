// Package docsite requests full documentation builds for a repository,
// downloads the generated archive, and removes it from the backend.
package docsite
