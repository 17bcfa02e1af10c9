// Package commits implements the commit history screen.
//
// ParseCommitLog turns the "$"-delimited commit blob produced by the analysis
// backend into CommitRecord values. Screen adds input validation and the
// shared request lifecycle, and CommandBuilder exposes both as the commits
// subcommand.
package commits
