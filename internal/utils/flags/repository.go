package flags

import (
	"strings"

	"github.com/spf13/cobra"
)

const (
	// RepositoryFlagName exposes the shared repository URL flag name.
	RepositoryFlagName = "repository"
	// RepositoryFlagUsage describes the shared repository URL flag purpose.
	RepositoryFlagUsage = "Repository URL to analyze (alternative to the positional argument)"
	// RepositoryArgumentPlaceholder names the positional repository argument in usage lines.
	RepositoryArgumentPlaceholder = "[repository-url]"
)

// BindRepositoryFlag attaches the repository URL flag to the provided command and limits it to one positional argument.
func BindRepositoryFlag(command *cobra.Command) {
	if command == nil {
		return
	}
	if command.Flags().Lookup(RepositoryFlagName) == nil {
		command.Flags().String(RepositoryFlagName, "", RepositoryFlagUsage)
	}
	if command.Args == nil {
		command.Args = cobra.MaximumNArgs(1)
	}
}

// ResolveRepositoryInput returns the positional repository argument when present, otherwise the repository flag value.
// The value is returned untrimmed so validation can report empty input.
func ResolveRepositoryInput(command *cobra.Command, arguments []string) string {
	if len(arguments) > 0 && len(strings.TrimSpace(arguments[0])) > 0 {
		return arguments[0]
	}
	if command == nil {
		return ""
	}
	flagValue, flagError := command.Flags().GetString(RepositoryFlagName)
	if flagError != nil {
		return ""
	}
	return flagValue
}
