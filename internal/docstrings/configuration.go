package docstrings

import "strings"

// Configuration stores defaults for the docstrings command.
type Configuration struct {
	OutputDirectory string `mapstructure:"output_directory"`
}

// DefaultConfiguration leaves generated content on the backend only.
func DefaultConfiguration() Configuration {
	return Configuration{}
}

// Sanitize trims configured values.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.OutputDirectory = strings.TrimSpace(configuration.OutputDirectory)
	return sanitized
}
