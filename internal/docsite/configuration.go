package docsite

import "strings"

// Configuration stores defaults for the docs command.
type Configuration struct {
	DownloadPath string `mapstructure:"download_path"`
	Cleanup      bool   `mapstructure:"cleanup"`
}

// DefaultConfiguration keeps archives on the backend and downloads nothing.
func DefaultConfiguration() Configuration {
	return Configuration{}
}

// Sanitize trims configured values.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.DownloadPath = strings.TrimSpace(configuration.DownloadPath)
	return sanitized
}
