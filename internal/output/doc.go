// Package output renders command results as styled text, JSON, YAML, or TOML.
package output
