// Package ui provides helpers for human-readable console output.
//
// ConsoleRequestEventLogger turns backend request lifecycle events into short
// console messages while structured telemetry keeps flowing through zap.
// Palette carries the lipgloss styles for rendered results, and
// FilePickerModel is the interactive bubbletea picker used to choose files
// for docstring generation.
package ui
