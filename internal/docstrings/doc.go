// Package docstrings lists repository files, tracks which of them the user
// selected, and submits the selection to the backend docstring generator.
package docstrings
