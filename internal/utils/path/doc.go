// Package pathutils resolves user-supplied filesystem locations for downloaded
// archives and generated files.
package pathutils
