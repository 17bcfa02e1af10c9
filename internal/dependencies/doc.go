// Package dependencies requests the dependency report of a repository and
// renders it unchanged.
package dependencies
