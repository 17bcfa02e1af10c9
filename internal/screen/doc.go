// Package screen models the request lifecycle shared by every repoinsight screen.
//
// State holds the loading guard that rejects duplicate submissions, the
// user-facing error message, and a monotonic request token used to discard
// responses that arrive after a newer request superseded them.
package screen
