package screen

import (
	"errors"
	"sync"
)

const (
	requestInFlightMessageConstant = "a request is already in progress"
	staleResponseMessageConstant   = "response discarded because a newer request superseded it"
)

var (
	// ErrRequestInFlight indicates a screen rejected a submission while its previous request is still loading.
	ErrRequestInFlight = errors.New(requestInFlightMessageConstant)
	// ErrStaleResponse indicates a response arrived for a request token that is no longer current.
	ErrStaleResponse = errors.New(staleResponseMessageConstant)
)

// RequestToken identifies one outbound request issued by a screen. Tokens increase monotonically.
type RequestToken uint64

// Snapshot captures the observable request state of a screen.
type Snapshot struct {
	Loading      bool
	ErrorMessage string
}

// State tracks the loading flag, the user-facing error message, and the current request token of one screen.
// The zero value is ready to use.
type State struct {
	mutex        sync.Mutex
	loading      bool
	errorMessage string
	currentToken RequestToken
}

// Begin starts a request. It fails with ErrRequestInFlight while a previous request is loading,
// otherwise it clears the error message and returns a fresh token.
func (state *State) Begin() (RequestToken, error) {
	state.mutex.Lock()
	defer state.mutex.Unlock()

	if state.loading {
		return 0, ErrRequestInFlight
	}

	state.currentToken++
	state.loading = true
	state.errorMessage = ""
	return state.currentToken, nil
}

// Complete finishes a successful request. It reports false when the token was superseded,
// in which case the caller must drop the response.
func (state *State) Complete(token RequestToken) bool {
	state.mutex.Lock()
	defer state.mutex.Unlock()

	if token != state.currentToken {
		return false
	}
	state.loading = false
	return true
}

// Fail finishes a failed request, recording userMessage as the screen error.
// The returned error is a UserFacingError wrapping cause, or ErrStaleResponse for superseded tokens.
func (state *State) Fail(token RequestToken, cause error, userMessage string) error {
	state.mutex.Lock()
	defer state.mutex.Unlock()

	if token != state.currentToken {
		return ErrStaleResponse
	}
	state.loading = false
	state.errorMessage = userMessage
	return UserFacingError{Message: userMessage, Cause: cause}
}

// Reject records a validation failure without issuing a request.
func (state *State) Reject(message string) error {
	state.mutex.Lock()
	defer state.mutex.Unlock()

	state.errorMessage = message
	return ValidationError{Message: message}
}

// Invalidate supersedes any in-flight request so its response is discarded, and clears the loading flag.
func (state *State) Invalidate() {
	state.mutex.Lock()
	defer state.mutex.Unlock()

	state.currentToken++
	state.loading = false
}

// Snapshot returns the current loading flag and error message.
func (state *State) Snapshot() Snapshot {
	state.mutex.Lock()
	defer state.mutex.Unlock()

	return Snapshot{Loading: state.loading, ErrorMessage: state.errorMessage}
}
