package screen

// Execute runs request under the loading guard of state.
// A request failure is recorded as failureMessage and returned as UserFacingError;
// a response whose token was superseded yields ErrStaleResponse and is never returned.
func Execute[Result any](state *State, failureMessage string, request func() (Result, error)) (Result, error) {
	var emptyResult Result

	token, beginError := state.Begin()
	if beginError != nil {
		return emptyResult, beginError
	}

	result, requestError := request()
	if requestError != nil {
		return emptyResult, state.Fail(token, requestError, failureMessage)
	}
	if !state.Complete(token) {
		return emptyResult, ErrStaleResponse
	}
	return result, nil
}
