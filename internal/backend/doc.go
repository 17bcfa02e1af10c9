// Package backend provides a typed client for the repository-analysis HTTP API.
//
// Every endpoint accepts a JSON body of the form {"input": ...} and answers
// with JSON. Client maps each endpoint to a method, tags requests with a
// request identifier, reports lifecycle events to a RequestEventObserver, and
// surfaces failures as OperationError, UnexpectedStatusError,
// ResponseDecodingError, PayloadEncodingError, or InvalidInputError.
package backend
