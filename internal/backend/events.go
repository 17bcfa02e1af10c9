package backend

import "time"

// RequestDescriptor identifies one backend request for lifecycle observers.
type RequestDescriptor struct {
	Operation         OperationName
	Method            string
	URL               string
	RequestIdentifier string
}

// RequestOutcome summarizes a request that received an HTTP response.
type RequestOutcome struct {
	StatusCode int
	Duration   time.Duration
}

// Succeeded reports whether the response carried a 2xx status.
func (outcome RequestOutcome) Succeeded() bool {
	return outcome.StatusCode >= 200 && outcome.StatusCode < 300
}

// RequestEventObserver receives lifecycle notifications for backend requests.
type RequestEventObserver interface {
	RequestStarted(descriptor RequestDescriptor)
	RequestCompleted(descriptor RequestDescriptor, outcome RequestOutcome)
	RequestFailed(descriptor RequestDescriptor, failure error)
}

type noopRequestEventObserver struct{}

func (noopRequestEventObserver) RequestStarted(RequestDescriptor) {}

func (noopRequestEventObserver) RequestCompleted(RequestDescriptor, RequestOutcome) {}

func (noopRequestEventObserver) RequestFailed(RequestDescriptor, error) {}
