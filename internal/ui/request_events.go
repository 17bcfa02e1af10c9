package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repoinsight/internal/backend"
)

const (
	requestStartedMessageTemplateConstant       = "Requesting %s"
	requestCompletedMessageTemplateConstant     = "Completed %s"
	requestStatusFailureMessageTemplateConstant = "%s failed with status %d"
	requestTransportFailureTemplateConstant     = "%s failed: %s"
	requestLabelTemplateConstant                = "%s (%s %s)"
	requestLabelWithoutURLTemplateConstant      = "%s"
	unknownFailureMessageConstant               = "unknown error"
)

// RequestEventFormatter builds human-readable messages for backend request lifecycle events.
type RequestEventFormatter struct{}

// BuildStartedMessage formats the message describing a request about to be sent.
func (formatter RequestEventFormatter) BuildStartedMessage(descriptor backend.RequestDescriptor) string {
	return fmt.Sprintf(requestStartedMessageTemplateConstant, formatter.formatRequestLabel(descriptor))
}

// BuildSuccessMessage formats the message describing a request answered with a 2xx status.
func (formatter RequestEventFormatter) BuildSuccessMessage(descriptor backend.RequestDescriptor) string {
	return fmt.Sprintf(requestCompletedMessageTemplateConstant, formatter.formatRequestLabel(descriptor))
}

// BuildStatusFailureMessage formats the message describing a request answered with a non-2xx status.
func (formatter RequestEventFormatter) BuildStatusFailureMessage(descriptor backend.RequestDescriptor, outcome backend.RequestOutcome) string {
	return fmt.Sprintf(requestStatusFailureMessageTemplateConstant, formatter.formatRequestLabel(descriptor), outcome.StatusCode)
}

// BuildTransportFailureMessage formats the message describing a request that never received a response.
func (formatter RequestEventFormatter) BuildTransportFailureMessage(descriptor backend.RequestDescriptor, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(requestTransportFailureTemplateConstant, formatter.formatRequestLabel(descriptor), failureMessage)
}

func (formatter RequestEventFormatter) formatRequestLabel(descriptor backend.RequestDescriptor) string {
	trimmedURL := strings.TrimSpace(descriptor.URL)
	if len(trimmedURL) == 0 {
		return fmt.Sprintf(requestLabelWithoutURLTemplateConstant, descriptor.Operation)
	}
	return fmt.Sprintf(requestLabelTemplateConstant, descriptor.Operation, descriptor.Method, trimmedURL)
}

// ConsoleRequestEventLogger renders backend request lifecycle events using a zap logger configured for human-readable output.
type ConsoleRequestEventLogger struct {
	logger    *zap.Logger
	formatter RequestEventFormatter
}

// NewConsoleRequestEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleRequestEventLogger(logger *zap.Logger) *ConsoleRequestEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleRequestEventLogger{logger: logger, formatter: RequestEventFormatter{}}
}

// RequestStarted implements backend.RequestEventObserver.
func (eventLogger *ConsoleRequestEventLogger) RequestStarted(descriptor backend.RequestDescriptor) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(descriptor))
}

// RequestCompleted implements backend.RequestEventObserver. Non-2xx outcomes are logged as warnings.
func (eventLogger *ConsoleRequestEventLogger) RequestCompleted(descriptor backend.RequestDescriptor, outcome backend.RequestOutcome) {
	if eventLogger == nil {
		return
	}
	if outcome.Succeeded() {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(descriptor))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildStatusFailureMessage(descriptor, outcome))
}

// RequestFailed implements backend.RequestEventObserver.
func (eventLogger *ConsoleRequestEventLogger) RequestFailed(descriptor backend.RequestDescriptor, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildTransportFailureMessage(descriptor, failure))
}
