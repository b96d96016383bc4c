// Package errors provides ErrorEnvelope constructors for the CLI's fatal
// error taxonomy. Per-target lookup failures are not errors in this
// taxonomy; they surface as non-matching results.
package errors

import (
	"github.com/fulmenhq/gofulmen/errors"
)

// NewInvalidInputError reports an unreadable or unparsable wantlist file.
func NewInvalidInputError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope("INVALID_INPUT", message)
}

// NewConfigInvalidError reports broken configuration.
func NewConfigInvalidError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope("CONFIG_INVALID", message)
}

// NewExternalServiceError reports a catalog service failure that escaped
// the per-target containment.
func NewExternalServiceError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope("EXTERNAL_SERVICE_ERROR", message)
}

// NewReportError reports a failure writing the output artifact.
func NewReportError(message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope("REPORT_WRITE_ERROR", message)
}

// WrapInvalidInput wraps an underlying error as an invalid-input envelope.
func WrapInvalidInput(err error, message string) *errors.ErrorEnvelope {
	return withWrappedError(NewInvalidInputError(message), err)
}

// WrapConfigInvalid wraps an underlying error as a config envelope.
func WrapConfigInvalid(err error, message string) *errors.ErrorEnvelope {
	return withWrappedError(NewConfigInvalidError(message), err)
}

// WrapReportError wraps an underlying error as a report-write envelope.
func WrapReportError(err error, message string) *errors.ErrorEnvelope {
	return withWrappedError(NewReportError(message), err)
}

func withWrappedError(envelope *errors.ErrorEnvelope, err error) *errors.ErrorEnvelope {
	if envelope == nil || err == nil {
		return envelope
	}

	updated, updateErr := envelope.WithContext(map[string]interface{}{
		"wrapped_error": err.Error(),
	})
	if updateErr != nil {
		return envelope
	}
	return updated
}
