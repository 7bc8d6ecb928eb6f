// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation errors (never retryable; the user fixes the form).
	ErrCodeSubmissionInvalid       ErrorCode = "SUBMISSION_INVALID"
	ErrCodeStepValidationFailed    ErrorCode = "STEP_VALIDATION_FAILED"
	ErrCodePayloadValidationFailed ErrorCode = "PAYLOAD_VALIDATION_FAILED"
	ErrCodeParseError              ErrorCode = "PARSE_ERROR"

	// Pricing / checkout errors.
	ErrCodeInvalidCoupon     ErrorCode = "INVALID_COUPON"
	ErrCodePetInfoRequired   ErrorCode = "PET_INFO_REQUIRED"
	ErrCodeUnitNotFound      ErrorCode = "UNIT_NOT_FOUND"
	ErrCodeLeaseTermNotFound ErrorCode = "LEASE_TERM_NOT_FOUND"

	// External collaborator errors (retryable; form state is preserved so
	// the user can retry without re-entering data).
	ErrCodeDatabaseInsertFailed    ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateApplication    ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeScreeningSubmitFailed   ErrorCode = "SCREENING_SUBMIT_FAILED"
	ErrCodeNotificationSendFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeSearchQueryFailed       ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeDraftStorageUnavailable ErrorCode = "DRAFT_STORAGE_UNAVAILABLE"
	ErrCodeDraftCorrupt            ErrorCode = "DRAFT_CORRUPT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// NewSubmissionInvalidError reports a failed submit-time invariant along
// with the step the user should be navigated back to.
func NewSubmissionInvalidError(message string, step int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInvalid,
		Message:   message,
		Retryable: false,
		Metadata:  map[string]interface{}{"targetStep": step},
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadValidationError reports a vendor payload that failed its schema
// check before submission.
func NewPayloadValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadValidationFailed,
		Message:   "Screening payload failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertError wraps a failed persistence write.
func NewDatabaseInsertError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Failed to write application record",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateApplicationError reports an application that already exists
// for the applicant and unit.
func NewDuplicateApplicationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "An application already exists for this unit",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScreeningSubmitError wraps a failed vendor submission. The local form
// state survives so the user can retry.
func NewScreeningSubmitError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScreeningSubmitFailed,
		Message:   "Screening vendor submission failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendError wraps a failed confirmation email or SMS.
func NewNotificationSendError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send confirmation",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryError wraps a failed unit search.
func NewSearchQueryError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Unit search failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// retryCounts maps error codes to the retries granted when a job fails
// with that code.
var retryCounts = map[ErrorCode]int{
	ErrCodeDatabaseInsertFailed:    3,
	ErrCodeScreeningSubmitFailed:   3,
	ErrCodeNotificationSendFailed:  2,
	ErrCodeSearchQueryFailed:       2,
	ErrCodeDraftStorageUnavailable: 2,
}

// GetRetryCount returns how many retries a code earns; zero means throw a
// BPMN error instead of failing the job.
func GetRetryCount(code ErrorCode) int {
	return retryCounts[code]
}

// CodeOf returns the error code as a metrics label. Errors that are not
// StandardErrors report as UNKNOWN_ERROR.
func CodeOf(err error) string {
	if stdErr, ok := err.(*StandardError); ok {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}

// ConvertToBPMNError maps a StandardError onto the workflow-facing shape.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:           string(err.Code),
		Message:        err.Message,
		Details:        err.Details,
		Retryable:      err.Retryable,
		Retries:        GetRetryCount(err.Code),
		ErrorVariables: err.Metadata,
	}
}
