// Package errors provides the structured error model shared by the chat API
// and the Zeebe job workers, including the mapping to BPMN errors.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	ErrCodeProfileValidationFailed ErrorCode = "PROFILE_VALIDATION_FAILED"
	ErrCodeCompanyNotFound         ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeSnapshotNotFound        ErrorCode = "SNAPSHOT_NOT_FOUND"
	ErrCodeSnapshotInvalid         ErrorCode = "SNAPSHOT_INVALID"
	ErrCodeEmptyMessage            ErrorCode = "EMPTY_MESSAGE"
	ErrCodeInvalidRequest          ErrorCode = "INVALID_REQUEST"

	ErrCodeSessionStoreFailed     ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeDatabaseError          ErrorCode = "DATABASE_ERROR"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeReportRenderFailed     ErrorCode = "REPORT_RENDER_FAILED"

	ErrCodeTimeout              ErrorCode = "TIMEOUT"
	ErrCodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error value carried across package boundaries.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the receiver.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// As extracts a *StandardError from err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}

func newError(code ErrorCode, message, details string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is the shape thrown to the workflow engine.
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

// ToErrorVariables returns the process variables attached to a failed or
// thrown job.
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

// ==========================
// 3. Error Constructors
// ==========================

func NewProfileValidationError(details string) *StandardError {
	return newError(ErrCodeProfileValidationFailed, "Company profile failed validation", details, nil)
}

func NewCompanyNotFoundError(companyID string) *StandardError {
	return newError(ErrCodeCompanyNotFound, "Company not found", fmt.Sprintf("companyId: %s", companyID), nil)
}

func NewSnapshotNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSnapshotNotFound, "No analysis stored for session", fmt.Sprintf("sessionId: %s", sessionID), nil)
}

func NewSnapshotInvalidError(err error) *StandardError {
	return newError(ErrCodeSnapshotInvalid, "Stored analysis is malformed", err.Error(), err)
}

func NewEmptyMessageError() *StandardError {
	return newError(ErrCodeEmptyMessage, "Message must not be empty", "", nil)
}

func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Invalid request", details, nil)
}

func NewSessionStoreError(op string, err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store operation failed", fmt.Sprintf("op: %s, error: %v", op, err), err)
}

func NewDatabaseError(op string, err error) *StandardError {
	return newError(ErrCodeDatabaseError, "Database operation failed", fmt.Sprintf("op: %s, error: %v", op, err), err)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed", fmt.Sprintf("channel: %s, error: %v", channel, err), err)
}

func NewReportRenderError(err error) *StandardError {
	return newError(ErrCodeReportRenderFailed, "Report rendering failed", err.Error(), err)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), err)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalServiceError, fmt.Sprintf("External service '%s' error", service), err.Error(), err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternalError, "Unexpected error", err.Error(), err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal codes to the error codes caught by boundary
// events in the analysis and chat processes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeProfileValidationFailed: "PROFILE_VALIDATION_FAILED",
	ErrCodeCompanyNotFound:         "COMPANY_NOT_FOUND",
	ErrCodeSnapshotNotFound:        "SNAPSHOT_NOT_FOUND",
	ErrCodeSnapshotInvalid:         "SNAPSHOT_INVALID",
	ErrCodeEmptyMessage:            "EMPTY_MESSAGE",
	ErrCodeInvalidRequest:          "INVALID_REQUEST",
	ErrCodeSessionStoreFailed:      "SESSION_STORE_FAILED",
	ErrCodeDatabaseError:           "DATABASE_ERROR",
	ErrCodeNotificationSendFailed:  "NOTIFICATION_SEND_FAILED",
	ErrCodeReportRenderFailed:      "REPORT_RENDER_FAILED",
}

// GetRetryCount returns how many times a job failing with code is retried.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSessionStoreFailed,
		ErrCodeDatabaseError,
		ErrCodeNotificationSendFailed,
		ErrCodeTimeout,
		ErrCodeExternalServiceError:
		return 3
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError for the workflow engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, ok := BPMNErrorMapping[stdErr.Code]
	if !ok {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsKnownCode reports whether code is one of the codes declared above.
func IsKnownCode(code ErrorCode) bool {
	if _, ok := BPMNErrorMapping[code]; ok {
		return true
	}
	switch code {
	case ErrCodeTimeout, ErrCodeExternalServiceError, ErrCodeInternalError:
		return true
	}
	return false
}

// GetErrorCategory groups codes for logging and dashboards.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROFILE") || strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "EMPTY"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SNAPSHOT") || strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "COMPANY"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "REPORT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "TIMEOUT") || strings.Contains(codeStr, "EXTERNAL"):
		return "INFRASTRUCTURE"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps a code to the status returned by the chat API.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeProfileValidationFailed, ErrCodeEmptyMessage, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeCompanyNotFound, ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeSessionStoreFailed, ErrCodeDatabaseError, ErrCodeExternalServiceError, ErrCodeNotificationSendFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
