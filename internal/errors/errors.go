package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ErrorCode string

const (
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeRateLimit      ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavail ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError is the error body returned by every JSON endpoint. Field names
// the offending query parameter for validation failures.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Field      string    `json:"field,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusFor(code),
		Timestamp:  time.Now().UTC(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func InternalWrap(err error, message string) *AppError {
	return Wrap(err, CodeInternal, message)
}

// InvalidParam reports a malformed or unsupported query parameter.
func InvalidParam(field string, err error) *AppError {
	appErr := Wrap(err, CodeValidation, fmt.Sprintf("invalid %s: %v", field, err))
	appErr.Field = field
	return appErr
}

func RateLimit(message string) *AppError {
	return New(CodeRateLimit, message)
}

func ServiceUnavailable(message string) *AppError {
	return New(CodeServiceUnavail, message)
}

func statusFor(code ErrorCode) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeServiceUnavail:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type ErrorResponse struct {
	Error   *AppError `json:"error"`
	Success bool      `json:"success"`
}

// WriteError renders err as an ErrorResponse. Errors that are not an
// *AppError anywhere in their chain become a generic internal error.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, requestID string) {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		appErr = InternalWrap(err, "An unexpected error occurred")
	}
	appErr.RequestID = requestID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	if encodeErr := json.NewEncoder(w).Encode(ErrorResponse{Error: appErr}); encodeErr != nil {
		logger.Error("failed to encode error response",
			"encode_error", encodeErr,
			"original_error", err,
			"request_id", requestID,
		)
		return
	}

	level := slog.LevelError
	if appErr.StatusCode < http.StatusInternalServerError {
		level = slog.LevelWarn
	}

	logger.Log(r.Context(), level, "request failed",
		"error_code", appErr.Code,
		"error_message", appErr.Message,
		"field", appErr.Field,
		"status_code", appErr.StatusCode,
		"path", r.URL.Path,
		"request_id", requestID,
		"cause", appErr.Cause,
	)
}

type SuccessResponse struct {
	Data    any  `json:"data"`
	Success bool `json:"success"`
}

func WriteSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SuccessResponse{Data: data, Success: true})
}

func WriteSuccessWithHeaders(w http.ResponseWriter, data any, headers map[string]string) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	WriteSuccess(w, data)
}
