package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeConflict    ErrorType = "CONFLICT"
	ErrorTypeInternal    ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal    ErrorType = "EXTERNAL_ERROR"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidAssetType ErrorCode = "INVALID_ASSET_TYPE"

	ErrCodeEmployeeNotFound  ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeAssetNotFound     ErrorCode = "ASSET_NOT_FOUND"
	ErrCodeDuplicateEmail    ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeDuplicateSerial   ErrorCode = "DUPLICATE_SERIAL_NUMBER"
	ErrCodeDuplicateExternal ErrorCode = "DUPLICATE_EXTERNAL_ID"

	ErrCodeDirectoryAuth   ErrorCode = "DIRECTORY_AUTH_FAILED"
	ErrCodeDirectoryFetch  ErrorCode = "DIRECTORY_FETCH_FAILED"
	ErrCodeSyncInProgress  ErrorCode = "SYNC_IN_PROGRESS"
	ErrCodeMappingFailed   ErrorCode = "ENTITY_MAPPING_FAILED"
	ErrCodePersistFailed   ErrorCode = "PERSISTENCE_FAILED"
	ErrCodePhotoNotFound   ErrorCode = "PHOTO_NOT_FOUND"
	ErrCodeUnknownSyncPass ErrorCode = "UNKNOWN_SYNC_PASS"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewExternalError(message string, code ErrorCode, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

func NewUnavailableError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
	}
}

var (
	ErrEmployeeNotFound = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrAssetNotFound    = NewNotFoundError("Asset not found", ErrCodeAssetNotFound)
	ErrPhotoNotFound    = NewNotFoundError("No directory photo for employee", ErrCodePhotoNotFound)
	ErrDuplicateEmail   = NewConflictError("An employee with this email already exists", ErrCodeDuplicateEmail)
	ErrDuplicateSerial  = NewConflictError("An asset with this serial number already exists", ErrCodeDuplicateSerial)
	ErrSyncInProgress   = NewConflictError("A reconciliation run is already in progress", ErrCodeSyncInProgress)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
