package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200
	StatusCreated   = 201
	StatusNoContent = 204

	// Client Error Codes (4xx)
	StatusBadRequest      = 400
	StatusUnauthorized    = 401
	StatusForbidden       = 403
	StatusNotFound        = 404
	StatusConflict        = 409
	StatusTooManyRequests = 429

	// Server Error Codes (5xx)
	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
)

// Response Messages
const (
	MsgSuccess = "Success"
	MsgCreated = "Created successfully"

	MsgBadRequest      = "Invalid request"
	MsgUnauthorized    = "Unauthorized request"
	MsgForbidden       = "You are not allowed to perform this action"
	MsgNotFound        = "Resource not found"
	MsgConflict        = "Resource already exists"
	MsgTooManyRequests = "Too many requests, please try again later"
	MsgInternalError   = "Internal server error"

	MsgTokenMissing = "Authentication token is missing"
	MsgTokenInvalid = "Invalid token"
	MsgTokenExpired = "Token has expired"

	MsgValidationError = "Validation failed"
	MsgDatabaseError   = "Database operation failed"
	MsgInvalidFormat   = "Invalid data format"
)

// ErrorCode is a hierarchical machine-readable error code.
type ErrorCode struct {
	Code        string // e.g. AUTH_001
	Category    string // e.g. Authentication
	SubCategory string // e.g. Token
	Description string
}

var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Internal system error",
	}

	ErrCodeMedia = ErrorCode{
		Code:        "SYS_002",
		Category:    "System",
		SubCategory: "Media",
		Description: "Media storage error",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuth = ErrorCode{
		Code:        "AUTH",
		Category:    "Authentication",
		SubCategory: "General",
		Description: "Generic authentication error",
	}

	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Token related error",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Credential related error",
	}

	ErrCodeAuthOwnership = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authentication",
		SubCategory: "Ownership",
		Description: "Actor does not own the resource",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Invalid input data",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Invalid data format",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Generic database error",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Database connection error",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Database query error",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Business operation error",
	}
)

// Error is the typed domain error carried from services to the response boundary.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    any
	base       *Error
}

// Error returns the message of the error
func (e *Error) Error() string {
	return e.Message
}

// Is matches errors that share the same code and message, and errors derived
// from the same base error through WithMessage or WithDetails.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if e == t || e.base == t || (t.base != nil && e.base == t.base) {
		return true
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// Unwrap exposes the wrapped cause stored in Details, if any.
func (e *Error) Unwrap() error {
	if cause, ok := e.Details.(error); ok {
		return cause
	}
	return nil
}

// WithMessage returns a copy with a different message that still matches the
// original through errors.Is.
func (e *Error) WithMessage(message string) *Error {
	c := *e
	c.Message = message
	c.base = e.root()
	return &c
}

// WithDetails returns a copy carrying extra details.
func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	c.base = e.root()
	return &c
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}
	return e
}

// NewError builds a new typed error
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

func newError(code ErrorCode, message string, statusCode int) *Error {
	return &Error{Code: code, Message: message, StatusCode: statusCode}
}

// Custom errors
var (
	// Authentication Errors
	ErrInvalidCredentials = newError(ErrCodeAuthCredentials, "Invalid user credentials", StatusUnauthorized)
	ErrTokenExpired       = newError(ErrCodeAuthToken, MsgTokenExpired, StatusUnauthorized)
	ErrTokenInvalid       = newError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized)
	ErrTokenMissing       = newError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized)
	ErrRefreshTokenReused = newError(ErrCodeAuthToken, "Refresh token is expired or used", StatusUnauthorized)
	ErrUserNotFound       = newError(ErrCodeAuthCredentials, "User does not exist", StatusNotFound)
	ErrForbidden          = newError(ErrCodeAuthOwnership, MsgForbidden, StatusForbidden)

	// Validation Errors
	ErrInvalidInput  = newError(ErrCodeValidationInput, "Invalid input data", StatusBadRequest)
	ErrInvalidFormat = newError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest)
	ErrRequiredField = newError(ErrCodeValidationInput, "Required fields are missing", StatusBadRequest)
	ErrInvalidID     = newError(ErrCodeValidationFormat, "Invalid id", StatusBadRequest)

	// Database Errors
	ErrNotFound   = newError(ErrCodeDatabaseQuery, "Data not found", StatusNotFound)
	ErrDuplicate  = newError(ErrCodeDatabaseQuery, "Data already exists", StatusConflict)
	ErrConnection = newError(ErrCodeDatabaseConnection, "Database connection error", StatusServiceUnavailable)

	// Business / system Errors
	ErrInternal         = newError(ErrCodeInternalServer, MsgInternalError, StatusInternalServerError)
	ErrUploadFailed     = newError(ErrCodeMedia, "File upload failed", StatusInternalServerError)
	ErrInvalidOperation = newError(ErrCodeBusinessOperation, "Invalid operation", StatusBadRequest)
)

// MongoDB specific errors
var (
	ErrMongoNetwork   = newError(ErrCodeDatabaseConnection, "MongoDB network error", StatusServiceUnavailable)
	ErrMongoTimeout   = newError(ErrCodeDatabaseConnection, "MongoDB operation timed out", StatusServiceUnavailable)
	ErrMongoDuplicate = ErrDuplicate.WithMessage("Duplicate data in MongoDB")
	ErrMongoQuery     = newError(ErrCodeDatabaseQuery, "MongoDB query error", StatusInternalServerError)
)

// ConvertMongoError maps driver errors onto typed errors.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate.WithDetails(err)
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork.WithDetails(err)
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout.WithDetails(err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return ErrMongoQuery.WithDetails(err)
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}

// StatusOf returns the HTTP status carried by err, 500 for untyped errors.
func StatusOf(err error) int {
	var typed *Error
	if errors.As(err, &typed) && typed.StatusCode != 0 {
		return typed.StatusCode
	}
	return StatusInternalServerError
}
