package errors

import (
	"errors"
	"net/http"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrUserNotFound is returned when a user record does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("user already exists with this email")
	// ErrMobileTaken is returned when the mobile number is already registered.
	ErrMobileTaken = errors.New("user already exists with this mobile number")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrProfileNotFound is returned when no company profile exists for the caller.
	ErrProfileNotFound = errors.New("company profile not found")
	// ErrProfileExists is returned when the owner already has a company profile.
	ErrProfileExists = errors.New("company profile already exists")
	// ErrNoFieldsToUpdate is returned when a partial update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrRequiredFieldEmpty is returned when a required field is empty after trimming.
	ErrRequiredFieldEmpty = errors.New("required fields must not be empty")
	// ErrFoundedDateInFuture is returned when founded_date is after today.
	ErrFoundedDateInFuture = errors.New("founded date must not be in the future")
	// ErrOTPInvalid is returned when the submitted code does not match or has expired.
	ErrOTPInvalid = errors.New("invalid or expired verification code")
	// ErrOTPAttemptsExceeded is returned when too many codes were tried.
	ErrOTPAttemptsExceeded = errors.New("too many verification attempts, request a new code")
	// ErrNotImage is returned when an uploaded file is not an image.
	ErrNotImage = errors.New("only image files are allowed")
	// ErrFileTooLarge is returned when an uploaded file exceeds the size policy.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrMobileTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "MOBILE_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrProfileExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "PROFILE_EXISTS")
	case errors.Is(err, ErrNoFieldsToUpdate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FIELDS")
	case errors.Is(err, ErrRequiredFieldEmpty):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "REQUIRED_FIELD_EMPTY")
	case errors.Is(err, ErrFoundedDateInFuture):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FOUNDED_DATE_IN_FUTURE")
	case errors.Is(err, ErrOTPInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OTP_INVALID")
	case errors.Is(err, ErrOTPAttemptsExceeded):
		return NewHTTPError(http.StatusTooManyRequests, err.Error(), "OTP_ATTEMPTS_EXCEEDED")
	case errors.Is(err, ErrNotImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_AN_IMAGE")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FILE_TOO_LARGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

const mysqlDuplicateEntry = 1062

// IsDuplicateEntry reports whether err is a MySQL unique constraint violation.
// Concurrent creates racing on the same key are resolved by the database, and
// the loser surfaces here.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
