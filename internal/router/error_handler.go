package router

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"companyhub/internal/config"
	apperr "companyhub/internal/errors"
	"companyhub/internal/handler"
)

// NewErrorHandler returns the single top-level error handler producing the
// uniform error envelope. Full detail is logged server-side; clients get a
// generic message for unexpected failures, plus a stack trace outside
// production.
func NewErrorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	production := cfg.Env == "production"

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status = http.StatusInternalServerError
			body   = handler.ErrorBody{Success: false, Message: "Internal Server Error"}
		)

		var validationErrs validator.ValidationErrors
		var httpErr *apperr.HTTPError
		var echoErr *echo.HTTPError

		switch {
		case errors.As(err, &validationErrs):
			status = http.StatusBadRequest
			body.Message = "Validation failed"
			body.Errors = fieldErrors(validationErrs)

		case errors.As(err, &httpErr):
			status = httpErr.StatusCode
			body.Message = httpErr.Message

		case errors.As(err, &echoErr):
			status = echoErr.Code
			body.Message = fmt.Sprintf("%v", echoErr.Message)

		default:
			log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
			if !production {
				body.Stack = fmt.Sprintf("%v\n%s", err, debug.Stack())
			}
		}

		if status >= http.StatusInternalServerError {
			log.Errorf("%s %s -> %d: %v", c.Request().Method, c.Request().URL.Path, status, err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func fieldErrors(errs validator.ValidationErrors) []handler.FieldError {
	out := make([]handler.FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, handler.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid id"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain digits only"
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", fe.Param())
	case "mobile":
		return "must be a valid mobile number in international format"
	case "password":
		return "must contain an uppercase letter, a lowercase letter, a digit and a special character"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
