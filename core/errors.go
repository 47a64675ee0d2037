package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// internalErrorMessage is the user-facing text for unexpected failures.
const internalErrorMessage = "An error occurred. Please contact support"

const (
	ActivationErrorBadInput      = "ACTIVATION_BAD_INPUT"
	ActivationErrorDuplicateLine = "ACTIVATION_DUPLICATE_LINE"
	ActivationErrorAccessDenied  = "ACTIVATION_ACCESS_DENIED"
	ActivationErrorNotFound      = "ACTIVATION_NOT_FOUND"
	ActivationErrorGateway       = "ACTIVATION_GATEWAY_ERROR"
	ActivationErrorInternal      = "ACTIVATION_INTERNAL_ERROR"
)

func validationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ActivationErrorBadInput)
}

func duplicateLineError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(ActivationErrorDuplicateLine)
}

func accessDeniedError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuthz).
		WithCode(http.StatusForbidden).
		WithTextCode(ActivationErrorAccessDenied)
}

func notFoundError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(ActivationErrorNotFound)
}

func systemError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ActivationErrorInternal)
}

func gatewayError(message string, cause error) *goerrors.Error {
	err := goerrors.Wrap(cause, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(ActivationErrorGateway)
	return err
}

// IsDuplicateLine reports whether the error is the duplicate-line
// specialization of a validation failure.
func IsDuplicateLine(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == ActivationErrorDuplicateLine
}

// IsValidation reports whether the error is client fixable.
func IsValidation(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	switch rich.Category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return true
	}
	return false
}

func activationErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureActivationErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate iccid"), strings.Contains(msg, "duplicate imei"):
		return ensureActivationErrorEnvelope(
			goerrors.New(err.Error(), goerrors.CategoryValidation).
				WithTextCode(ActivationErrorDuplicateLine),
		)
	case strings.Contains(msg, "not found"), strings.Contains(msg, "no rows"):
		return ensureActivationErrorEnvelope(
			goerrors.New(err.Error(), goerrors.CategoryNotFound).
				WithTextCode(ActivationErrorNotFound),
		)
	case strings.Contains(msg, "forbidden"), strings.Contains(msg, "not allowed"), strings.Contains(msg, "access"):
		return ensureActivationErrorEnvelope(
			goerrors.New(err.Error(), goerrors.CategoryAuthz).
				WithTextCode(ActivationErrorAccessDenied),
		)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "mandatory"):
		return ensureActivationErrorEnvelope(
			goerrors.New(err.Error(), goerrors.CategoryBadInput).
				WithTextCode(ActivationErrorBadInput),
		)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureActivationErrorEnvelope(mapped)
}

func ensureActivationErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = activationHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultActivationTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = internalErrorMessage
	}
	return err
}

func defaultActivationTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ActivationErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ActivationErrorAccessDenied
	case goerrors.CategoryNotFound:
		return ActivationErrorNotFound
	case goerrors.CategoryExternal:
		return ActivationErrorGateway
	default:
		return ActivationErrorInternal
	}
}

func activationHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
