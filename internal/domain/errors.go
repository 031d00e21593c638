package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"notion-config-tool/pkg/errcodes"
)

// AppError is a domain error carrying a failure code.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

//nolint:gochecknoglobals
var (
	ErrPityMisconfigured = NewError(errcodes.PityMisconfigured, "pity threshold set but not exactly one pity row")
	ErrItemIDRequired    = NewError(errcodes.WorkshopItemIDRequired, "idItem is required")
	ErrUnknownType       = NewError(errcodes.UnknownWorkshopType, "unknown workshop type")
	ErrUnknownLotteryKey = NewError(errcodes.UnknownLotteryKey, "unknown lottery key")
	ErrInvalidManifest   = NewError(errcodes.LocalFileInvalid, "manifest is not valid JSON")
)

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}

	return e.Message
}

// Unwrap returns the cause for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is compares by code, so wrapped copies of a sentinel match it.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}

	return e.Code == other.Code
}

func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps err with a code and message.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// Wrapf adds a cause to the sentinel and keeps its code.
func (e *AppError) Wrapf(format string, args ...any) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		cause:   fmt.Errorf(format, args...),
	}
}

func IsAppError(err error) bool {
	var appErr *AppError

	return errors.As(err, &appErr)
}

// GetCode returns the code of the first AppError in the chain.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}

	return "", false
}
