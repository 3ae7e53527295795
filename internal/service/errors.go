package service

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/metrics"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrNoMorePages  = errors.New("no more pages")
	ErrStorage      = errors.New("storage failure")
)

// Error is a classified failure carrying a caller-facing message. Err is the
// underlying cause, if any.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidInput(msg string) error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

func conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func noMorePages() error {
	return &Error{Kind: ErrNoMorePages, Message: "No more pages"}
}

// storageFailure logs and counts err once and wraps it as ErrStorage.
func storageFailure(log *slog.Logger, op string, err error) error {
	metrics.StorageFailuresTotal.WithLabelValues(op).Inc()
	log.Error("storage failure", slog.String("operation", op), slog.Any("error", err))
	return &Error{Kind: ErrStorage, Message: "Something went wrong", Err: err}
}

// classify maps a repository error: missing rows become ErrNotFound with
// notFoundMsg, duplicate keys become ErrConflict, anything else is a
// storage failure.
func classify(log *slog.Logger, op string, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: ErrNotFound, Message: notFoundMsg, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: ErrConflict, Message: "Resource already exists", Err: err}
	default:
		return storageFailure(log, op, err)
	}
}

// MessageOf returns the caller-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong"
}
