// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/feedback-service/internal/model"
	"github.com/maxviazov/feedback-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrMissingFields is matched, in addition to ErrInvalidInput, when at least one
// required field was absent or blank.
var ErrMissingFields = errors.New("required fields missing")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields  []FieldError
	missing bool
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }
func (e *invalidInputError) Is(target error) bool { return e.missing && target == ErrMissingFields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError, missing bool) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe, missing: missing}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// SubmitInput is the raw submission as received from a client.
type SubmitInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Feedback string `json:"feedback"`
}

// FeedbackService defines feedback use cases.
type FeedbackService interface {
	Submit(ctx context.Context, in SubmitInput) (model.Feedback, error)
	// List returns the requested window, newest first, along with the total number of entries.
	List(ctx context.Context, page repository.Page) (repository.PageResult[model.Feedback], error)
}
