package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/feedback-service/internal/repository"
	"github.com/maxviazov/feedback-service/pkg/pagination"
)

// submission mirrors the stored column limits.
type submission struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,max=320,email"`
	Feedback string `json:"feedback" validate:"required,max=1000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so clients see the keys they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// normalizeSubmission trims every field and lower-cases the email, matching what gets stored.
func normalizeSubmission(in SubmitInput) submission {
	return submission{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Feedback: strings.TrimSpace(in.Feedback),
	}
}

// validateSubmission returns an aggregated invalid-input error, or nil.
func validateSubmission(s submission) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ferrs := make([]FieldError, 0, len(verrs))
	missing := false
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = true
		}
		ferrs = append(ferrs, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return newInvalidInput(ferrs, missing)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("length must be <= %s", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = pagination.DefaultPerPage
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}
