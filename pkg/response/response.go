// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
//
// Two shapes exist on the wire and existing clients depend on both:
//
//	success: {"status":"success","code":200,"message":"...","data":...}
//	error:   {"success":false,"code":500,"message":"..."}
//
// The discriminant differs in name and type between them; keep it that way.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/feedback-service/internal/repository"
	"github.com/maxviazov/feedback-service/internal/service"
	"github.com/maxviazov/feedback-service/pkg/pagination"
)

const (
	DefaultStatus       = "success"
	DefaultMessage      = "Successfully"
	DefaultErrorMessage = "Internal server error"
)

// ErrMalformedBody is reported by handlers when a request body cannot be decoded.
var ErrMalformedBody = errors.New("malformed request body")

// Envelope is the success shape. Meta is embedded by pointer so that its
// fields sit at the top level next to data and vanish when nil.
type Envelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	*Meta
}

// Meta is pagination metadata flattened into a paged Envelope.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Page is a pre-built paginated payload handed to SuccessPage.
type Page struct {
	Data any
	Meta
}

// ErrorEnvelope is the error shape.
type ErrorEnvelope struct {
	Success bool                 `json:"success"`
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Errors  []service.FieldError `json:"errors,omitempty"`
}

type options struct {
	status  string
	code    int
	message string
	fields  []service.FieldError
}

// Option overrides one of the envelope defaults.
type Option func(*options)

func WithStatus(status string) Option   { return func(o *options) { o.status = status } }
func WithCode(code int) Option          { return func(o *options) { o.code = code } }
func WithMessage(message string) Option { return func(o *options) { o.message = message } }

// WithFieldErrors attaches per-field validation details to an ErrorEnvelope.
// Success envelopes ignore it.
func WithFieldErrors(fe []service.FieldError) Option {
	return func(o *options) { o.fields = fe }
}

func apply(defaults options, opts []Option) options {
	for _, opt := range opts {
		if opt != nil {
			opt(&defaults)
		}
	}
	return defaults
}

// Success nests a raw payload under data. A nil payload is rendered as {}.
func Success(data any, opts ...Option) Envelope {
	o := apply(options{status: DefaultStatus, code: http.StatusOK, message: DefaultMessage}, opts)
	if data == nil {
		data = map[string]any{}
	}
	return Envelope{Status: o.status, Code: o.code, Message: o.message, Data: data}
}

// SuccessPage flattens a paginated payload: data and the pagination fields
// become siblings of status, code and message.
func SuccessPage(p Page, opts ...Option) Envelope {
	env := Success(p.Data, opts...)
	meta := p.Meta
	env.Meta = &meta
	return env
}

// Error builds the error shape. Defaults: code 500, "Internal server error".
func Error(opts ...Option) ErrorEnvelope {
	o := apply(options{code: http.StatusInternalServerError, message: DefaultErrorMessage}, opts)
	return ErrorEnvelope{Success: false, Code: o.code, Message: o.message, Errors: o.fields}
}

// MapError converts a domain / infrastructure error into an error envelope.
// Unknown errors collapse to the generic 500 without leaking details.
// Extend here as new domain error categories emerge.
func MapError(err error) ErrorEnvelope {
	var perr *pagination.ParameterError
	switch {
	case err == nil:
		return Error()
	case errors.As(err, &perr):
		return Error(WithCode(http.StatusBadRequest), WithMessage(perr.Error()))
	case errors.Is(err, pagination.ErrInvalidParameter):
		return Error(WithCode(http.StatusBadRequest), WithMessage("Invalid pagination parameters."))
	case errors.Is(err, ErrMalformedBody):
		return Error(WithCode(http.StatusBadRequest), WithMessage("Invalid request body"))
	case errors.Is(err, service.ErrMissingFields):
		return Error(WithCode(http.StatusBadRequest), WithMessage("All fields are required"), WithFieldErrors(service.FieldErrors(err)))
	case errors.Is(err, service.ErrInvalidInput):
		return Error(WithCode(http.StatusBadRequest), WithMessage("Invalid feedback payload"), WithFieldErrors(service.FieldErrors(err)))
	case errors.Is(err, repository.ErrNotFound):
		return Error(WithCode(http.StatusNotFound), WithMessage("Not found"))
	case errors.Is(err, repository.ErrAlreadyExists):
		return Error(WithCode(http.StatusConflict), WithMessage("Already exists"))
	case errors.Is(err, repository.ErrConflict):
		return Error(WithCode(http.StatusConflict), WithMessage("Conflict"))
	default:
		return Error()
	}
}

// Write sends a success envelope, using its code as the HTTP status.
func Write(c *gin.Context, env Envelope) {
	c.JSON(httpStatus(env.Code), env)
}

// WriteError maps err, writes the error envelope and aborts the context.
func WriteError(c *gin.Context, err error) {
	WriteErrorEnvelope(c, MapError(err))
}

// WriteErrorEnvelope sends a pre-built error envelope and aborts the context.
func WriteErrorEnvelope(c *gin.Context, env ErrorEnvelope) {
	c.AbortWithStatusJSON(httpStatus(env.Code), env)
}

// httpStatus keeps envelope codes that are not valid HTTP statuses from
// panicking the writer; the body still carries the envelope code.
func httpStatus(code int) int {
	if code < 100 || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}
