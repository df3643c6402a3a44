package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/feedback-service/internal/repository"
	"github.com/maxviazov/feedback-service/internal/service"
	"github.com/maxviazov/feedback-service/pkg/pagination"
	"github.com/maxviazov/feedback-service/pkg/response"
)

// fakeInvalid mimics service aggregated validation error to test mapping without reaching into internals.
type fakeInvalid struct {
	fe      []service.FieldError
	missing bool
}

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }
func (f *fakeInvalid) Is(target error) bool         { return f.missing && target == service.ErrMissingFields }

func toMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestSuccess_Defaults(t *testing.T) {
	env := response.Success(map[string]any{"x": 1})

	assert.Equal(t, "success", env.Status)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "Successfully", env.Message)
	assert.Nil(t, env.Meta)

	out := toMap(t, env)
	assert.Equal(t, map[string]any{"status": "success", "code": float64(200), "message": "Successfully", "data": map[string]any{"x": float64(1)}}, out)
}

func TestSuccess_Overrides(t *testing.T) {
	env := response.Success([]int{1, 2}, response.WithMessage("Created"), response.WithCode(201), response.WithStatus("ok"), nil)

	assert.Equal(t, "ok", env.Status)
	assert.Equal(t, 201, env.Code)
	assert.Equal(t, "Created", env.Message)
	assert.Equal(t, []int{1, 2}, env.Data)
}

func TestSuccess_NilPayload(t *testing.T) {
	out := toMap(t, response.Success(nil))
	assert.Equal(t, map[string]any{}, out["data"])
}

func TestSuccess_FieldErrorsIgnored(t *testing.T) {
	out := toMap(t, response.Success("x", response.WithFieldErrors([]service.FieldError{{Field: "a"}})))
	assert.NotContains(t, out, "errors")
}

func TestSuccessPage_Flattened(t *testing.T) {
	env := response.SuccessPage(response.Page{
		Data: []string{"a", "b"},
		Meta: response.Meta{Page: 2, PerPage: 2, Total: 5, TotalPages: 3},
	})

	out := toMap(t, env)
	assert.Equal(t, map[string]any{
		"status":     "success",
		"code":       float64(200),
		"message":    "Successfully",
		"data":       []any{"a", "b"},
		"page":       float64(2),
		"perPage":    float64(2),
		"total":      float64(5),
		"totalPages": float64(3),
	}, out)
}

func TestSuccessPage_DoesNotAliasInput(t *testing.T) {
	p := response.Page{Data: []string{}, Meta: response.Meta{Page: 1}}
	env := response.SuccessPage(p)
	p.Meta.Page = 9
	assert.Equal(t, 1, env.Meta.Page)
}

func TestConstructorsAreIdempotent(t *testing.T) {
	assert.Equal(t, response.Success("x", response.WithCode(202)), response.Success("x", response.WithCode(202)))
	assert.Equal(t, response.Error(response.WithMessage("m")), response.Error(response.WithMessage("m")))
}

func TestError_Defaults(t *testing.T) {
	out := toMap(t, response.Error())
	assert.Equal(t, map[string]any{"success": false, "code": float64(500), "message": "Internal server error"}, out)
}

func TestError_Overrides(t *testing.T) {
	env := response.Error(
		response.WithCode(400),
		response.WithMessage("Bad"),
		response.WithStatus("ignored"),
		response.WithFieldErrors([]service.FieldError{{Field: "name", Message: "is required"}}),
	)
	out := toMap(t, env)
	assert.Equal(t, false, out["success"])
	assert.EqualValues(t, 400, out["code"])
	assert.Equal(t, "Bad", out["message"])
	assert.NotContains(t, out, "status")
	assert.Len(t, out["errors"], 1)
}

func TestMapError(t *testing.T) {
	fe := []service.FieldError{{Field: "name", Message: "is required"}}
	cases := []struct {
		name       string
		in         error
		wantCode   int
		wantMsg    string
		wantFields bool
	}{
		{"nil", nil, 500, "Internal server error", false},
		{"page", &pagination.ParameterError{Param: "page", Kind: pagination.KindMalformed}, 400, "Invalid page number.", false},
		{"wrapped perPage", fmt.Errorf("list: %w", &pagination.ParameterError{Param: "perPage", Kind: pagination.KindOutOfRange}), 400, "Invalid perPage number.", false},
		{"bare sentinel", pagination.ErrInvalidParameter, 400, "Invalid pagination parameters.", false},
		{"malformed body", response.ErrMalformedBody, 400, "Invalid request body", false},
		{"missing fields", &fakeInvalid{fe: fe, missing: true}, 400, "All fields are required", true},
		{"invalid input", &fakeInvalid{fe: fe}, 400, "Invalid feedback payload", true},
		{"not found", repository.ErrNotFound, 404, "Not found", false},
		{"already exists", fmt.Errorf("create: %w", repository.ErrAlreadyExists), 409, "Already exists", false},
		{"conflict", repository.ErrConflict, 409, "Conflict", false},
		{"unknown", errors.New("dial tcp: refused"), 500, "Internal server error", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := response.MapError(tc.in)
			assert.False(t, env.Success)
			assert.Equal(t, tc.wantCode, env.Code)
			assert.Equal(t, tc.wantMsg, env.Message)
			if tc.wantFields {
				assert.Equal(t, fe, env.Errors)
			} else {
				assert.Empty(t, env.Errors)
			}
		})
	}
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestWrite_UsesEnvelopeCode(t *testing.T) {
	c, w := newContext()
	response.Write(c, response.Success("x", response.WithCode(http.StatusAccepted)))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "x", toMapFromBody(t, w)["data"])
}

func TestWriteError_Aborts(t *testing.T) {
	c, w := newContext()
	response.WriteError(c, response.ErrMalformedBody)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", toMapFromBody(t, w)["message"])
}

func TestWriteErrorEnvelope_InvalidCodeFallsBackTo500(t *testing.T) {
	c, w := newContext()
	response.WriteErrorEnvelope(c, response.Error(response.WithCode(42)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.EqualValues(t, 42, toMapFromBody(t, w)["code"], "body keeps the envelope code")
}

func toMapFromBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
