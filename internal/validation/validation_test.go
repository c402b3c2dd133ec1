package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/items-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renamePayload struct {
	ID   string `param:"id" json:"-" validate:"required"`
	Name string `json:"name" validate:"required,max=5"`
}

func (p *renamePayload) Validate() error {
	return validator.New().Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "name", Message: "is reserved"}}
}

func newContext(body string, id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/items/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestBindAndValidate(t *testing.T) {
	t.Run("BindsPathAndBody", func(t *testing.T) {
		payload := &renamePayload{}
		require.NoError(t, BindAndValidate(newContext(`{"name":"abc"}`, "42"), payload))
		assert.Equal(t, "42", payload.ID)
		assert.Equal(t, "abc", payload.Name)
	})

	t.Run("FieldErrors", func(t *testing.T) {
		err := BindAndValidate(newContext(`{"name":"toolong"}`, "42"), &renamePayload{})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "name", httpErr.Errors[0].Field)
		assert.Equal(t, "must not exceed 5 characters", httpErr.Errors[0].Error)
	})

	t.Run("CustomErrors", func(t *testing.T) {
		err := BindAndValidate(newContext(`{}`, "1"), &customPayload{})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "is reserved", httpErr.Errors[0].Error)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		err := BindAndValidate(newContext(`{"name":`, "42"), &renamePayload{})

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.NotEmpty(t, httpErr.Message)
	})
}
