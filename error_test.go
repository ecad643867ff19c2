package tadow_test

import (
	"testing"

	"github.com/advdv/tadow"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	err1 := tadow.NewError(tadow.CategoryHandler, tadow.CodeBadRequest, errors.New("foo"))
	require.Equal(t, tadow.Code(400), err1.Code())
	require.Equal(t, tadow.CodeBadRequest, tadow.CodeOf(err1))
	require.Equal(t, "Bad Request: foo", err1.Error())

	require.Equal(t, tadow.CodeUnknown, tadow.CodeOf(errors.New("bar")))
	require.Equal(t, "Unknown: rab", tadow.NewError(tadow.CategoryHandler, 900, errors.New("rab")).Error())
}

func TestErrorCategoryDefaults(t *testing.T) {
	for cat, code := range map[tadow.Category]tadow.Code{
		tadow.CategoryNotFound:               tadow.CodeNotFound,
		tadow.CategoryMethodNotAllowed:       tadow.CodeMethodNotAllowed,
		tadow.CategoryUnsupportedContentType: tadow.CodeUnsupportedMediaType,
		tadow.CategoryMalformedBody:          tadow.CodeBadRequest,
		tadow.CategoryBodyTooLarge:           tadow.CodeRequestEntityTooLarge,
		tadow.CategoryValidation:             tadow.CodeBadRequest,
		tadow.CategoryHandler:                tadow.CodeInternalServerError,
		tadow.Category("custom"):             tadow.CodeInternalServerError,
	} {
		require.Equal(t, code, tadow.NewError(cat, tadow.CodeUnknown, nil).Code(), cat)
	}
}

func TestCategoryOf(t *testing.T) {
	require.Equal(t, tadow.Category(""), tadow.CategoryOf(nil))
	require.Equal(t, tadow.CategoryHandler, tadow.CategoryOf(errors.New("boom")))
	require.Equal(t, tadow.CategoryNotFound, tadow.CategoryOf(tadow.NotFound("/x")))

	wrapped := errors.Wrap(tadow.NotFound("/x"), "while dispatching")
	require.Equal(t, tadow.CategoryNotFound, tadow.CategoryOf(wrapped))
	require.Equal(t, tadow.CodeNotFound, tadow.CodeOf(wrapped))
}

func TestErrorConstructors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := tadow.NotFound("/unknown")
		require.Equal(t, "Not found: /unknown", err.Message())
		require.Equal(t, "Not Found: Not found: /unknown", err.Error())
	})

	t.Run("method not allowed carries allowed methods", func(t *testing.T) {
		err := tadow.MethodNotAllowed("POST", []string{"GET"})
		require.Equal(t, tadow.CategoryMethodNotAllowed, err.Category())
		require.Equal(t, []string{"GET"}, err.Details())
		require.Equal(t, "Method not allowed: POST", err.Message())
	})

	t.Run("malformed body wraps its cause", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := tadow.MalformedBody(cause)
		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Message(), "Invalid request data")
		require.Equal(t, tadow.CodeBadRequest, err.Code())
	})

	t.Run("unsupported content type", func(t *testing.T) {
		err := tadow.UnsupportedContentType("application/yaml")
		require.Equal(t, tadow.CodeUnsupportedMediaType, err.Code())
		require.Contains(t, err.Message(), `"application/yaml"`)
	})

	t.Run("validation failed carries fields", func(t *testing.T) {
		fields := []tadow.FieldError{{Path: "name", Code: "required", Message: "name is required"}}
		err := tadow.ValidationFailed(fields, nil)
		require.Equal(t, tadow.CategoryValidation, err.Category())
		require.Equal(t, fields, err.Details())
		require.Equal(t, "validation failed", err.Message())
	})

	t.Run("registration conflict", func(t *testing.T) {
		err := tadow.RegistrationConflict("%s already registered", "/a")
		require.Equal(t, tadow.CategoryRegistrationConflict, err.Category())
		require.Equal(t, "/a already registered", err.Message())
	})
}
