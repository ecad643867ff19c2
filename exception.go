package tadow

import (
	"context"
	"net/http"
)

// ExceptionHandler turns an error into a result. It receives the request the error occurred for.
type ExceptionHandler func(ctx context.Context, err error, r *Request) (Result, error)

// Exceptions maps error categories to exception handlers. A handler for [CategoryValidation] is
// registered by default.
type Exceptions struct {
	handlers map[Category]ExceptionHandler
}

// NewExceptions creates the registry with the default validation handler.
func NewExceptions() *Exceptions {
	return &Exceptions{handlers: map[Category]ExceptionHandler{
		CategoryValidation: HandleValidationError,
	}}
}

// Register binds the handler to the category. Replacing an existing binding requires override.
func (e *Exceptions) Register(cat Category, h ExceptionHandler, override bool) error {
	if _, exists := e.handlers[cat]; exists && !override {
		return RegistrationConflict("exception handler for %q already set", cat)
	}

	e.handlers[cat] = h

	return nil
}

// Lookup finds the handler for err. The categories of the [*Error] values in the chain are tried from the
// outermost to the innermost, [CategoryHandler] is tried last.
func (e *Exceptions) Lookup(err error) (ExceptionHandler, Category, bool) {
	for _, cat := range categoriesOf(err) {
		if h, ok := e.handlers[cat]; ok {
			return h, cat, true
		}
	}

	return nil, "", false
}

// HandleValidationError renders validation errors with status 400 and the failing fields as detail.
func HandleValidationError(_ context.Context, err error, _ *Request) (Result, error) {
	detail := any([]FieldError{})
	if e, ok := asError(err); ok && e.Details() != nil {
		detail = e.Details()
	}

	return Reply(http.StatusBadRequest, map[string]any{
		"message": "Validation failed",
		"detail":  detail,
	}), nil
}
