package tadow

import (
	"context"
	"maps"
)

// Handler serves a routed request. It receives the arguments the route declared and returns a result or an
// error that the pipeline turns into a response through the exception handlers.
type Handler interface {
	ServeTadow(ctx context.Context, args Args) (Result, error)
}

// HandlerFunc allow casting a function to implement [Handler].
type HandlerFunc func(context.Context, Args) (Result, error)

// ServeTadow implements the [Handler] interface.
func (f HandlerFunc) ServeTadow(ctx context.Context, args Args) (Result, error) {
	return f(ctx, args)
}

// Args are the values a handler is called with: the request, the path parameters the route declared and the
// validated body.
type Args struct {
	req    *Request
	params map[string]string
	body   any
}

// Request returns the incoming request.
func (a Args) Request() *Request { return a.req }

// Param returns the value captured for a declared path parameter.
func (a Args) Param(name string) string { return a.params[name] }

// Params returns a copy of all declared path parameters.
func (a Args) Params() map[string]string { return maps.Clone(a.params) }

// Body returns the validated body.
func (a Args) Body() any { return a.body }

// BodyAs returns the validated body as T, typically the type bound by the route's inbound schema.
func BodyAs[T any](a Args) (T, bool) {
	v, ok := a.body.(T)
	return v, ok
}

// Schema binds structured data to a typed value, or fails with a validation error.
type Schema interface {
	Bind(data any) (any, error)
}

// SchemaFunc allows a function to implement [Schema].
type SchemaFunc func(data any) (any, error)

// Bind implements [Schema].
func (f SchemaFunc) Bind(data any) (any, error) { return f(data) }

// bindSchema binds data against s. Failures that are not yet categorized become validation errors.
func bindSchema(s Schema, data any) (any, error) {
	v, err := s.Bind(data)
	if err == nil {
		return v, nil
	}

	if CategoryOf(err) == CategoryValidation {
		return nil, err
	}

	return nil, ValidationFailed([]FieldError{{Code: "bind", Message: err.Error()}}, err)
}
