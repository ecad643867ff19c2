package tadow

import (
	"context"
	"strings"
)

// Request is the incoming request of one pipeline run. It is owned by that run: the pipeline fills in the
// decoded body and the validated data, middleware may read and augment it.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Headers     []Header
	Cookies     map[string]*Cookie

	// Body is the decoded body, nil when the request had none.
	Body any
	// Data is the body after binding against the route's inbound schema, or the body itself when the
	// route declares none.
	Data any

	ctx    context.Context //nolint:containedctx
	values map[string]any
}

// Header returns the first value of the header with the given key.
func (r *Request) Header(key string) string {
	v, _ := headerValue(r.Headers, key)
	return v
}

// SetHeader replaces or adds a header on the request.
func (r *Request) SetHeader(key, value string) {
	for i, h := range r.Headers {
		if strings.EqualFold(h.Key, key) {
			r.Headers[i].Value = value
			return
		}
	}

	r.Headers = append(r.Headers, Header{Key: key, Value: value})
}

// Set stores a request-scoped value, typically from middleware.
func (r *Request) Set(key string, v any) {
	if r.values == nil {
		r.values = map[string]any{}
	}

	r.values[key] = v
}

// Get returns a value stored with [Request.Set].
func (r *Request) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Context returns the context of the pipeline run.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}

	return r.ctx
}
