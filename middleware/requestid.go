package middleware

import (
	"github.com/advdv/tadow"
	"github.com/google/uuid"
)

const requestIDKey = "tadow.request_id"

// RequestIDFromRequest returns the request ID stored by the RequestID middleware. Returns an empty
// string if no ID is present.
func RequestIDFromRequest(r *tadow.Request) string {
	if v, ok := r.Get(requestIDKey); ok {
		id, _ := v.(string)
		return id
	}

	return ""
}

// RequestIDConfig configures the RequestID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// Defaults to GenerateUUIDv4.
	GenerateFunc func(r *tadow.Request) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestID returns a middleware that generates or propagates a request ID header. The ID is set on both
// the request, for handlers, and the response, for the caller.
func RequestID(cfg RequestIDConfig) tadow.Middleware {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	return tadow.MiddlewareFuncs{
		Request: func(r *tadow.Request) {
			id := ""
			if cfg.TrustIncoming {
				id = r.Header(headerName)
			}

			if id == "" {
				id = generate(r)
			}

			if id != "" {
				r.SetHeader(headerName, id)
				r.Set(requestIDKey, id)
			}
		},
		Response: func(w *tadow.Response) {
			if req := w.Request(); req != nil {
				if id := RequestIDFromRequest(req); id != "" {
					w.AddHeader(headerName, id)
				}
			}
		},
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
func GenerateUUIDv4(_ *tadow.Request) string {
	return uuid.NewString()
}

// GenerateUUIDv7 returns a new time-ordered UUID v7 string, falling back to v4.
func GenerateUUIDv7(r *tadow.Request) string {
	id, err := uuid.NewV7()
	if err != nil {
		return GenerateUUIDv4(r)
	}

	return id.String()
}
