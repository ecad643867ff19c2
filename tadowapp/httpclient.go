package tadowapp

import (
	"context"
	"net/http"

	"github.com/carlmjohnson/requests"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// NewHTTPTransport creates an HTTP RoundTripper instrumented with OpenTelemetry tracing.
// Use this when a handler calls other services and the outbound requests should join the trace.
func NewHTTPTransport(tp trace.TracerProvider, prop propagation.TextMapPropagator) http.RoundTripper {
	return otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithTracerProvider(tp),
		otelhttp.WithPropagators(prop),
	)
}

// NewHTTPClient creates an *http.Client that uses the instrumented transport.
func NewHTTPClient(t http.RoundTripper) *http.Client {
	return &http.Client{Transport: t}
}

// NewRequest returns a [requests.Builder] that sends through the instrumented transport. The builder is not
// bound to ctx, pass it to Fetch so the outbound call becomes a child of the request's span.
//
//	var item Item
//	err := tadowapp.NewRequest(ctx).
//	    BaseURL("https://inventory.internal").
//	    Pathf("/items/%s", args.Param("id")).
//	    ToJSON(&item).
//	    Fetch(ctx)
func NewRequest(ctx context.Context) *requests.Builder {
	return requests.New().Transport(requestDepFromContext(ctx).transport)
}
