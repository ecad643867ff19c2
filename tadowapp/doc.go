// Package tadowapp hosts a tadow app as a standalone HTTP service. It parses the environment, builds a zap
// logger and an OpenTelemetry tracer provider, and runs an *http.Server, all wired with fx.
//
// Example:
//
//	type Env struct {
//	    tadowapp.BaseEnvironment
//	    DatabaseURL string `env:"DATABASE_URL,required"`
//	}
//
//	tadowapp.NewApp[Env](func(a *tadow.App, h *Handlers) {
//	    a.MustEndpoint("/items/{id}", h.GetItem, tadow.WithName("get-item"))
//	},
//	    tadowapp.WithFx(fx.Provide(NewHandlers)),
//	).Run()
//
// # Handlers
//
// Handlers reach the host through their context: [Log] returns a logger carrying the trace and span IDs, and
// [NewRequest] builds outbound HTTP calls that propagate the trace to the called service. Every request context
// carries a deadline of TADOW_REQUEST_TIMEOUT minus [DefaultShutdownBuffer], which leaves the pipeline time to
// send its error response.
package tadowapp
