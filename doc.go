// Package tadow provides the request-handling core of a small web framework: a pipeline that decodes
// a request body, dispatches it to an endpoint, runs middleware and schema validation, and encodes the
// handler's result.
//
// # Overview
//
// An [App] serves requests delivered by a [Transport]. The transport hands over a [Scope] (method, path and
// headers), the body is received once and a response is sent as exactly two frames: a start frame with the
// status and headers, then a body frame. [App.ServeHTTP] adapts the standard library's server to this.
//
// A minimal example:
//
//	app, err := tadow.New()
//	if err != nil {
//	    return err
//	}
//
//	app.MustEndpoint("/items/{id:[0-9]+}", func(ctx context.Context, args tadow.Args) (tadow.Result, error) {
//	    item, err := db.GetItem(ctx, args.Param("id"))
//	    if err != nil {
//	        return tadow.Result{}, err
//	    }
//	    return tadow.OK(item), nil
//	}, tadow.WithName("get-item"))
//
//	http.ListenAndServe(":8080", app)
//
// # Routing
//
// Endpoint paths are patterns: literal text, "{name}" for a segment, "{name:regex}" for a constrained
// parameter or a named regexp group. The [RegexDispatcher] picks the matching route that captures the fewest
// parameters, so "/users/me" wins over "/users/{id}". The first registered route wins a tie. A path that no
// route matches results in 404, a path that matches but not for the method results in 405.
//
// A [Router] collects endpoints under a prefix and can be mounted on another router, or on the app, with
// [Router.Mount]. Named endpoints can be turned back into paths with [Router.Reverse].
//
// # Codecs
//
// The body is decoded with the [Codec] registered for the request's content type. JSON, XML and plain text
// are registered by default and [App.RegisterCodec] adds or replaces others. The response is encoded with the
// content type of the [Result], else that of the request, else the configured default. Bodies over
// [Config.MaxBodyBytes] are answered with 413 before routing.
//
// # Middleware
//
// A [Middleware] sees the request after routing and before validation, and the response after the handler.
// Both hooks run in registration order.
//
// # Errors
//
// Errors are classified by [Category]. Decoding and routing errors are answered directly from the error.
// Others are passed to the [ExceptionHandler] registered for their category, validation errors have one
// by default. Errors without a handler result in a 500 response that carries the error's stack trace when
// [Config.Debug] is set.
package tadow
