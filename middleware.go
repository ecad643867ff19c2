package tadow

// Middleware intercepts every routed request before its handler runs and every response before it is sent.
// Hooks are called in registration order and may mutate what they are given. Hooks cannot fail.
type Middleware interface {
	OnRequest(r *Request)
	OnResponse(w *Response)
}

// MiddlewareFuncs allows a pair of functions to implement [Middleware], either may be nil.
type MiddlewareFuncs struct {
	Request  func(*Request)
	Response func(*Response)
}

// OnRequest implements [Middleware].
func (m MiddlewareFuncs) OnRequest(r *Request) {
	if m.Request != nil {
		m.Request(r)
	}
}

// OnResponse implements [Middleware].
func (m MiddlewareFuncs) OnResponse(w *Response) {
	if m.Response != nil {
		m.Response(w)
	}
}

// chain calls the middleware in order. Unlike handler wrapping, both the request and the response hooks run
// in the order of registration.
type chain []Middleware

func (c chain) request(r *Request) {
	for _, m := range c {
		m.OnRequest(r)
	}
}

func (c chain) response(w *Response) {
	for _, m := range c {
		m.OnResponse(w)
	}
}
