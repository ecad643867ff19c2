package tadow

import (
	"net/http"
)

// Response is the outgoing response of one pipeline run. Its payload is encoded exactly once, when it is sent.
type Response struct {
	Status      int
	ContentType string
	Payload     any
	Headers     []Header

	req *Request
}

// Request returns the request this response answers. It is nil for responses built before the request could
// be decoded.
func (w *Response) Request() *Request { return w.req }

// Header returns the first value of the header with the given key.
func (w *Response) Header(key string) string {
	v, _ := headerValue(w.Headers, key)
	return v
}

// AddHeader appends a header.
func (w *Response) AddHeader(key, value string) {
	w.Headers = append(w.Headers, Header{Key: key, Value: value})
}

// Result is what handlers and exception handlers return. A zero Status means 200.
type Result struct {
	Payload     any
	Status      int
	Cookies     []*Cookie
	ContentType string
}

// OK returns a result with status 200.
func OK(payload any) Result {
	return Result{Payload: payload, Status: http.StatusOK}
}

// Reply returns a result with the given status and optional cookies.
func Reply(status int, payload any, cookies ...*Cookie) Result {
	return Result{Payload: payload, Status: status, Cookies: cookies}
}

func (res Result) response(req *Request, contentType string) *Response {
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}

	if res.ContentType != "" {
		contentType = res.ContentType
	}

	w := &Response{Status: status, ContentType: contentType, Payload: res.Payload, req: req}
	for _, c := range res.Cookies {
		w.AddHeader("Set-Cookie", c.String())
	}

	return w
}
