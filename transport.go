package tadow

import (
	"context"
	"strings"
)

// Header is a single header key/value pair. Keys are compared case-insensitively.
type Header struct {
	Key   string
	Value string
}

// Scope is the connection-scope record the transport delivers for one request.
type Scope struct {
	Method  string
	Path    string
	Headers []Header
}

// FrameKind identifies the frames of a response.
type FrameKind int

const (
	// FrameStart carries the status and the headers.
	FrameStart FrameKind = iota + 1
	// FrameBody carries the encoded body.
	FrameBody
)

// Frame is one unit sent to the transport.
type Frame struct {
	Kind    FrameKind
	Status  int
	Headers []Header
	Body    []byte
}

// Transport is the connection the pipeline serves. Receive is called exactly once, Send exactly twice: first
// with a [FrameStart], then with a [FrameBody]. Both should return when ctx is cancelled.
type Transport interface {
	Receive(ctx context.Context) ([]byte, error)
	Send(ctx context.Context, f Frame) error
}

func headerValue(hdrs []Header, key string) (string, bool) {
	for _, h := range hdrs {
		if strings.EqualFold(h.Key, key) {
			return h.Value, true
		}
	}

	return "", false
}
