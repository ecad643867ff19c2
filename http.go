package tadow

import (
	"context"
	"io"
	"net/http"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ServeHTTP makes the app implement the http.Handler interface so it can be served by the standard library's
// server. Errors that the pipeline could not answer itself result in a plain 500 response, as long as nothing
// was written yet.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t := &httpTransport{w: w, r: r, limit: a.cfg.MaxBodyBytes}
	if err := a.Serve(r.Context(), ScopeFromRequest(r), t); err != nil && !t.started {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// ScopeFromRequest turns a standard library request into the scope the pipeline serves.
func ScopeFromRequest(r *http.Request) Scope {
	keys := lo.Keys(r.Header)
	slices.Sort(keys)

	hdrs := make([]Header, 0, len(r.Header))
	for _, k := range keys {
		for _, v := range r.Header[k] {
			hdrs = append(hdrs, Header{Key: k, Value: v})
		}
	}

	return Scope{Method: r.Method, Path: r.URL.Path, Headers: hdrs}
}

type httpTransport struct {
	w       http.ResponseWriter
	r       *http.Request
	limit   int64
	started bool
}

func (t *httpTransport) Receive(context.Context) ([]byte, error) {
	if t.r.Body == nil {
		return nil, nil
	}

	body := t.r.Body
	if t.limit > 0 {
		body = http.MaxBytesReader(t.w, body, t.limit)
	}

	data, err := io.ReadAll(body)

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return nil, BodyTooLarge(maxErr.Limit)
	case err != nil:
		return nil, errors.Wrap(err, "read request body")
	}

	return data, nil
}

func (t *httpTransport) Send(_ context.Context, f Frame) error {
	switch f.Kind {
	case FrameStart:
		for _, h := range f.Headers {
			t.w.Header().Add(h.Key, h.Value)
		}

		t.w.WriteHeader(f.Status)
		t.started = true
	case FrameBody:
		if _, err := t.w.Write(f.Body); err != nil {
			return errors.Wrap(err, "write response body")
		}
	default:
		return errors.Newf("unknown frame kind: %d", f.Kind)
	}

	return nil
}
