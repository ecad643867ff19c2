package tadow

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// State is a step of the pipeline.
type State int

const (
	StateReceived State = iota
	StateDecoding
	StateRouting
	StateInboundMiddleware
	StateValidating
	StateHandling
	StateOutboundMiddleware
	StateEncoding
	StateSent
	StateError
)

var stateNames = [...]string{
	"RECEIVED", "DECODING", "ROUTING", "INBOUND_MIDDLEWARE", "VALIDATING",
	"HANDLING", "OUTBOUND_MIDDLEWARE", "ENCODING", "SENT", "ERROR",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// genericErrorMessage is the payload of 500 responses when debug is off.
const genericErrorMessage = "Internal server error"

// Serve runs the pipeline for one request: the body is received and decoded, the route dispatched,
// middleware, validation and the handler are run, and the response is encoded and sent. Decoding and routing
// failures are answered directly. Other failures go through the exception handlers, and when none applies a
// generic 500 response is sent and the error is returned.
func (a *App) Serve(ctx context.Context, scope Scope, t Transport) error {
	a.freeze()

	ctx, span := a.tracer.Start(ctx, scope.Method+" "+scope.Path, trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	p := &run{app: a, ctx: ctx, span: span, scope: scope, t: t}
	err := p.serve()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

// run is the state of a single pipeline run.
type run struct {
	app   *App
	ctx   context.Context //nolint:containedctx
	span  trace.Span
	scope Scope
	t     Transport
	state State
}

func (p *run) enter(s State) error {
	p.state = s
	p.span.AddEvent("tadow.state", trace.WithAttributes(attribute.String("tadow.state", s.String())))

	if err := p.ctx.Err(); err != nil {
		return errors.Wrapf(err, "aborted before %s", s)
	}

	return nil
}

func (p *run) serve() error {
	if err := p.enter(StateReceived); err != nil {
		return err
	}

	req, err := p.receive()
	if err != nil {
		if isRequestError(err) {
			return p.reject(req, err)
		}

		return err
	}

	if err := p.enter(StateRouting); err != nil {
		return err
	}

	route, captured, err := p.app.dispatcher.Dispatch(p.app.table, req.Method, req.Path)
	if err != nil {
		return p.reject(req, err)
	}

	p.span.SetName(req.Method + " " + route.Path())
	p.span.SetAttributes(attribute.String("tadow.route", route.Path()))

	if err := p.enter(StateInboundMiddleware); err != nil {
		return err
	}

	p.app.middlewares.request(req)

	resp, handleErr := p.handle(route, req, captured)
	if handleErr != nil {
		if p.ctx.Err() != nil {
			return handleErr
		}

		if resp, err = p.recover(req, handleErr); err != nil {
			return p.fail(req, err)
		}
	}

	if err := p.enter(StateOutboundMiddleware); err != nil {
		return err
	}

	p.app.middlewares.response(resp)

	if err := p.enter(StateEncoding); err != nil {
		return err
	}

	body, err := p.app.codecs.Encode(resp.Payload, resp.ContentType)
	if err != nil {
		if handleErr != nil {
			err = errors.CombineErrors(handleErr, err)
		}

		return p.fail(req, err)
	}

	return p.transmit(resp, body)
}

// receive reads the body once and decodes it into a new request.
func (p *run) receive() (*Request, error) {
	if err := p.enter(StateDecoding); err != nil {
		return nil, err
	}

	raw, err := p.t.Receive(p.ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to receive body")
	}

	if limit := p.app.cfg.MaxBodyBytes; limit > 0 && int64(len(raw)) > limit {
		return nil, BodyTooLarge(limit)
	}

	req := &Request{
		Method:  strings.ToUpper(p.scope.Method),
		Path:    p.scope.Path,
		Headers: slices.Clone(p.scope.Headers),
		ctx:     p.ctx,
	}

	req.Cookies = ParseCookies(req.Header("Cookie"))

	ct, ok := headerValue(req.Headers, "Content-Type")
	if req.ContentType = ct; !ok || ct == "" {
		req.ContentType = p.app.cfg.DefaultContentType
	}

	if len(raw) == 0 {
		return req, nil
	}

	if !ok || ct == "" {
		return req, UnsupportedContentType("")
	}

	if req.Body, err = p.app.codecs.Decode(raw, ct); err != nil {
		return req, err
	}

	return req, nil
}

// handle binds the body, calls the handler and validates its payload.
func (p *run) handle(route *Route, req *Request, captured map[string]string) (*Response, error) {
	if err := p.enter(StateValidating); err != nil {
		return nil, err
	}

	req.Data = req.Body
	if route.inbound != nil {
		data, err := bindSchema(route.inbound, req.Body)
		if err != nil {
			return nil, err
		}

		req.Data = data
	}

	if err := p.enter(StateHandling); err != nil {
		return nil, err
	}

	res, err := route.handler.ServeTadow(p.ctx, route.args(req, captured, req.Data))
	if err != nil {
		return nil, err
	}

	if route.outbound != nil {
		payload, err := bindSchema(route.outbound, res.Payload)
		if err != nil {
			return nil, err
		}

		res.Payload = payload
	}

	return res.response(req, p.responseType(req)), nil
}

// recover asks the exception handlers for a response.
func (p *run) recover(req *Request, err error) (*Response, error) {
	h, cat, ok := p.app.exceptions.Lookup(err)
	if !ok {
		return nil, err
	}

	res, herr := h(p.ctx, err, req)
	if herr != nil {
		return nil, errors.CombineErrors(err, errors.Wrapf(herr, "exception handler for %q failed", cat))
	}

	return res.response(req, p.responseType(req)), nil
}

// reject answers decoding and routing failures directly from the error.
func (p *run) reject(req *Request, err error) error {
	p.app.logs.LogRejectedRequest(p.scope.Method, p.scope.Path, err)
	if eerr := p.enter(StateError); eerr != nil {
		return eerr
	}

	te, _ := asError(err)
	resp := &Response{
		Status:      int(te.Code()),
		ContentType: p.app.cfg.DefaultContentType,
		Payload:     te.Message(),
		req:         req,
	}

	if allowed, ok := te.Details().([]string); ok && te.Category() == CategoryMethodNotAllowed {
		resp.AddHeader("Allow", strings.Join(allowed, ", "))
	}

	return p.transmit(resp, p.encodeOrText(resp))
}

// fail sends the generic 500 response and returns the original error.
func (p *run) fail(req *Request, err error) error {
	p.app.logs.LogUnhandledError(err)
	if eerr := p.enter(StateError); eerr != nil {
		return errors.CombineErrors(err, eerr)
	}

	payload := genericErrorMessage
	if p.app.cfg.Debug {
		payload = fmt.Sprintf("%+v", err)
	}

	resp := &Response{
		Status:      http.StatusInternalServerError,
		ContentType: p.app.cfg.DefaultContentType,
		Payload:     payload,
		req:         req,
	}

	if serr := p.transmit(resp, p.encodeOrText(resp)); serr != nil {
		return errors.CombineErrors(err, serr)
	}

	return err
}

// encodeOrText encodes the payload of responses built by the pipeline itself, falling back to plain text
// when the default content type cannot encode it.
func (p *run) encodeOrText(resp *Response) []byte {
	body, err := p.app.codecs.Encode(resp.Payload, resp.ContentType)
	if err == nil {
		return body
	}

	resp.ContentType = "text/plain"
	body, _ = TextCodec{}.Encode(resp.Payload)

	return body
}

// transmit sends the start frame and then the body frame.
func (p *run) transmit(resp *Response, body []byte) error {
	if err := p.ctx.Err(); err != nil {
		return errors.Wrap(err, "aborted before sending")
	}

	hdrs := append([]Header{{Key: "Content-Type", Value: resp.ContentType}}, resp.Headers...)
	if err := p.t.Send(p.ctx, Frame{Kind: FrameStart, Status: resp.Status, Headers: hdrs}); err != nil {
		p.app.logs.LogSendError(err)
		return errors.Wrap(err, "failed to send response start")
	}

	if err := p.t.Send(p.ctx, Frame{Kind: FrameBody, Body: body}); err != nil {
		p.app.logs.LogSendError(err)
		return errors.Wrap(err, "failed to send response body")
	}

	p.span.SetAttributes(attribute.Int("http.response.status_code", resp.Status))
	if p.state != StateError {
		_ = p.enter(StateSent)
	}

	return nil
}

func (p *run) responseType(req *Request) string {
	if req != nil && req.ContentType != "" {
		if _, ok := p.app.codecs.Lookup(req.ContentType); ok {
			return req.ContentType
		}
	}

	return p.app.cfg.DefaultContentType
}

func isRequestError(err error) bool {
	switch CategoryOf(err) {
	case CategoryUnsupportedContentType, CategoryMalformedBody, CategoryBodyTooLarge:
		return true
	default:
		return false
	}
}
