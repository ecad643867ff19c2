package tadow

import (
	"slices"
	"strings"

	"github.com/advdv/tadow/internal/pathpattern"
	"github.com/samber/lo"
)

// Route binds a path pattern to a handler. Routes are immutable after registration and two routes are the
// same route when their patterns are equal.
type Route struct {
	pattern  *pathpattern.Pattern
	methods  []string
	params   []string
	inbound  Schema
	outbound Schema
	handler  Handler
	name     string
}

// EndpointOption configures a route at registration.
type EndpointOption func(*endpointOptions)

type endpointOptions struct {
	methods  []string
	params   []string
	declared bool
	inbound  Schema
	outbound Schema
	name     string
}

// WithMethods sets the allowed methods, by default only GET is allowed.
func WithMethods(methods ...string) EndpointOption {
	return func(o *endpointOptions) { o.methods = append(o.methods, methods...) }
}

// WithInbound binds request bodies against the schema before the handler is called.
func WithInbound(s Schema) EndpointOption {
	return func(o *endpointOptions) { o.inbound = s }
}

// WithOutbound validates handler payloads against the schema before they are sent.
func WithOutbound(s Schema) EndpointOption {
	return func(o *endpointOptions) { o.outbound = s }
}

// WithParams declares the path parameters the handler receives. Every name must be captured by the pattern.
// Without it, the handler receives every named capture.
func WithParams(names ...string) EndpointOption {
	return func(o *endpointOptions) { o.params, o.declared = append(o.params, names...), true }
}

// WithName names the route so its path can be reversed.
func WithName(name string) EndpointOption {
	return func(o *endpointOptions) { o.name = name }
}

func newRoute(path string, h Handler, opts ...EndpointOption) (*Route, error) {
	var o endpointOptions
	for _, opt := range opts {
		opt(&o)
	}

	pat, err := pathpattern.ParsePattern(path)
	if err != nil {
		return nil, RegistrationConflict("invalid pattern %q: %v", path, err)
	}

	if len(o.methods) < 1 {
		o.methods = []string{"GET"}
	}

	captured := pat.Names()
	if !o.declared {
		o.params = captured
	}

	for _, name := range o.params {
		if !slices.Contains(captured, name) {
			return nil, RegistrationConflict("declared parameter %q is not captured by pattern %q", name, path)
		}
	}

	return &Route{
		pattern:  pat,
		methods:  lo.Uniq(lo.Map(o.methods, func(m string, _ int) string { return strings.ToUpper(m) })),
		params:   lo.Uniq(o.params),
		inbound:  o.inbound,
		outbound: o.outbound,
		handler:  h,
		name:     o.name,
	}, nil
}

// withPrefix returns a copy of the route under the prefix.
func (r *Route) withPrefix(prefix string) (*Route, error) {
	pat, err := pathpattern.ParsePattern(prefix + r.Path())
	if err != nil {
		return nil, RegistrationConflict("invalid pattern %q: %v", prefix+r.Path(), err)
	}

	cp := *r
	cp.pattern = pat

	return &cp, nil
}

// Path returns the full path pattern, including any mount prefix.
func (r *Route) Path() string { return r.pattern.String() }

// Methods returns the allowed methods.
func (r *Route) Methods() []string { return slices.Clone(r.methods) }

// Allows reports whether the method is allowed.
func (r *Route) Allows(method string) bool { return slices.Contains(r.methods, strings.ToUpper(method)) }

// Params returns the declared path parameters.
func (r *Route) Params() []string { return slices.Clone(r.params) }

// Name returns the name of the route, if any.
func (r *Route) Name() string { return r.name }

// Inbound returns the inbound schema, if any.
func (r *Route) Inbound() Schema { return r.inbound }

// Outbound returns the outbound schema, if any.
func (r *Route) Outbound() Schema { return r.outbound }

// Handler returns the handler.
func (r *Route) Handler() Handler { return r.handler }

// Equal reports whether both routes have the same path pattern.
func (r *Route) Equal(o *Route) bool { return o != nil && r.Path() == o.Path() }

func (r *Route) String() string { return "<Route path: " + r.Path() + ">" }

// match matches path against the full pattern.
func (r *Route) match(path string) (map[string]string, bool) { return r.pattern.Match(path) }

// args selects the declared parameters from the captured values.
func (r *Route) args(req *Request, captured map[string]string, body any) Args {
	return Args{req: req, params: lo.PickByKeys(captured, r.params), body: body}
}
