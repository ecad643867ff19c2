package tadow

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Router registers endpoints under a mount prefix. Routers can be mounted into other routers, an [App] is
// itself a router.
type Router struct {
	prefix   string
	table    *RouteTable
	reverser *Reverser
	frozen   atomic.Bool
}

// NewRouter creates a router whose endpoints are registered under the prefix.
func NewRouter(prefix string) *Router {
	return &Router{
		prefix:   prefix,
		table:    NewRouteTable(),
		reverser: NewReverser(),
	}
}

// Prefix returns the mount prefix.
func (rt *Router) Prefix() string { return rt.prefix }

// Table returns the route table. Inserting into the table of an app that is serving panics.
func (rt *Router) Table() *RouteTable { return rt.table }

// Reverse returns the url based on the name and parameter values.
func (rt *Router) Reverse(name string, vals ...string) (string, error) {
	return rt.reverser.Reverse(name, vals...)
}

// Endpoint registers the handler for the path. The full path is the router's prefix followed by path, and
// registering a full path twice fails with a registration conflict.
func (rt *Router) Endpoint(path string, h Handler, opts ...EndpointOption) error {
	rt.ensureNotFrozen()

	r, err := newRoute(rt.prefix+path, h, opts...)
	if err != nil {
		return err
	}

	return rt.insert([]*Route{r})
}

// EndpointFunc registers a handler function, see [Router.Endpoint].
func (rt *Router) EndpointFunc(path string, h HandlerFunc, opts ...EndpointOption) error {
	return rt.Endpoint(path, h, opts...)
}

// MustEndpoint is like [Router.Endpoint] but panics on registration errors.
func (rt *Router) MustEndpoint(path string, h HandlerFunc, opts ...EndpointOption) {
	if err := rt.Endpoint(path, h, opts...); err != nil {
		panic("tadow: " + err.Error())
	}
}

// Mount copies every route of sub into this router under this router's prefix. Nothing is copied if any of
// the routes, or any of their names, is already registered.
func (rt *Router) Mount(sub *Router) error {
	rt.ensureNotFrozen()

	routes := make([]*Route, 0, sub.table.Len())
	for _, r := range sub.table.Routes() {
		pr, err := r.withPrefix(rt.prefix)
		if err != nil {
			return err
		}

		routes = append(routes, pr)
	}

	if err := rt.insert(routes); err != nil {
		return errors.Wrapf(err, "failed to mount router %q", sub.prefix)
	}

	return nil
}

// insert adds all routes, or none of them.
func (rt *Router) insert(routes []*Route) error {
	paths, names := map[string]bool{}, map[string]bool{}
	for _, r := range routes {
		if _, exists := rt.table.Get(r.Path()); exists || paths[r.Path()] {
			return RegistrationConflict("%s already registered", r.Path())
		}

		if r.name != "" && (rt.reverser.Has(r.name) || names[r.name]) {
			return RegistrationConflict("pattern with name %q already exists", r.name)
		}

		paths[r.Path()], names[r.name] = true, true
	}

	for _, r := range routes {
		if err := rt.table.Insert(r); err != nil {
			return err
		}

		if r.name == "" {
			continue
		}

		if err := rt.reverser.NamedPattern(r.name, r.Path()); err != nil {
			return err
		}
	}

	return nil
}

// frozenMessage is the panic value of registrations after the first request was served.
const frozenMessage = "tadow: cannot register after serving"

func (rt *Router) freeze() {
	rt.frozen.Store(true)
	rt.table.freeze()
}

func (rt *Router) ensureNotFrozen() {
	if rt.frozen.Load() {
		panic(frozenMessage)
	}
}
