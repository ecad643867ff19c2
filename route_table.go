package tadow

import (
	"slices"
	"sync/atomic"
)

// RouteTable maps full path patterns to routes and remembers the order of registration.
type RouteTable struct {
	order  []string
	routes map[string]*Route
	frozen atomic.Bool
}

// NewRouteTable creates an empty table.
func NewRouteTable() *RouteTable {
	return &RouteTable{routes: map[string]*Route{}}
}

// Insert adds the route. It fails with a registration conflict if its path is already present.
func (t *RouteTable) Insert(r *Route) error {
	if t.frozen.Load() {
		panic(frozenMessage)
	}

	if _, exists := t.routes[r.Path()]; exists {
		return RegistrationConflict("%s already registered", r.Path())
	}

	t.order = append(t.order, r.Path())
	t.routes[r.Path()] = r

	return nil
}

// Get returns the route registered under the full path pattern.
func (t *RouteTable) Get(path string) (*Route, bool) {
	r, ok := t.routes[path]
	return r, ok
}

// Routes returns the routes in registration order.
func (t *RouteTable) Routes() []*Route {
	out := make([]*Route, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, t.routes[p])
	}

	return out
}

// Paths returns the registered path patterns in registration order.
func (t *RouteTable) Paths() []string { return slices.Clone(t.order) }

// Len returns the number of routes.
func (t *RouteTable) Len() int { return len(t.order) }

func (t *RouteTable) freeze() { t.frozen.Store(true) }
