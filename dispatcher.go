package tadow

// Dispatcher selects the route for a request and extracts its path parameters.
type Dispatcher interface {
	Dispatch(table *RouteTable, method, path string) (*Route, map[string]string, error)
}

// RegexDispatcher matches the path against every pattern in the table. Among the patterns that match the whole
// path, the one with the fewest captures wins, and on a tie the one registered first. A path that matches no
// pattern fails with [CategoryNotFound], a selected route that does not allow the method fails with
// [CategoryMethodNotAllowed].
type RegexDispatcher struct{}

// NewRegexDispatcher inits the default dispatcher.
func NewRegexDispatcher() RegexDispatcher { return RegexDispatcher{} }

// Dispatch implements [Dispatcher].
func (RegexDispatcher) Dispatch(table *RouteTable, method, path string) (*Route, map[string]string, error) {
	var best *Route
	var params map[string]string
	for _, r := range table.Routes() {
		vals, ok := r.match(path)
		if !ok {
			continue
		}

		if best == nil || r.pattern.Captures() < best.pattern.Captures() {
			best, params = r, vals
		}
	}

	if best == nil {
		return nil, nil, NotFound(path)
	}

	if !best.Allows(method) {
		return nil, nil, MethodNotAllowed(method, best.Methods())
	}

	return best, params, nil
}
