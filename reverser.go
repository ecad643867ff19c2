package tadow

import (
	"fmt"

	"github.com/advdv/tadow/internal/pathpattern"
	"github.com/samber/lo"
)

// Reverser keeps track of named patterns and allows building URLs.
type Reverser struct {
	pats map[string]*pathpattern.Pattern
}

// NewReverser inits the reverser.
func NewReverser() *Reverser {
	return &Reverser{make(map[string]*pathpattern.Pattern)}
}

// Reverse reverses the named pattern into a url.
func (r Reverser) Reverse(name string, vals ...string) (string, error) {
	pat, ok := r.pats[name]
	if !ok {
		return "", fmt.Errorf("no pattern named: %q, got: %v", name, lo.Keys(r.pats)) //nolint:goerr113
	}

	res, err := pathpattern.Build(pat, vals...)
	if err != nil {
		return "", fmt.Errorf("failed to build: %w", err)
	}

	return res, nil
}

// Has reports whether a pattern with the name exists.
func (r Reverser) Has(name string) bool {
	_, exists := r.pats[name]
	return exists
}

// NamedPattern will parse 'str' as a path pattern and store it under the name.
func (r Reverser) NamedPattern(name, str string) error {
	if r.Has(name) {
		return RegistrationConflict("pattern with name %q already exists", name)
	}

	pat, err := pathpattern.ParsePattern(str)
	if err != nil {
		return fmt.Errorf("failed to parse pattern: %w", err)
	}

	r.pats[name] = pat

	return nil
}
