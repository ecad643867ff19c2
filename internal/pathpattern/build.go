package pathpattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Build substitutes vals for the parameters of p, in order, and returns the resulting path. Each value must
// match the expression of its parameter and literal text must not contain unescaped regular expression
// operators.
func Build(p *Pattern, vals ...string) (string, error) {
	names := p.Names()
	if len(vals) != len(names) {
		return "", fmt.Errorf("pattern %q has %d parameter(s), got %d value(s)", p, len(names), len(vals)) //nolint:goerr113
	}

	var b strings.Builder
	var idx int
	for _, s := range p.segs {
		if !s.IsParam() {
			lit, err := unescape(s.Literal)
			if err != nil {
				return "", fmt.Errorf("pattern %q is not reversible: %w", p, err)
			}

			b.WriteString(lit)
			continue
		}

		val := vals[idx]
		idx++

		re, err := regexp.Compile(`^(?:` + s.Expr + `)$`)
		if err != nil {
			return "", fmt.Errorf("invalid expression for %q: %w", s.Name, err)
		}

		if !re.MatchString(val) {
			return "", fmt.Errorf("value %q does not match %q for parameter %q", val, s.Expr, s.Name) //nolint:goerr113
		}

		b.WriteString(val)
	}

	return b.String(), nil
}

func unescape(lit string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		switch {
		case c == '\\' && i+1 < len(lit):
			i++
			b.WriteByte(lit[i])
		case strings.IndexByte(`.*+?()[]{}|^$\`, c) >= 0:
			return "", fmt.Errorf("literal %q contains operator %q", lit, c) //nolint:goerr113
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}
