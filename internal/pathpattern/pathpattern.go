// Package pathpattern parses route path patterns into literal and parameter segments. Literal text is
// regular expression syntax, parameters are written as {name}, {name:expr} or (?P<name>expr).
package pathpattern

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultExpr is used for parameters that do not specify an expression.
const DefaultExpr = `[^/]+`

// Segment is one piece of a pattern. A segment with an empty Name is literal regular expression text.
type Segment struct {
	Literal string
	Name    string
	Expr    string
}

// IsParam reports whether the segment captures a named parameter.
func (s Segment) IsParam() bool { return s.Name != "" }

// Pattern is a parsed path pattern.
type Pattern struct {
	str  string
	segs []Segment
	re   *regexp.Regexp
}

// String returns the pattern as it was parsed.
func (p *Pattern) String() string { return p.str }

// Segments returns the parsed segments in order.
func (p *Pattern) Segments() []Segment { return p.segs }

// Regexp returns the compiled pattern, anchored at both ends.
func (p *Pattern) Regexp() *regexp.Regexp { return p.re }

// Names returns the names of the parameters in the order they appear.
func (p *Pattern) Names() (names []string) {
	for _, s := range p.segs {
		if s.IsParam() {
			names = append(names, s.Name)
		}
	}

	return names
}

// Captures returns the total number of capture groups, named or not.
func (p *Pattern) Captures() int { return p.re.NumSubexp() }

// Match matches path against the full pattern and returns the named parameter values.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	vals := map[string]string{}
	for i, name := range p.re.SubexpNames() {
		if name != "" && i < len(m) {
			vals[name] = m[i]
		}
	}

	return vals, true
}

// ParsePattern parses str into a pattern and compiles it.
func ParsePattern(str string) (*Pattern, error) {
	segs, err := split(str)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var expr strings.Builder
	expr.WriteString(`^(?:`)
	for _, s := range segs {
		if !s.IsParam() {
			expr.WriteString(s.Literal)
			continue
		}

		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate parameter %q in pattern %q", s.Name, str) //nolint:goerr113
		}
		seen[s.Name] = true

		fmt.Fprintf(&expr, `(?P<%s>%s)`, s.Name, s.Expr)
	}
	expr.WriteString(`)$`)

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", str, err)
	}

	return &Pattern{str: str, segs: segs, re: re}, nil
}

func split(str string) (segs []Segment, err error) {
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Segment{Literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(str); {
		switch {
		case str[i] == '\\':
			end := min(i+2, len(str))
			lit.WriteString(str[i:end])
			i = end
		case str[i] == '{':
			end, err := closing(str, i, '{', '}')
			if err != nil {
				return nil, err
			}

			name, expr, _ := strings.Cut(str[i+1:end], ":")
			if err := checkName(name, str); err != nil {
				return nil, err
			}

			if expr == "" {
				expr = DefaultExpr
			}

			flush()
			segs = append(segs, Segment{Name: name, Expr: expr})
			i = end + 1
		case strings.HasPrefix(str[i:], "(?P<") || strings.HasPrefix(str[i:], "(?<"):
			end, err := closing(str, i, '(', ')')
			if err != nil {
				return nil, err
			}

			inner := str[i+1 : end]
			inner = inner[strings.Index(inner, "<")+1:]
			name, expr, ok := strings.Cut(inner, ">")
			if !ok {
				return nil, fmt.Errorf("unterminated group name in pattern %q", str) //nolint:goerr113
			}

			if err := checkName(name, str); err != nil {
				return nil, err
			}

			flush()
			segs = append(segs, Segment{Name: name, Expr: expr})
			i = end + 1
		default:
			lit.WriteByte(str[i])
			i++
		}
	}

	flush()

	return segs, nil
}

// closing returns the index of the delimiter that closes the one at str[start]. Escapes and
// character classes are skipped.
func closing(str string, start int, open, close byte) (int, error) {
	depth, class := 0, false
	for i := start; i < len(str); i++ {
		switch c := str[i]; {
		case c == '\\':
			i++
		case class:
			class = c != ']'
		case c == '[':
			class = true
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("unbalanced %q in pattern %q", open, str) //nolint:goerr113
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkName(name, str string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid parameter name %q in pattern %q", name, str) //nolint:goerr113
	}

	return nil
}
