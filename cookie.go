package tadow

import (
	"net/http"
	"strings"
	"time"
)

// Cookie is a named value sent by the client, or set by a handler result.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	Domain   string
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
}

// ParseCookies parses the value of a Cookie header. Pairs are separated by ";" and split on the first "=",
// so values may contain "=". When a name occurs more than once the last value wins.
func ParseCookies(header string) map[string]*Cookie {
	cookies := map[string]*Cookie{}
	for _, raw := range strings.Split(header, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		name, value, _ := strings.Cut(raw, "=")
		if name = strings.TrimSpace(name); name == "" {
			continue
		}

		cookies[name] = &Cookie{Name: name, Value: strings.Trim(strings.TrimSpace(value), `"`)}
	}

	return cookies
}

// String renders the cookie as the value of a Set-Cookie header.
func (c *Cookie) String() string {
	return (&http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HttpOnly: c.HTTPOnly,
	}).String()
}
