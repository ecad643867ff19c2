package tadow

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Config holds the process-wide settings of an [App]. It is passed explicitly at construction time.
type Config struct {
	// Debug exposes error traces in the generic 500 response.
	Debug bool `env:"TADOW_DEBUG" envDefault:"false"`
	// DefaultContentType is used for responses that do not specify one, and for requests without a
	// content-type header.
	DefaultContentType string `env:"TADOW_DEFAULT_CONTENT_TYPE" envDefault:"application/json"`
	// DefaultEncoding is the character set of text bodies.
	DefaultEncoding string `env:"TADOW_DEFAULT_ENCODING" envDefault:"utf-8"`
	// MaxBodyBytes bounds the size of request bodies. Zero selects the default, a negative value disables
	// the limit.
	MaxBodyBytes int64 `env:"TADOW_MAX_BODY_BYTES" envDefault:"10485760"`
	// Extra holds application-defined settings, formatted as "key:value,key:value".
	Extra map[string]string `env:"TADOW_EXTRA"`
}

// DefaultMaxBodyBytes is the request body limit used when none is configured.
const DefaultMaxBodyBytes = 10 << 20

// DefaultConfig returns the configuration used when none is provided.
func DefaultConfig() Config {
	return Config{
		DefaultContentType: "application/json",
		DefaultEncoding:    "utf-8",
		MaxBodyBytes:       DefaultMaxBodyBytes,
	}
}

// ParseConfig reads the configuration from the environment.
func ParseConfig() (cfg Config, err error) {
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse environment")
	}

	return cfg, nil
}

// Get returns an application-defined setting.
func (c Config) Get(name string) (string, bool) {
	v, ok := c.Extra[name]
	return v, ok
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DefaultContentType == "" {
		c.DefaultContentType = def.DefaultContentType
	}

	if c.DefaultEncoding == "" {
		c.DefaultEncoding = def.DefaultEncoding
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = def.MaxBodyBytes
	}

	return c
}
