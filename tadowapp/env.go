package tadowapp

import (
	"time"

	"github.com/advdv/tadow"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	healthPath() string
	logLevel() zapcore.Level
	otelExporter() string
	requestTimeout() time.Duration
	config() tadow.Config
}

// BaseEnvironment contains the settings of the host and of the pipeline itself.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	tadow.Config

	Port           int           `env:"TADOW_PORT" envDefault:"8080"`
	ServiceName    string        `env:"TADOW_SERVICE_NAME,required"`
	HealthPath     string        `env:"TADOW_HEALTH_PATH" envDefault:"/health"`
	LogLevel       zapcore.Level `env:"TADOW_LOG_LEVEL" envDefault:"info"`
	OtelExporter   string        `env:"TADOW_OTEL_EXPORTER" envDefault:"stdout"`
	RequestTimeout time.Duration `env:"TADOW_REQUEST_TIMEOUT" envDefault:"30s"`
}

func (e BaseEnvironment) port() int {
	return e.Port
}

func (e BaseEnvironment) serviceName() string {
	return e.ServiceName
}

func (e BaseEnvironment) healthPath() string {
	return e.HealthPath
}

func (e BaseEnvironment) logLevel() zapcore.Level {
	return e.LogLevel
}

func (e BaseEnvironment) otelExporter() string {
	return e.OtelExporter
}

func (e BaseEnvironment) requestTimeout() time.Duration {
	return e.RequestTimeout
}

func (e BaseEnvironment) config() tadow.Config {
	return e.Config
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}
		return e, nil
	}
}
