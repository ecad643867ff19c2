package tadowtest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [tadowapp.BaseEnvironment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets all [tadowapp.BaseEnvironment] env vars to sensible test defaults.
// Port is required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - TADOW_SERVICE_NAME: "test"
//   - TADOW_HEALTH_PATH: "/health"
//   - TADOW_OTEL_EXPORTER: "none"
//   - TADOW_LOG_LEVEL: "error"
//
// Use the returned [Env] to override individual values:
//
//	tadowtest.SetBaseEnv(t, 18085).ServiceName("orders").Debug(true)
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("TADOW_PORT", strconv.Itoa(port))
	t.Setenv("TADOW_SERVICE_NAME", "test")
	t.Setenv("TADOW_HEALTH_PATH", "/health")
	t.Setenv("TADOW_OTEL_EXPORTER", "none")
	t.Setenv("TADOW_LOG_LEVEL", "error")
	return &Env{t: t}
}

// ServiceName overrides TADOW_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("TADOW_SERVICE_NAME", name)
	return e
}

// HealthPath overrides TADOW_HEALTH_PATH.
func (e *Env) HealthPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("TADOW_HEALTH_PATH", path)
	return e
}

// RequestTimeout overrides TADOW_REQUEST_TIMEOUT.
func (e *Env) RequestTimeout(d string) *Env {
	e.t.Helper()
	e.t.Setenv("TADOW_REQUEST_TIMEOUT", d)
	return e
}

// Debug overrides TADOW_DEBUG.
func (e *Env) Debug(on bool) *Env {
	e.t.Helper()
	e.t.Setenv("TADOW_DEBUG", strconv.FormatBool(on))
	return e
}
