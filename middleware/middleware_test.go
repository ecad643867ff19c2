package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/advdv/tadow"
	"github.com/advdv/tadow/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	uuidV4Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	uuidV7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

func newApp(t *testing.T, mw ...tadow.Middleware) *tadow.App {
	t.Helper()
	app, err := tadow.New(tadow.WithLogger(tadow.NewTestLogger(t)), tadow.WithMiddleware(mw...))
	require.NoError(t, err)
	return app
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name           string
		config         middleware.RequestIDConfig
		incomingHeader string
		wantHeader     string
		wantGenerated  bool
	}{
		{
			name:          "generates UUID v4 by default",
			config:        middleware.RequestIDConfig{},
			wantGenerated: true,
		},
		{
			name:           "does not trust incoming by default",
			config:         middleware.RequestIDConfig{},
			incomingHeader: "existing-id",
			wantGenerated:  true,
		},
		{
			name:           "trusts incoming when configured",
			config:         middleware.RequestIDConfig{TrustIncoming: true},
			incomingHeader: "existing-id",
			wantHeader:     "existing-id",
		},
		{
			name:       "custom generate func",
			config:     middleware.RequestIDConfig{GenerateFunc: func(*tadow.Request) string { return "custom-id" }},
			wantHeader: "custom-id",
		},
		{
			name: "custom header name",
			config: middleware.RequestIDConfig{
				HeaderName:   "X-Trace-ID",
				GenerateFunc: func(*tadow.Request) string { return "trace-123" },
			},
			wantHeader: "trace-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headerName := tt.config.HeaderName
			if headerName == "" {
				headerName = "X-Request-ID"
			}

			var fromHandler, requestHeader string
			app := newApp(t, middleware.RequestID(tt.config))
			app.MustEndpoint("/test", func(_ context.Context, args tadow.Args) (tadow.Result, error) {
				fromHandler = middleware.RequestIDFromRequest(args.Request())
				requestHeader = args.Request().Header(headerName)
				return tadow.OK(nil), nil
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incomingHeader != "" {
				req.Header.Set(headerName, tt.incomingHeader)
			}

			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)

			got := rec.Header().Get(headerName)
			assert.Equal(t, got, fromHandler)
			assert.Equal(t, got, requestHeader)

			if tt.wantGenerated {
				assert.Regexp(t, uuidV4Regex, got)
				assert.NotEqual(t, tt.incomingHeader, got)
			} else {
				assert.Equal(t, tt.wantHeader, got)
			}
		})
	}
}

func TestGenerateUUIDv7(t *testing.T) {
	assert.Regexp(t, uuidV7Regex, middleware.GenerateUUIDv7(nil))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	app := newApp(t, middleware.RequestID(middleware.RequestIDConfig{
		GenerateFunc: func(*tadow.Request) string { return "req-1" },
	}), middleware.AccessLog(zap.New(core)))

	app.MustEndpoint("/ok", func(context.Context, tadow.Args) (tadow.Result, error) {
		return tadow.OK("fine"), nil
	})
	app.MustEndpoint("/bad", func(context.Context, tadow.Args) (tadow.Result, error) {
		return tadow.Reply(http.StatusConflict, "taken"), nil
	})
	app.MustEndpoint("/down", func(context.Context, tadow.Args) (tadow.Result, error) {
		return tadow.Reply(http.StatusServiceUnavailable, "later"), nil
	})

	for _, path := range []string{"/ok", "/bad", "/down"} {
		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.TakeAll()
	require.Len(t, entries, 3)

	for i, want := range []struct {
		level  zapcore.Level
		status int64
		path   string
	}{
		{zapcore.InfoLevel, 200, "/ok"},
		{zapcore.WarnLevel, 409, "/bad"},
		{zapcore.ErrorLevel, 503, "/down"},
	} {
		entry := entries[i]
		assert.Equal(t, "served request", entry.Message)
		assert.Equal(t, want.level, entry.Level)

		fields := entry.ContextMap()
		assert.Equal(t, want.status, fields["status"])
		assert.Equal(t, want.path, fields["path"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Contains(t, fields, "duration")
	}
}

func TestAccessLogLevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	app := newApp(t, middleware.AccessLog(zap.New(core)))
	app.MustEndpoint("/ok", func(context.Context, tadow.Args) (tadow.Result, error) {
		return tadow.OK("fine"), nil
	})

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Zero(t, logs.Len())
}
