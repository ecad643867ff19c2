package tadowapp

import (
	"testing"
	"time"

	"github.com/advdv/tadow"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEnv struct {
	level   zapcore.Level
	otelExp string
}

func (e testEnv) port() int                     { return 8080 }
func (e testEnv) serviceName() string           { return "test" }
func (e testEnv) healthPath() string            { return "/health" }
func (e testEnv) logLevel() zapcore.Level       { return e.level }
func (e testEnv) requestTimeout() time.Duration { return 30 * time.Second }
func (e testEnv) config() tadow.Config          { return tadow.DefaultConfig() }
func (e testEnv) otelExporter() string {
	if e.otelExp == "" {
		return "stdout"
	}
	return e.otelExp
}

func TestNewLogger(t *testing.T) {
	for _, level := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		t.Run(level.String(), func(t *testing.T) {
			logger, err := NewLogger(testEnv{level: level})
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if !logger.Core().Enabled(level) {
				t.Errorf("expected %s to be enabled", level)
			}
			if level > zapcore.DebugLevel && logger.Core().Enabled(level-1) {
				t.Errorf("expected %s to be disabled", level-1)
			}
		})
	}
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := newZapTadowLogger(zap.New(core))

	t.Run("unhandled error", func(t *testing.T) {
		logger.LogUnhandledError(errors.New("test handler error"))

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("expected 1 log entry, got %d", len(entries))
		}
		if entries[0].Message != "unhandled error" {
			t.Errorf("unexpected message: %s", entries[0].Message)
		}
		if entries[0].LoggerName != "tadow.app" {
			t.Errorf("unexpected logger name: %s", entries[0].LoggerName)
		}
		if entries[0].Level != zapcore.ErrorLevel {
			t.Errorf("unexpected level: %s", entries[0].Level)
		}
	})

	t.Run("rejected request", func(t *testing.T) {
		logger.LogRejectedRequest("GET", "/nope", tadow.NotFound("/nope"))

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("expected 1 log entry, got %d", len(entries))
		}
		if entries[0].Level != zapcore.InfoLevel {
			t.Errorf("unexpected level: %s", entries[0].Level)
		}

		fields := entries[0].ContextMap()
		if fields["status"] != int64(404) {
			t.Errorf("unexpected status: %v", fields["status"])
		}
		if fields["path"] != "/nope" {
			t.Errorf("unexpected path: %v", fields["path"])
		}
	})

	t.Run("send error", func(t *testing.T) {
		logger.LogSendError(errors.New("broken pipe"))

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("expected 1 log entry, got %d", len(entries))
		}
		if entries[0].Message != "error while sending response" {
			t.Errorf("unexpected message: %s", entries[0].Message)
		}
		if entries[0].Level != zapcore.WarnLevel {
			t.Errorf("unexpected level: %s", entries[0].Level)
		}
	})
}
