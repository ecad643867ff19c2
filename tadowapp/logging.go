package tadowapp

import (
	"github.com/advdv/tadow"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment.
// TADOW_LOG_LEVEL controls the level (debug, info, warn, error).
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogUnhandledError(err error) {
	l.Logger.Error("unhandled error", zap.Error(err))
}

func (l zapLogger) LogRejectedRequest(method, path string, err error) {
	l.Logger.Info("rejected request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", int(tadow.CodeOf(err))),
		zap.Error(err))
}

func (l zapLogger) LogSendError(err error) {
	l.Logger.Warn("error while sending response", zap.Error(err))
}

func newZapTadowLogger(l *zap.Logger) tadow.Logger {
	return zapLogger{l.Named("tadow").Named("app")}
}
