package middleware

import (
	"time"

	"github.com/advdv/tadow"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const startedAtKey = "tadow.started_at"

// AccessLog returns a middleware that logs one line per response. Server errors are logged at error level,
// client errors at warn level and everything else at info level.
func AccessLog(logger *zap.Logger) tadow.Middleware {
	return accessLog{logger: logger, now: time.Now}
}

type accessLog struct {
	logger *zap.Logger
	now    func() time.Time
}

func (l accessLog) OnRequest(r *tadow.Request) {
	r.Set(startedAtKey, l.now())
}

func (l accessLog) OnResponse(w *tadow.Response) {
	level := zapcore.InfoLevel
	switch {
	case w.Status >= 500:
		level = zapcore.ErrorLevel
	case w.Status >= 400:
		level = zapcore.WarnLevel
	}

	ce := l.logger.Check(level, "served request")
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.Int("status", w.Status),
		zap.String("content_type", w.ContentType),
	}

	if req := w.Request(); req != nil {
		fields = append(fields,
			zap.String("method", req.Method),
			zap.String("path", req.Path))

		if v, ok := req.Get(startedAtKey); ok {
			if started, ok := v.(time.Time); ok {
				fields = append(fields, zap.Duration("duration", l.now().Sub(started)))
			}
		}

		if id := RequestIDFromRequest(req); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
	}

	ce.Write(fields...)
}
