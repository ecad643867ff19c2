package tadow

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about important states.
type Logger interface {
	LogUnhandledError(err error)
	LogRejectedRequest(method, path string, err error)
	LogSendError(err error)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogUnhandledError(err error) {
	l.Logger.Printf("tadow: unhandled error: %s", err)
}

func (l stdLogger) LogRejectedRequest(method, path string, err error) {
	l.Logger.Printf("tadow: rejected %s %s: %s", method, path, err)
}

func (l stdLogger) LogSendError(err error) {
	l.Logger.Printf("tadow: error while sending response: %s", err)
}

func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}

	return stdLogger{l}
}

type TestLogger struct {
	tb testing.TB

	NumLogUnhandledError  int64
	NumLogRejectedRequest int64
	NumLogSendError       int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogUnhandledError(err error) {
	atomic.AddInt64(&l.NumLogUnhandledError, 1)
	l.tb.Logf("tadow: unhandled error: %s", err)
}

func (l *TestLogger) LogRejectedRequest(method, path string, err error) {
	atomic.AddInt64(&l.NumLogRejectedRequest, 1)
	l.tb.Logf("tadow: rejected %s %s: %s", method, path, err)
}

func (l *TestLogger) LogSendError(err error) {
	atomic.AddInt64(&l.NumLogSendError, 1)
	l.tb.Logf("tadow: error while sending response: %s", err)
}

var _ Logger = &TestLogger{}
