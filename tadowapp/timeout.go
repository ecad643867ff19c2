package tadowapp

import "time"

// DefaultShutdownBuffer is the default time reserved at the end of a request for the pipeline to still send its
// error response.
const DefaultShutdownBuffer = 500 * time.Millisecond

// TimeoutConfig holds timeout configuration for the HTTP server.
type TimeoutConfig struct {
	// RequestTimeout is the longest a single request may take, from TADOW_REQUEST_TIMEOUT.
	RequestTimeout time.Duration

	// ShutdownBuffer is subtracted from RequestTimeout for the deadline of the request context.
	// Defaults to DefaultShutdownBuffer.
	ShutdownBuffer time.Duration
}

// ServerTimeouts returns the http.Server timeout values. Reading and writing are bounded by the request
// timeout, headers must arrive within five seconds.
func (tc TimeoutConfig) ServerTimeouts() (readHeaderTimeout, readTimeout, writeTimeout, idleTimeout time.Duration) {
	timeout := tc.RequestTimeout
	readHeaderTimeout = min(timeout, 5*time.Second)
	readTimeout = timeout
	writeTimeout = timeout
	idleTimeout = timeout

	return
}

// HandlerTimeout is the deadline of the request context: the request timeout minus the buffer, or the full
// request timeout if the buffer does not fit.
func (tc TimeoutConfig) HandlerTimeout() time.Duration {
	buffer := tc.ShutdownBuffer
	if buffer <= 0 {
		buffer = DefaultShutdownBuffer
	}

	timeout := tc.RequestTimeout - buffer
	if timeout <= 0 {
		timeout = tc.RequestTimeout
	}

	return timeout
}
