package httpserver

import "errors"

var (
	// ErrStart wraps failures bringing the listener up or serving on it.
	ErrStart = errors.New("http server failed to start")

	// ErrShutdown wraps failures draining the server cleanly.
	ErrShutdown = errors.New("http server failed to shut down cleanly")
)
