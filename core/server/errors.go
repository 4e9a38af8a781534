package server

import "errors"

var (
	// Server lifecycle errors
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrHTTPServer           = errors.New("HTTP server error")
	ErrHTTPShutdown         = errors.New("HTTP shutdown error")

	// Configuration errors
	ErrMissingAddress = errors.New("server address is required")
	ErrFailedLoadCert = errors.New("failed to load certificate")
)
