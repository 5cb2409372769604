package client

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// TransportError means the backend was never reached or the connection broke
// before a full response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Timeout() {
		return "request timed out"
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// APIError means the backend answered with failure semantics: a non-2xx
// status or a {success: false} envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// ParseError means the body could not be decoded or broke the envelope
// contract.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errMissingSuccess = errors.New("envelope has no success flag")
	errMissingData    = errors.New("successful envelope has no data")
	errDataAndError   = errors.New("successful envelope also carries an error")
)

const (
	KindTransport = "transport"
	KindTimeout   = "timeout"
	KindAPI       = "api"
	KindParse     = "parse"
)

// ErrorKind classifies err for diagnostics. It returns "" for errors that did
// not come out of Fetch.
func ErrorKind(err error) string {
	var transportErr *TransportError
	var apiErr *APIError
	var parseErr *ParseError
	switch {
	case errors.As(err, &transportErr):
		if transportErr.Timeout() {
			return KindTimeout
		}
		return KindTransport
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &parseErr):
		return KindParse
	}
	return ""
}

func failedStatusMessage(status int) string {
	return fmt.Sprintf("request failed (status %d)", status)
}
