package pushover

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	// ErrInvalidMessage is wrapped by every [ValidationError].
	ErrInvalidMessage = errors.New("invalid pushover message")
	// ErrTransport is wrapped by every [TransportError].
	ErrTransport = errors.New("pushover request failed")
	// ErrRejected is wrapped by every [RejectionError].
	ErrRejected = errors.New("pushover rejected the request")
	// ErrUnknownSound is returned by [ParseSound].
	ErrUnknownSound = errors.New("unknown pushover sound")
)

// ValidationError reports a message that failed pre-flight checks, before
// any network activity.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidMessage, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidMessage
}

// TransportError reports a request that did not produce a usable API reply:
// network, TLS or timeout failures, or a reply body that is not a Pushover
// response document.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %v", e.Method, e.URL, e.Err)
	}

	return fmt.Sprintf("%s %s returned an unreadable response (HTTP %d): %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// RejectionError is the application-level failure carried by a [Response]
// whose status is not 1. It is only produced by [Response.Err].
type RejectionError struct {
	Request        string
	User           string
	Token          string
	Errors         []string
	HTTPStatusCode int
}

func (e *RejectionError) Error() string {
	msg := ErrRejected.Error()
	if e.Request != "" {
		msg += " " + e.Request
	}

	if len(e.Errors) == 0 {
		return msg
	}

	return msg + ": " + strings.Join(e.Errors, "; ")
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}

// IsTemporary reports whether err is a [TransportError] that may succeed if
// the caller sends the message again. The client itself never retries.
//
// HTTP 429 and 5xx replies, and connection errors, are temporary. Context
// cancellation, deadline exceeded and DNS resolution failures are not.
func IsTemporary(err error) bool {
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		return false
	}

	if transportErr.Err != nil {
		if errors.Is(transportErr.Err, context.Canceled) || errors.Is(transportErr.Err, context.DeadlineExceeded) {
			return false
		}

		var dnsErr *net.DNSError
		if errors.As(transportErr.Err, &dnsErr) {
			return false
		}

		return true
	}

	return transportErr.StatusCode == http.StatusTooManyRequests || transportErr.StatusCode >= 500
}
