package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// FetchError describes a failed fetch of a single URL. Status is the HTTP
// status code when the server answered with a non-success status, and zero
// when the request itself failed before a response arrived.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

// Error formats the failure with the requested URL so the message is useful
// when it ends up in a report's error list.
func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("GET %s: %s", e.URL, classifyNetworkError(e.Err))
}

// Unwrap exposes the underlying network error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// classifyNetworkError turns a Go network error into a short human-readable
// message for reports.
func classifyNetworkError(err error) string {
	if err == nil {
		return "request failed"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "request timeout"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "DNS lookup failed"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "certificate") || strings.Contains(msg, "x509"):
		return "certificate error"
	case strings.Contains(msg, "tls") || strings.Contains(msg, "TLS"):
		return "TLS handshake failed"
	case strings.Contains(msg, "connection refused"):
		return "connection refused"
	case strings.Contains(msg, "connection reset"):
		return "connection reset"
	case strings.Contains(msg, "no such host"):
		return "host not found"
	}

	return msg
}
