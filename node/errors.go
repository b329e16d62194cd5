package node

import (
	"context"
	"errors"
	"net"
	"strings"
)

// APIError is a structured failure from the node backend. Message is
// human-readable and surfaced to the user verbatim.
type APIError struct {
	Code      int
	Message   string
	Transient bool
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrNodeUnreachable indicates the transport could not reach the node at all.
var ErrNodeUnreachable = errors.New("node unreachable")

// classifyErr wraps a transport-level failure into an APIError, marking
// connection-level problems as transient so background fetchers retry them.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Message: err.Error(), Transient: true}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &APIError{Message: err.Error(), Transient: true}
	}
	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
		return &APIError{Message: msg, Transient: true}
	}
	return &APIError{Message: msg}
}

// IsTransient reports whether err looks like a temporary backend failure.
func IsTransient(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Transient
}
