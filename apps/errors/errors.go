// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

/*
Package errors provides the error types returned by token acquisition.

Callers distinguish three kinds of failure with KindOf:

	UnsupportedOperation: the flow is not available on this platform. Nothing was attempted,
	                      so offering a different flow is the right response.
	Canceled:             the operation was aborted through its context.
	FlowFailure:          the flow ran and failed (network, UI dismissal, bad credentials, ...).
*/
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kylelemons/godebug/pretty"
)

var prettyConf = &pretty.Config{IncludeUnexported: false, SkipZeroFields: true, TrackCycles: true}

// ErrUnsupportedOperation is matched by errors.Is for any error reporting a flow that is
// unavailable on the running platform.
var ErrUnsupportedOperation = errors.New("operation not supported on this platform")

// Kind classifies a token acquisition failure.
type Kind int

const (
	// FlowFailure is any failure raised by a flow after it started.
	FlowFailure Kind = iota
	// UnsupportedOperation means the flow is unavailable on the running platform.
	UnsupportedOperation
	// Canceled means the context passed to the operation was cancelled or timed out.
	Canceled
)

func (k Kind) String() string {
	switch k {
	case UnsupportedOperation:
		return "unsupported-operation"
	case Canceled:
		return "canceled"
	default:
		return "flow-failure"
	}
}

// KindOf reports the Kind of err. A nil error has no kind and reports FlowFailure;
// check for nil first.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrUnsupportedOperation):
		return UnsupportedOperation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Canceled
	}
	return FlowFailure
}

// UnsupportedOperationError is returned when a flow is requested on a platform that
// does not support it. No handler ran and no network or UI work was done.
type UnsupportedOperationError struct {
	// Flow is the name of the requested flow.
	Flow string
	// Platform is the platform the capability check ran against.
	Platform string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s flow is not supported on platform %q", e.Flow, e.Platform)
}

// Is makes errors.Is(err, ErrUnsupportedOperation) true.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

type verboser interface {
	Verbose() string
}

// Verbose prints the most verbose error that the error message has.
func Verbose(err error) string {
	var v verboser
	if errors.As(err, &v) {
		return v.Verbose()
	}
	return err.Error()
}

// New is equivalent to errors.New().
func New(text string) error {
	return errors.New(text)
}

// CallErr represents an HTTP call error. Flow handlers return it when the identity provider
// rejects a request. Has a Verbose() method that allows getting the http.Request and
// Response objects. Implements error.
type CallErr struct {
	Req *http.Request
	// Resp contains response body
	Resp *http.Response
	Err  error
}

// Error implements error.Error().
func (e CallErr) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e CallErr) Unwrap() error {
	return e.Err
}

// Verbose prints a versbose error message with the request or response.
func (e CallErr) Verbose() string {
	if e.Resp != nil {
		resp := *e.Resp
		resp.Request = nil // This brings in a bunch of TLS state we don't need
		resp.TLS = nil
		e.Resp = &resp
	}
	return fmt.Sprintf("%s:\nRequest:\n%s\nResponse:\n%s", e.Err, prettyConf.Sprint(e.Req), prettyConf.Sprint(e.Resp))
}

// Verbose renders the error with the flow and platform fields.
func (e *UnsupportedOperationError) Verbose() string {
	return fmt.Sprintf("%s:\n%s", e.Error(), prettyConf.Sprint(e))
}
