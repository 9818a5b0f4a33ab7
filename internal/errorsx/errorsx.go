// Package errorsx maps the errors that may occur while pinging a QUIC
// endpoint onto a closed set of failure strings. There are exactly four
// failures, one per class of failure point in the ping pipeline, and the
// mapping from the failing operation to the failure is fixed: callers
// never see an open-ended error type.
package errorsx

import (
	"errors"

	"github.com/quic-go/quic-go"
)

const (
	// FailureQUICError means we could not even construct the local
	// QUIC endpoint (UDP socket or transport).
	FailureQUICError = "quic_error"

	// FailureLocallyClosed means the local side rejected or aborted
	// the connection attempt before any handshake could proceed.
	FailureLocallyClosed = "locally_closed"

	// FailureTimedOut means that the handshake wait, the payload
	// write, or the stream finish failed. The three cases share a
	// single failure on purpose.
	FailureTimedOut = "timed_out"

	// FailureStreamOpening means the stream-open request failed.
	FailureStreamOpening = "stream_opening_error"
)

const (
	// BindOperation is the operation where we bind the local endpoint.
	BindOperation = "bind"

	// InitiateOperation is the operation where we start dialing.
	InitiateOperation = "initiate_session"

	// AwaitOperation is the operation where we wait for the handshake.
	AwaitOperation = "await_session"

	// OpenStreamOperation is the operation where we open the stream.
	OpenStreamOperation = "open_stream"

	// WriteOperation is the operation where we write the payload.
	WriteOperation = "write"

	// FinishOperation is the operation where we close the send side.
	FinishOperation = "finish"
)

// ErrWrapper is our error wrapper for Go errors. The key objective of
// this structure is to properly set Failure, which is also returned by
// the Error() method, to be one of the four failure strings above. The
// underlying error stays reachable via Unwrap for debugging but is
// never part of what Error() returns.
type ErrWrapper struct {
	// Failure is one of the FailureXXX strings.
	Failure string

	// Operation is the pipeline operation that failed.
	Operation string

	// WrappedErr is the error that we're wrapping.
	WrappedErr error
}

// Error returns the failure string for this error.
func (e *ErrWrapper) Error() string {
	return e.Failure
}

// Unwrap allows to access the underlying error.
func (e *ErrWrapper) Unwrap() error {
	return e.WrappedErr
}

// classifier is the type of the function that maps a Go error to
// one of the four failure strings.
type classifier func(err error) string

// NewErrWrapper creates a new ErrWrapper using the given classifier,
// operation name, and underlying error.
//
// This function panics if classifier is nil, or operation is the
// empty string, or error is nil.
//
// If the err argument has already been classified, the returned
// wrapper keeps the existing classification and operation: the first
// failure in the pipeline wins.
func NewErrWrapper(c classifier, op string, err error) *ErrWrapper {
	var wrapper *ErrWrapper
	if errors.As(err, &wrapper) {
		return &ErrWrapper{
			Failure:    wrapper.Failure,
			Operation:  wrapper.Operation,
			WrappedErr: err,
		}
	}
	if c == nil {
		panic("nil classifier")
	}
	if op == "" {
		panic("empty op")
	}
	if err == nil {
		panic("nil err")
	}
	return &ErrWrapper{
		Failure:    c(err),
		Operation:  op,
		WrappedErr: err,
	}
}

// ClassifyBindError maps an error occurred while binding the local
// endpoint. Every such error means we failed to construct the local
// transport context.
func ClassifyBindError(err error) string {
	return FailureQUICError
}

// ClassifyInitiateError maps an error returned by the dial call. The
// dial call also runs the handshake, so we must distinguish failures
// that happened after initiation (the handshake ran and failed, which
// is the await phase failing) from the local side refusing to even
// start (e.g., the transport is closed or misconfigured).
func ClassifyInitiateError(err error) string {
	var (
		handshakeTimeout   *quic.HandshakeTimeoutError
		idleTimeout        *quic.IdleTimeoutError
		statelessReset     *quic.StatelessResetError
		transportError     *quic.TransportError
		versionNegotiation *quic.VersionNegotiationError
	)
	if errors.As(err, &handshakeTimeout) {
		return FailureTimedOut
	}
	if errors.As(err, &idleTimeout) {
		return FailureTimedOut
	}
	if errors.As(err, &statelessReset) {
		return FailureTimedOut
	}
	if errors.As(err, &transportError) {
		return FailureTimedOut
	}
	if errors.As(err, &versionNegotiation) {
		return FailureTimedOut
	}
	return FailureLocallyClosed
}

// ClassifyAwaitError maps an error occurred while waiting for the
// handshake to complete after a successful initiation.
func ClassifyAwaitError(err error) string {
	return FailureTimedOut
}

// ClassifyOpenStreamError maps an error occurred while opening
// the bidirectional stream.
func ClassifyOpenStreamError(err error) string {
	return FailureStreamOpening
}

// ClassifyWriteError maps an error occurred while writing the
// payload. Write failures share the timed_out failure with the
// handshake wait and the finish step.
func ClassifyWriteError(err error) string {
	return FailureTimedOut
}

// ClassifyFinishError maps an error occurred while closing the
// send side of the stream.
func ClassifyFinishError(err error) string {
	return FailureTimedOut
}
