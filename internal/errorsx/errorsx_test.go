package errorsx

import (
	"errors"
	"io"
	"testing"

	"github.com/quic-go/quic-go"
)

func TestErrWrapper(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := &ErrWrapper{Failure: FailureTimedOut}
		if err.Error() != FailureTimedOut {
			t.Fatal("invalid return value")
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		err := &ErrWrapper{
			Failure:    FailureStreamOpening,
			WrappedErr: io.EOF,
		}
		if !errors.Is(err, io.EOF) {
			t.Fatal("cannot unwrap error")
		}
	})
}

func TestNewErrWrapper(t *testing.T) {
	t.Run("panics if the classifier is nil", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("did not panic")
			}
		}()
		NewErrWrapper(nil, BindOperation, io.EOF)
	})

	t.Run("panics if the operation is empty", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("did not panic")
			}
		}()
		NewErrWrapper(ClassifyBindError, "", io.EOF)
	})

	t.Run("panics if the error is nil", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("did not panic")
			}
		}()
		NewErrWrapper(ClassifyBindError, BindOperation, nil)
	})

	t.Run("classifies a fresh error", func(t *testing.T) {
		err := NewErrWrapper(ClassifyOpenStreamError, OpenStreamOperation, io.EOF)
		if err.Failure != FailureStreamOpening {
			t.Fatal("invalid failure", err.Failure)
		}
		if err.Operation != OpenStreamOperation {
			t.Fatal("invalid operation", err.Operation)
		}
		if !errors.Is(err, io.EOF) {
			t.Fatal("cannot unwrap the original error")
		}
	})

	t.Run("keeps the classification of an already wrapped error", func(t *testing.T) {
		inner := NewErrWrapper(ClassifyInitiateError, InitiateOperation, io.EOF)
		outer := NewErrWrapper(ClassifyFinishError, FinishOperation, inner)
		if outer.Failure != FailureLocallyClosed {
			t.Fatal("invalid failure", outer.Failure)
		}
		if outer.Operation != InitiateOperation {
			t.Fatal("the first failing operation should win", outer.Operation)
		}
	})
}

func TestClassifyBindError(t *testing.T) {
	if failure := ClassifyBindError(io.EOF); failure != FailureQUICError {
		t.Fatal("not the failure we expected", failure)
	}
}

func TestClassifyInitiateError(t *testing.T) {
	t.Run("with a handshake timeout", func(t *testing.T) {
		err := &quic.HandshakeTimeoutError{}
		if failure := ClassifyInitiateError(err); failure != FailureTimedOut {
			t.Fatal("not the failure we expected", failure)
		}
	})

	t.Run("with an idle timeout", func(t *testing.T) {
		err := &quic.IdleTimeoutError{}
		if failure := ClassifyInitiateError(err); failure != FailureTimedOut {
			t.Fatal("not the failure we expected", failure)
		}
	})

	t.Run("with a stateless reset", func(t *testing.T) {
		err := &quic.StatelessResetError{}
		if failure := ClassifyInitiateError(err); failure != FailureTimedOut {
			t.Fatal("not the failure we expected", failure)
		}
	})

	t.Run("with a transport error", func(t *testing.T) {
		err := &quic.TransportError{ErrorCode: quic.ConnectionRefused}
		if failure := ClassifyInitiateError(err); failure != FailureTimedOut {
			t.Fatal("not the failure we expected", failure)
		}
	})

	t.Run("with a version negotiation error", func(t *testing.T) {
		err := &quic.VersionNegotiationError{}
		if failure := ClassifyInitiateError(err); failure != FailureTimedOut {
			t.Fatal("not the failure we expected", failure)
		}
	})

	t.Run("with a local error", func(t *testing.T) {
		err := errors.New("transport closed")
		if failure := ClassifyInitiateError(err); failure != FailureLocallyClosed {
			t.Fatal("not the failure we expected", failure)
		}
	})

	t.Run("with a wrapped handshake timeout", func(t *testing.T) {
		var err error = &quic.HandshakeTimeoutError{}
		err = errors.Join(err) // any wrapping must not confuse us
		if failure := ClassifyInitiateError(err); failure != FailureTimedOut {
			t.Fatal("not the failure we expected", failure)
		}
	})
}

func TestClassifyAwaitError(t *testing.T) {
	if failure := ClassifyAwaitError(io.EOF); failure != FailureTimedOut {
		t.Fatal("not the failure we expected", failure)
	}
}

func TestClassifyOpenStreamError(t *testing.T) {
	if failure := ClassifyOpenStreamError(io.EOF); failure != FailureStreamOpening {
		t.Fatal("not the failure we expected", failure)
	}
}

func TestClassifyWriteError(t *testing.T) {
	if failure := ClassifyWriteError(io.EOF); failure != FailureTimedOut {
		t.Fatal("not the failure we expected", failure)
	}
}

func TestClassifyFinishError(t *testing.T) {
	if failure := ClassifyFinishError(io.EOF); failure != FailureTimedOut {
		t.Fatal("not the failure we expected", failure)
	}
}
