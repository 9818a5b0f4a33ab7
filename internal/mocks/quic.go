// Package mocks contains hand-written mocks for the external
// interfaces we depend on. Each mock is a struct with one function
// field per method, so tests only fill in what they need.
package mocks

import (
	"context"
	"net"
	"time"

	"github.com/quic-go/quic-go"
)

// QUICEarlyConnection is a mockable quic.EarlyConnection.
type QUICEarlyConnection struct {
	MockAcceptStream      func(context.Context) (quic.Stream, error)
	MockAcceptUniStream   func(context.Context) (quic.ReceiveStream, error)
	MockOpenStream        func() (quic.Stream, error)
	MockOpenStreamSync    func(ctx context.Context) (quic.Stream, error)
	MockOpenUniStream     func() (quic.SendStream, error)
	MockOpenUniStreamSync func(ctx context.Context) (quic.SendStream, error)
	MockLocalAddr         func() net.Addr
	MockRemoteAddr        func() net.Addr
	MockCloseWithError    func(code quic.ApplicationErrorCode, reason string) error
	MockContext           func() context.Context
	MockConnectionState   func() quic.ConnectionState
	MockSendDatagram      func(b []byte) error
	MockReceiveDatagram   func(ctx context.Context) ([]byte, error)
	MockHandshakeComplete func() <-chan struct{}
	MockNextConnection    func(ctx context.Context) (quic.Connection, error)
}

var _ quic.EarlyConnection = &QUICEarlyConnection{}

// AcceptStream calls MockAcceptStream.
func (c *QUICEarlyConnection) AcceptStream(ctx context.Context) (quic.Stream, error) {
	return c.MockAcceptStream(ctx)
}

// AcceptUniStream calls MockAcceptUniStream.
func (c *QUICEarlyConnection) AcceptUniStream(ctx context.Context) (quic.ReceiveStream, error) {
	return c.MockAcceptUniStream(ctx)
}

// OpenStream calls MockOpenStream.
func (c *QUICEarlyConnection) OpenStream() (quic.Stream, error) {
	return c.MockOpenStream()
}

// OpenStreamSync calls MockOpenStreamSync.
func (c *QUICEarlyConnection) OpenStreamSync(ctx context.Context) (quic.Stream, error) {
	return c.MockOpenStreamSync(ctx)
}

// OpenUniStream calls MockOpenUniStream.
func (c *QUICEarlyConnection) OpenUniStream() (quic.SendStream, error) {
	return c.MockOpenUniStream()
}

// OpenUniStreamSync calls MockOpenUniStreamSync.
func (c *QUICEarlyConnection) OpenUniStreamSync(ctx context.Context) (quic.SendStream, error) {
	return c.MockOpenUniStreamSync(ctx)
}

// LocalAddr calls MockLocalAddr.
func (c *QUICEarlyConnection) LocalAddr() net.Addr {
	return c.MockLocalAddr()
}

// RemoteAddr calls MockRemoteAddr.
func (c *QUICEarlyConnection) RemoteAddr() net.Addr {
	return c.MockRemoteAddr()
}

// CloseWithError calls MockCloseWithError.
func (c *QUICEarlyConnection) CloseWithError(
	code quic.ApplicationErrorCode, reason string) error {
	return c.MockCloseWithError(code, reason)
}

// Context calls MockContext.
func (c *QUICEarlyConnection) Context() context.Context {
	return c.MockContext()
}

// ConnectionState calls MockConnectionState.
func (c *QUICEarlyConnection) ConnectionState() quic.ConnectionState {
	return c.MockConnectionState()
}

// SendDatagram calls MockSendDatagram.
func (c *QUICEarlyConnection) SendDatagram(b []byte) error {
	return c.MockSendDatagram(b)
}

// ReceiveDatagram calls MockReceiveDatagram.
func (c *QUICEarlyConnection) ReceiveDatagram(ctx context.Context) ([]byte, error) {
	return c.MockReceiveDatagram(ctx)
}

// HandshakeComplete calls MockHandshakeComplete.
func (c *QUICEarlyConnection) HandshakeComplete() <-chan struct{} {
	return c.MockHandshakeComplete()
}

// NextConnection calls MockNextConnection.
func (c *QUICEarlyConnection) NextConnection(ctx context.Context) (quic.Connection, error) {
	return c.MockNextConnection(ctx)
}

// QUICStream is a mockable quic.Stream.
type QUICStream struct {
	MockStreamID         func() quic.StreamID
	MockRead             func(b []byte) (int, error)
	MockCancelRead       func(code quic.StreamErrorCode)
	MockSetReadDeadline  func(t time.Time) error
	MockWrite            func(b []byte) (int, error)
	MockClose            func() error
	MockCancelWrite      func(code quic.StreamErrorCode)
	MockContext          func() context.Context
	MockSetWriteDeadline func(t time.Time) error
	MockSetDeadline      func(t time.Time) error
}

var _ quic.Stream = &QUICStream{}

// StreamID calls MockStreamID.
func (s *QUICStream) StreamID() quic.StreamID {
	return s.MockStreamID()
}

// Read calls MockRead.
func (s *QUICStream) Read(b []byte) (int, error) {
	return s.MockRead(b)
}

// CancelRead calls MockCancelRead.
func (s *QUICStream) CancelRead(code quic.StreamErrorCode) {
	s.MockCancelRead(code)
}

// SetReadDeadline calls MockSetReadDeadline.
func (s *QUICStream) SetReadDeadline(t time.Time) error {
	return s.MockSetReadDeadline(t)
}

// Write calls MockWrite.
func (s *QUICStream) Write(b []byte) (int, error) {
	return s.MockWrite(b)
}

// Close calls MockClose.
func (s *QUICStream) Close() error {
	return s.MockClose()
}

// CancelWrite calls MockCancelWrite.
func (s *QUICStream) CancelWrite(code quic.StreamErrorCode) {
	s.MockCancelWrite(code)
}

// Context calls MockContext.
func (s *QUICStream) Context() context.Context {
	return s.MockContext()
}

// SetWriteDeadline calls MockSetWriteDeadline.
func (s *QUICStream) SetWriteDeadline(t time.Time) error {
	return s.MockSetWriteDeadline(t)
}

// SetDeadline calls MockSetDeadline.
func (s *QUICStream) SetDeadline(t time.Time) error {
	return s.MockSetDeadline(t)
}
