// Package pinger implements a single-shot QUIC ping. A run binds a
// local endpoint, establishes a QUIC session with a fixed remote
// endpoint, opens one bidirectional stream, writes a small payload,
// and closes the send side of the stream to signal completion. The
// first failing step aborts all the subsequent ones and the failure
// is always one of the four kinds defined by the errorsx package.
//
// We never read a response: this is a fire-and-forget probe.
package pinger

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"

	"github.com/ooni/quicping/internal/errorsx"
	"github.com/ooni/quicping/internal/model"
	"github.com/ooni/quicping/internal/runtimex"
	"github.com/quic-go/quic-go"
)

const (
	// DefaultRemoteAddr is the endpoint we ping by default.
	DefaultRemoteAddr = "127.0.0.1:4433"

	// DefaultServerName is the server name we authenticate by default.
	DefaultServerName = "localhost"
)

// DefaultPayload is the payload we write when none is configured.
var DefaultPayload = []byte("ping")

// defaultALPN is the ALPN we use when none is configured. The server
// we ping speaks HTTP/3, hence "h3".
var defaultALPN = []string{"h3"}

// Pinger performs a single ping run. The zero value is valid and pings
// DefaultRemoteAddr with DefaultPayload; fields marked as OPTIONAL
// override the corresponding default. A Pinger holds no state across
// runs: every Run creates a fresh endpoint, session, and stream.
type Pinger struct {
	// ALPN OPTIONALLY overrides the ALPN.
	ALPN []string

	// InsecureSkipVerify OPTIONALLY skips certificate verification.
	InsecureSkipVerify bool

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger

	// Payload OPTIONALLY overrides the payload we write.
	Payload []byte

	// QUICConfig OPTIONALLY overrides the QUIC configuration.
	QUICConfig *quic.Config

	// RemoteAddr OPTIONALLY overrides the endpoint we ping.
	RemoteAddr string

	// RootCAs OPTIONALLY configures alternative root CAs.
	RootCAs *x509.CertPool

	// ServerName OPTIONALLY overrides the server name we authenticate.
	ServerName string

	// mockListenUDP allows to mock net.ListenUDP in tests.
	mockListenUDP func(network string, laddr *net.UDPAddr) (net.PacketConn, error)

	// mockDialEarly allows to mock (*quic.Transport).DialEarly in tests.
	mockDialEarly func(ctx context.Context, pconn net.PacketConn, raddr net.Addr,
		tlsConf *tls.Config, quicConf *quic.Config) (quic.EarlyConnection, error)
}

// Run executes the ping pipeline: bind, initiate, await, open stream,
// write, finish. Each step's success is a precondition for attempting
// the next one and there are no retries. The returned error is nil on
// success and otherwise an *errorsx.ErrWrapper carrying one of the
// four failure strings.
//
// Run does not set any timeout on its own: pass a context with a
// deadline if you need one.
func (p *Pinger) Run(ctx context.Context) error {
	runtimex.PanicIfNil(ctx, "pinger: passed a nil context")
	logger := model.ValidLoggerOrDefault(p.Logger)

	// construct the remote address and bind the local endpoint
	raddr, err := net.ResolveUDPAddr("udp", p.remoteAddr())
	if err != nil {
		return errorsx.NewErrWrapper(
			errorsx.ClassifyBindError, errorsx.BindOperation, err)
	}
	pconn, err := p.listenUDP("udp", &net.UDPAddr{})
	if err != nil {
		return errorsx.NewErrWrapper(
			errorsx.ClassifyBindError, errorsx.BindOperation, err)
	}
	defer pconn.Close()
	logger.Infof("bind address: %s", pconn.LocalAddr())

	// initiate the session
	logger.Debugf("initiate_session %s/udp...", raddr)
	conn, err := p.dialEarly(ctx, pconn, raddr)
	if err != nil {
		logger.Debugf("initiate_session %s/udp... %s", raddr, err)
		return errorsx.NewErrWrapper(
			errorsx.ClassifyInitiateError, errorsx.InitiateOperation, err)
	}
	defer conn.CloseWithError(0, "")

	// wait for the handshake to complete
	if err := awaitSession(ctx, conn); err != nil {
		logger.Debugf("await_session... %s", err)
		return errorsx.NewErrWrapper(
			errorsx.ClassifyAwaitError, errorsx.AwaitOperation, err)
	}
	logger.Infof("connected: %s (server name: %s)", raddr, p.serverName())

	// open the bidirectional stream
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		logger.Debugf("open_stream... %s", err)
		return errorsx.NewErrWrapper(
			errorsx.ClassifyOpenStreamError, errorsx.OpenStreamOperation, err)
	}
	logger.Debugf("open_stream... ok")

	// write the whole payload to the send side
	payload := p.payload()
	if err := writeAll(stream, payload); err != nil {
		logger.Debugf("write... %s", err)
		return errorsx.NewErrWrapper(
			errorsx.ClassifyWriteError, errorsx.WriteOperation, err)
	}
	logger.Debugf("write %d bytes... ok", len(payload))

	// close the send side to signal we're done
	if err := finish(ctx, conn, stream); err != nil {
		logger.Debugf("finish... %s", err)
		return errorsx.NewErrWrapper(
			errorsx.ClassifyFinishError, errorsx.FinishOperation, err)
	}
	logger.Debugf("finish... ok")
	return nil
}

// finish closes the send side of the stream and suspends until the
// half-close has been delivered or the session (or the caller's
// context) is torn down first. The stream's context completes once
// every byte we wrote, including the closing of the stream, has been
// acknowledged by the peer.
func finish(ctx context.Context, conn quic.EarlyConnection, stream quic.Stream) error {
	if err := stream.Close(); err != nil {
		return err
	}
	select {
	case <-stream.Context().Done():
		return nil
	case <-conn.Context().Done():
		return context.Cause(conn.Context())
	case <-ctx.Done():
		return ctx.Err()
	}
}

// listenUDP binds the local endpoint (unspecified address, ephemeral
// port assigned by the kernel).
func (p *Pinger) listenUDP(network string, laddr *net.UDPAddr) (net.PacketConn, error) {
	if p.mockListenUDP != nil {
		return p.mockListenUDP(network, laddr)
	}
	return net.ListenUDP(network, laddr)
}

// dialEarly starts dialing the remote endpoint. With quic-go the dial
// call also runs the handshake unless a cached session ticket allows
// for 0-RTT, so handshake-phase failures may surface here rather than
// in awaitSession; ClassifyInitiateError tells the two cases apart.
func (p *Pinger) dialEarly(ctx context.Context, pconn net.PacketConn,
	raddr net.Addr) (quic.EarlyConnection, error) {
	tlsConf := p.newTLSConfig()
	quicConf := p.QUICConfig
	if quicConf == nil {
		quicConf = &quic.Config{}
	}
	if p.mockDialEarly != nil {
		return p.mockDialEarly(ctx, pconn, raddr, tlsConf, quicConf)
	}
	tr := &quic.Transport{Conn: pconn}
	return tr.DialEarly(ctx, raddr, tlsConf, quicConf)
}

// awaitSession suspends until the handshake completes or the session
// (or the caller's context) is torn down first.
func awaitSession(ctx context.Context, conn quic.EarlyConnection) error {
	select {
	case <-conn.HandshakeComplete():
		return nil
	case <-conn.Context().Done():
		return context.Cause(conn.Context())
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writeAll writes all of data to the stream's send side. quic-go's
// Write only returns a short count together with an error, but we
// still refuse to treat a short write as success.
func writeAll(stream io.Writer, data []byte) error {
	n, err := stream.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}

func (p *Pinger) newTLSConfig() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: p.InsecureSkipVerify,
		NextProtos:         p.alpn(),
		RootCAs:            p.RootCAs,
		ServerName:         p.serverName(),
	}
}

func (p *Pinger) remoteAddr() string {
	if p.RemoteAddr != "" {
		return p.RemoteAddr
	}
	return DefaultRemoteAddr
}

func (p *Pinger) serverName() string {
	if p.ServerName != "" {
		return p.ServerName
	}
	return DefaultServerName
}

func (p *Pinger) payload() []byte {
	if p.Payload != nil {
		return p.Payload
	}
	return DefaultPayload
}

func (p *Pinger) alpn() []string {
	if len(p.ALPN) > 0 {
		return p.ALPN
	}
	return defaultALPN
}
