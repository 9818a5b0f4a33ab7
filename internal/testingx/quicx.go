// Package testingx contains in-process servers used by tests. This
// code should only be imported by test files.
package testingx

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"math/big"
	"net"
	"time"

	"github.com/ooni/quicping/internal/runtimex"
	"github.com/quic-go/quic-go"
)

// QUICServer is an in-process QUIC server bound to a loopback endpoint
// with an ephemeral port. The server accepts every incoming session,
// accepts a single stream per session, and drains it until the client
// closes its send side. Use MustNewQUICServer to construct.
type QUICServer struct {
	cancel   context.CancelFunc
	certpool *x509.CertPool
	listener *quic.Listener
	payloads chan []byte
}

// MustNewQUICServer creates a started QUICServer speaking the given
// ALPN. This function panics on failure.
func MustNewQUICServer(alpn ...string) *QUICServer {
	return MustNewQUICServerWithConfig(&quic.Config{}, alpn...)
}

// MustNewQUICServerWithConfig is like MustNewQUICServer but lets the
// caller control the QUIC configuration (e.g., to refuse incoming
// streams). This function panics on failure.
func MustNewQUICServerWithConfig(config *quic.Config, alpn ...string) *QUICServer {
	cert, certpool := mustNewServerCertificate("localhost")
	tlsConf := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS13,
		NextProtos:   alpn,
	}
	listener, err := quic.ListenAddr("127.0.0.1:0", tlsConf, config)
	runtimex.PanicOnError(err, "quic.ListenAddr failed")
	ctx, cancel := context.WithCancel(context.Background())
	srv := &QUICServer{
		cancel:   cancel,
		certpool: certpool,
		listener: listener,
		payloads: make(chan []byte, 16),
	}
	go srv.acceptLoop(ctx)
	return srv
}

// Endpoint returns the server's host:port.
func (srv *QUICServer) Endpoint() string {
	return srv.listener.Addr().String()
}

// CertPool returns a pool trusting the server's certificate.
func (srv *QUICServer) CertPool() *x509.CertPool {
	return srv.certpool
}

// Payloads returns the channel where we post the payload read from
// each stream once the client has closed its send side.
func (srv *QUICServer) Payloads() <-chan []byte {
	return srv.payloads
}

// Close stops the server.
func (srv *QUICServer) Close() error {
	srv.cancel()
	return srv.listener.Close()
}

func (srv *QUICServer) acceptLoop(ctx context.Context) {
	for {
		conn, err := srv.listener.Accept(ctx)
		if err != nil {
			return
		}
		go srv.handle(ctx, conn)
	}
}

func (srv *QUICServer) handle(ctx context.Context, conn quic.Connection) {
	defer conn.CloseWithError(0, "")
	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		return
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return
	}
	select {
	case srv.payloads <- data:
	default:
	}
}

// mustNewServerCertificate generates a self-signed certificate valid
// for the given name and for the loopback addresses, and returns it
// along with a pool trusting it.
func mustNewServerCertificate(name string) (tls.Certificate, *x509.CertPool) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	runtimex.PanicOnError(err, "rsa.GenerateKey failed")
	tmpl := &x509.Certificate{
		BasicConstraintsValid: true,
		DNSNames:              []string{name},
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		IsCA:                  true,
		KeyUsage: x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature |
			x509.KeyUsageCertSign,
		NotAfter:     time.Now().Add(24 * time.Hour),
		NotBefore:    time.Now().Add(-time.Minute),
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: name},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	runtimex.PanicOnError(err, "x509.CreateCertificate failed")
	leaf, err := x509.ParseCertificate(der)
	runtimex.PanicOnError(err, "x509.ParseCertificate failed")
	cert := tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  priv,
		Leaf:        leaf,
	}
	pool := x509.NewCertPool()
	pool.AddCert(leaf)
	return cert, pool
}
