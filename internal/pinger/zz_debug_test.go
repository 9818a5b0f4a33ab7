package pinger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/ooni/quicping/internal/testingx"
	"github.com/quic-go/quic-go"
)

func TestZZDebugNoListener(t *testing.T) {
	pconn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	endpoint := pconn.LocalAddr().String()
	pconn.Close()
	p := &Pinger{
		Logger:     log.Log,
		RemoteAddr: endpoint,
		QUICConfig: &quic.Config{
			HandshakeIdleTimeout: 500 * time.Millisecond,
		},
	}
	err = p.Run(context.Background())
	for e := err; e != nil; e = errors.Unwrap(e) {
		t.Logf("error in chain: %T %v", e, e)
	}
	var hto *quic.HandshakeTimeoutError
	t.Logf("as HandshakeTimeoutError: %v", errors.As(err, &hto))
}

func TestZZDebugAccepting(t *testing.T) {
	srv := testingx.MustNewQUICServer("h3")
	defer srv.Close()
	p := &Pinger{
		Logger:     log.Log,
		RemoteAddr: srv.Endpoint(),
		RootCAs:    srv.CertPool(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	start := time.Now()
	err := p.Run(ctx)
	t.Logf("Run took %v err=%v", time.Since(start), err)
	select {
	case payload := <-srv.Payloads():
		t.Logf("payload: %q", payload)
	case <-time.After(3 * time.Second):
		t.Log("no payload after 3s")
	}
	fmt.Println("done")
}
