package testingx

import (
	"net"
	"testing"
)

func TestMustNewQUICServer(t *testing.T) {
	srv := MustNewQUICServer("h3")
	defer srv.Close()
	host, _, err := net.SplitHostPort(srv.Endpoint())
	if err != nil {
		t.Fatal(err)
	}
	if host != "127.0.0.1" {
		t.Fatal("not the host we expected", host)
	}
	if srv.CertPool() == nil {
		t.Fatal("expected a cert pool")
	}
}

func TestMustNewServerCertificate(t *testing.T) {
	cert, pool := mustNewServerCertificate("localhost")
	if cert.Leaf == nil {
		t.Fatal("expected a parsed leaf")
	}
	if err := cert.Leaf.VerifyHostname("localhost"); err != nil {
		t.Fatal(err)
	}
	if pool == nil {
		t.Fatal("expected a cert pool")
	}
}
