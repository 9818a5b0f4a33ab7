// Command quicping sends a single "ping" to a QUIC endpoint: it binds
// a local UDP endpoint, performs the QUIC handshake, opens one
// bidirectional stream, writes the payload, and closes its send side.
// It never reads a reply. The exit status is nonzero if any step of
// the pipeline fails.
package main

import (
	"context"
	"flag"

	"github.com/apex/log"
	"github.com/ooni/quicping/internal/pinger"
)

func main() {
	target := flag.String("target", pinger.DefaultRemoteAddr, "endpoint to ping")
	sni := flag.String("sni", pinger.DefaultServerName, "server name to authenticate")
	timeout := flag.Duration("timeout", 0, "overall deadline for the run (0 means none)")
	verbose := flag.Bool("v", false, "enable verbose mode")
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	p := &pinger.Pinger{
		Logger:     log.Log,
		RemoteAddr: *target,
		ServerName: *sni,
	}
	if err := p.Run(ctx); err != nil {
		log.WithError(err).Fatal("ping failed")
	}
}
