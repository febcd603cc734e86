// Package tor routes the wallet's outbound connections through the SOCKS5
// port of a Tor daemon.
package tor

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"
	"golang.org/x/net/proxy"
)

// DefaultProxyAddr is the default SOCKS5 port of a local Tor daemon.
const DefaultProxyAddr = "127.0.0.1:9050"

// Transport dials through Tor. Every transport authenticates with its own
// random SOCKS credentials, which Tor uses to isolate its circuits from
// those of other transports.
type Transport struct {
	dialer  proxy.ContextDialer
	timeout time.Duration
	direct  bool
}

// NewTransport returns a transport dialing through the SOCKS5 proxy at
// proxyAddr. If direct is true the proxy is bypassed, which is only meant
// for local development.
func NewTransport(
	proxyAddr string, direct bool, timeout time.Duration,
) (*Transport, error) {
	forward := &net.Dialer{Timeout: timeout}
	if direct {
		log.Warn("tor disabled, connecting directly to remote services")
		return &Transport{forward, timeout, true}, nil
	}

	if proxyAddr == "" {
		proxyAddr = DefaultProxyAddr
	}
	auth := &proxy.Auth{
		User:     randstr.Hex(16),
		Password: randstr.Hex(16),
	}
	d, err := proxy.SOCKS5("tcp", proxyAddr, auth, forward)
	if err != nil {
		return nil, fmt.Errorf("invalid tor proxy %s: %w", proxyAddr, err)
	}
	dialer, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("tor proxy dialer does not support contexts")
	}

	return &Transport{dialer, timeout, false}, nil
}

// IsDirect reports whether the transport bypasses Tor.
func (t *Transport) IsDirect() bool {
	return t.direct
}

func (t *Transport) DialContext(
	ctx context.Context, network, addr string,
) (net.Conn, error) {
	return t.dialer.DialContext(ctx, network, addr)
}

// HTTPClient returns an HTTP client whose connections go through the
// transport. Proxy settings from the environment are ignored.
func (t *Transport) HTTPClient() *http.Client {
	return &http.Client{
		Timeout: t.timeout,
		Transport: &http.Transport{
			Proxy:               nil,
			DialContext:         t.DialContext,
			TLSHandshakeTimeout: t.timeout,
			ForceAttemptHTTP2:   true,
		},
	}
}

// WebsocketDialer returns a websocket dialer whose connections go through
// the transport.
func (t *Transport) WebsocketDialer() *websocket.Dialer {
	return &websocket.Dialer{
		NetDialContext:   t.DialContext,
		HandshakeTimeout: t.timeout,
	}
}
