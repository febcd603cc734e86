package tor

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDirectTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	transport, err := NewTransport("", true, 5*time.Second)
	require.NoError(t, err)
	require.True(t, transport.IsDirect())

	res, err := transport.HTTPClient().Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestSOCKSTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("via proxy"))
	}))
	defer srv.Close()

	creds := make(chan [2]string, 4)
	proxyAddr := startSOCKS5(t, creds)

	first, err := NewTransport(proxyAddr, false, 5*time.Second)
	require.NoError(t, err)
	require.False(t, first.IsDirect())
	second, err := NewTransport(proxyAddr, false, 5*time.Second)
	require.NoError(t, err)

	for _, transport := range []*Transport{first, second} {
		res, err := transport.HTTPClient().Get(srv.URL)
		require.NoError(t, err)
		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)
		require.Equal(t, "via proxy", string(body))
	}

	firstCreds, secondCreds := <-creds, <-creds
	for _, c := range append(firstCreds[:], secondCreds[:]...) {
		require.Regexp(t, "^[0-9a-f]{32}$", c)
	}
	require.NotEqual(t, firstCreds, secondCreds)

	t.Run("websocket_dialer", func(t *testing.T) {
		d := first.WebsocketDialer()
		conn, err := d.NetDialContext(context.Background(), "tcp", srv.Listener.Addr().String())
		require.NoError(t, err)
		conn.Close()
	})
}

// startSOCKS5 runs a minimal SOCKS5 proxy supporting user/password auth and
// CONNECT to IPv4 addresses. Credentials of each connection are sent on
// creds.
func startSOCKS5(t *testing.T, creds chan<- [2]string) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go serveSOCKS5(conn, creds)
		}
	}()

	return l.Addr().String()
}

func serveSOCKS5(conn net.Conn, creds chan<- [2]string) {
	defer conn.Close()

	buf := make([]byte, 2)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return
	}
	methods := make([]byte, buf[1])
	if _, err := io.ReadFull(conn, methods); err != nil {
		return
	}
	conn.Write([]byte{5, 2})

	readField := func() string {
		n := make([]byte, 1)
		io.ReadFull(conn, n)
		field := make([]byte, n[0])
		io.ReadFull(conn, field)
		return string(field)
	}
	io.ReadFull(conn, buf[:1])
	user, pass := readField(), readField()
	select {
	case creds <- [2]string{user, pass}:
	default:
	}
	conn.Write([]byte{1, 0})

	header := make([]byte, 4)
	if _, err := io.ReadFull(conn, header); err != nil || header[3] != 1 {
		return
	}
	addr := make([]byte, 6)
	if _, err := io.ReadFull(conn, addr); err != nil {
		return
	}
	target := net.JoinHostPort(
		net.IP(addr[:4]).String(),
		strconv.Itoa(int(binary.BigEndian.Uint16(addr[4:]))),
	)

	upstream, err := net.Dial("tcp", target)
	if err != nil {
		conn.Write([]byte{5, 5, 0, 1, 0, 0, 0, 0, 0, 0})
		return
	}
	defer upstream.Close()
	conn.Write([]byte{5, 0, 0, 1, 0, 0, 0, 0, 0, 0})

	go io.Copy(upstream, conn)
	io.Copy(conn, upstream)
}
