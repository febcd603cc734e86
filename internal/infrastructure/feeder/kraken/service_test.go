package krakenfeeder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	url := newTestServer(t, []string{
		`{"event":"systemStatus","status":"online"}`,
		`{"event":"subscriptionStatus","status":"subscribed","pair":"ZEC/USD"}`,
		`{"event":"heartbeat"}`,
		`[42,{"a":["36.1","1","1.0"],"c":["35.98","0.5"]},"ticker","XBT/USD"]`,
		`[43,{"a":["36.1","1","1.0"],"c":["36.02","0.5"]},"ticker","ZEC/USD"]`,
	})

	rate, err := NewKrakenFeeder(nil, url).ZecToUSD(context.Background())
	require.NoError(t, err)
	require.Equal(t, "36.02", rate.String())
}

func TestFailingService(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		url := newTestServer(t, []string{
			`{"event":"subscriptionStatus","status":"error","errorMessage":"Currency pair not supported"}`,
		})

		_, err := NewKrakenFeeder(nil, url).ZecToUSD(context.Background())
		require.ErrorContains(t, err, "Currency pair not supported")
	})

	t.Run("timeout", func(t *testing.T) {
		url := newTestServer(t, []string{`{"event":"heartbeat"}`})

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		_, err := NewKrakenFeeder(nil, url).ZecToUSD(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestParseFeed(t *testing.T) {
	price, err := parseFeed([]byte(`[1,{"c":["35.5","1"]},"ticker","ZEC/USD"]`))
	require.NoError(t, err)
	require.Equal(t, "35.5", price.String())

	for _, msg := range []string{
		`not json`,
		`[1,{"c":["35.5","1"]},"ticker"]`,
		`[1,{"b":["35.5","1"]},"ticker","ZEC/USD"]`,
		`[1,{"c":[]},"ticker","ZEC/USD"]`,
	} {
		price, err := parseFeed([]byte(msg))
		require.NoError(t, err)
		require.Nil(t, price, msg)
	}

	_, err = parseFeed([]byte(`[1,{"c":["abc","1"]},"ticker","ZEC/USD"]`))
	require.Error(t, err)
}

// newTestServer replays msgs after the subscription and keeps the
// connection open until the client goes away.
func newTestServer(t *testing.T, msgs []string) string {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var sub map[string]interface{}
		if err := conn.ReadJSON(&sub); err != nil || sub["event"] != "subscribe" {
			return
		}
		for _, msg := range msgs {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}
