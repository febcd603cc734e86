package krakenfeeder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/feeder"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	// KrakenWebSocketURL is the url to open a connection with kraken.
	KrakenWebSocketURL = "wss://ws.kraken.com"

	ticker = "ZEC/USD"
)

type service struct {
	dialer *websocket.Dialer
	url    string
}

// NewKrakenFeeder returns the Kraken source. A nil dialer uses
// websocket.DefaultDialer and an empty url the public endpoint.
func NewKrakenFeeder(dialer *websocket.Dialer, url string) feeder.Source {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	if url == "" {
		url = KrakenWebSocketURL
	}
	return &service{dialer, url}
}

func (s *service) Name() string {
	return "kraken"
}

// ZecToUSD subscribes to the ZEC/USD ticker and returns the last trade
// price of the first ticker message received.
func (s *service) ZecToUSD(ctx context.Context) (decimal.Decimal, error) {
	conn, err := connectAndSubscribe(ctx, s.dialer, s.url)
	if err != nil {
		return decimal.Zero, err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return decimal.Zero, ctxErr
			}
			return decimal.Zero, fmt.Errorf("cannot read ticker: %w", err)
		}

		price, err := parseFeed(message)
		if err != nil {
			return decimal.Zero, err
		}
		if price == nil {
			continue
		}
		return *price, nil
	}
}

// parseFeed returns the last price carried by a ticker message, nil for
// any other message, or an error if the subscription was rejected.
func parseFeed(msg []byte) (*decimal.Decimal, error) {
	var event struct {
		Event        string `json:"event"`
		Status       string `json:"status"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(msg, &event); err == nil {
		if event.Event == "subscriptionStatus" && event.Status == "error" {
			return nil, fmt.Errorf("subscription rejected: %s", event.ErrorMessage)
		}
		return nil, nil
	}

	var i []interface{}
	if err := json.Unmarshal(msg, &i); err != nil {
		log.WithError(err).Debug("skipping unparsable kraken message")
		return nil, nil
	}
	if len(i) != 4 {
		return nil, nil
	}

	pair, ok := i[3].(string)
	if !ok || pair != ticker {
		return nil, nil
	}

	ii, ok := i[1].(map[string]interface{})
	if !ok {
		return nil, nil
	}

	iii, ok := ii["c"].([]interface{})
	if !ok || len(iii) < 1 {
		return nil, nil
	}
	priceStr, ok := iii[0].(string)
	if !ok {
		return nil, nil
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ticker price: %w", err)
	}
	return &price, nil
}

func connectAndSubscribe(
	ctx context.Context, dialer *websocket.Dialer, url string,
) (*websocket.Conn, error) {
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	msg := map[string]interface{}{
		"event": "subscribe",
		"pair":  []string{ticker},
		"subscription": map[string]string{
			"name": "ticker",
		},
	}

	buf, _ := json.Marshal(msg)
	if err := conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot subscribe to ticker: %s", err)
	}

	return conn, nil
}
