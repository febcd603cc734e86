package coinbasefeeder

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/feeder"
	"github.com/shopspring/decimal"
)

const (
	// CoinbaseWebSocketURL is the url to open a WebSocket connection with
	// Coinbase.
	CoinbaseWebSocketURL = "wss://ws-feed.exchange.coinbase.com"

	productID = "ZEC-USD"
)

type service struct {
	dialer *websocket.Dialer
	url    string
}

// NewCoinbaseFeeder returns the Coinbase source. A nil dialer uses
// websocket.DefaultDialer and an empty url the public endpoint.
func NewCoinbaseFeeder(dialer *websocket.Dialer, url string) feeder.Source {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	if url == "" {
		url = CoinbaseWebSocketURL
	}
	return &service{dialer, url}
}

func (s *service) Name() string {
	return "coinbase"
}

func (s *service) ZecToUSD(ctx context.Context) (decimal.Decimal, error) {
	conn, err := connectAndSubscribe(ctx, s.dialer, s.url)
	if err != nil {
		return decimal.Zero, err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		msg := make(map[string]interface{})
		if err := conn.ReadJSON(&msg); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return decimal.Zero, ctxErr
			}
			return decimal.Zero, fmt.Errorf("cannot read ticker: %w", err)
		}

		price, err := parseFeed(msg)
		if err != nil {
			return decimal.Zero, err
		}
		if price == nil {
			continue
		}
		return *price, nil
	}
}

func parseFeed(msg map[string]interface{}) (*decimal.Decimal, error) {
	msgType, ok := msg["type"].(string)
	if !ok {
		return nil, nil
	}
	if msgType == "error" {
		reason, _ := msg["reason"].(string)
		return nil, fmt.Errorf("subscription rejected: %s", reason)
	}
	if msgType != "ticker" {
		return nil, nil
	}
	if product, ok := msg["product_id"].(string); !ok || product != productID {
		return nil, nil
	}
	priceStr, ok := msg["price"].(string)
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
		"type":        "subscribe",
		"product_ids": []string{productID},
		"channels":    []string{"ticker"},
	}

	if err := conn.WriteJSON(msg); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot subscribe to ticker: %s", err)
	}

	return conn, nil
}
