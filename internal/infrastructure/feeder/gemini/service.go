package geminifeeder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lightwallet-tools/zecw/internal/infrastructure/feeder"
	"github.com/shopspring/decimal"
)

const (
	// GeminiURL is the base url of the public Gemini REST API.
	GeminiURL = "https://api.gemini.com"

	tickerPath = "/v1/pubticker/zecusd"
)

type service struct {
	client  *http.Client
	baseURL string
}

// NewGeminiFeeder returns the Gemini source. A nil client uses
// http.DefaultClient and an empty baseURL the public API.
func NewGeminiFeeder(client *http.Client, baseURL string) feeder.Source {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = GeminiURL
	}
	return &service{client, strings.TrimSuffix(baseURL, "/")}
}

func (s *service) Name() string {
	return "gemini"
}

func (s *service) ZecToUSD(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, s.baseURL+tickerPath, nil,
	)
	if err != nil {
		return decimal.Zero, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status %s", res.Status)
	}

	var ticker struct {
		Last string `json:"last"`
	}
	if err := json.NewDecoder(res.Body).Decode(&ticker); err != nil {
		return decimal.Zero, fmt.Errorf("invalid ticker: %w", err)
	}

	price, err := decimal.NewFromString(ticker.Last)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid ticker price: %w", err)
	}
	return price, nil
}
