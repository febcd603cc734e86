package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSource returns the price of one ZEC in US dollars.
type RateSource interface {
	ZecToUSD(ctx context.Context) (decimal.Decimal, error)
}
