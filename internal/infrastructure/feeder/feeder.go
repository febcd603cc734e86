// Package feeder fetches the ZEC/USD exchange rate from several exchanges.
// One source is trusted and must answer; the others only contribute to the
// median when they do.
package feeder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lightwallet-tools/zecw/internal/core/ports"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidQuote is returned by sources for non positive prices.
var ErrInvalidQuote = errors.New("exchange returned a non positive price")

// Source is a single exchange quoting ZEC in USD.
type Source interface {
	Name() string
	ZecToUSD(ctx context.Context) (decimal.Decimal, error)
}

// WithTimeout bounds every quote of src by timeout.
func WithTimeout(src Source, timeout time.Duration) Source {
	return timeoutSource{src, timeout}
}

type timeoutSource struct {
	Source
	timeout time.Duration
}

func (s timeoutSource) ZecToUSD(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.Source.ZecToUSD(ctx)
}

type service struct {
	trusted Source
	others  []Source
}

// NewService returns a rate source querying the exchanges one after the
// other.
func NewService(trusted Source, others ...Source) ports.RateSource {
	return &service{trusted, others}
}

func (s *service) ZecToUSD(ctx context.Context) (decimal.Decimal, error) {
	trusted, err := quote(ctx, s.trusted)
	if err != nil {
		return decimal.Zero, fmt.Errorf(
			"trusted exchange %s failed: %w", s.trusted.Name(), err,
		)
	}

	quotes := []decimal.Decimal{trusted}
	for _, src := range s.others {
		q, err := quote(ctx, src)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return decimal.Zero, ctxErr
			}
			log.WithError(err).WithField("exchange", src.Name()).Warn(
				"skipping exchange rate source",
			)
			continue
		}
		quotes = append(quotes, q)
	}

	return median(quotes), nil
}

func quote(ctx context.Context, src Source) (decimal.Decimal, error) {
	q, err := src.ZecToUSD(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if !q.IsPositive() {
		return decimal.Zero, ErrInvalidQuote
	}
	log.WithField("exchange", src.Name()).Debugf("ZEC/USD %s", q)
	return q, nil
}

func median(quotes []decimal.Decimal) decimal.Decimal {
	sorted := append([]decimal.Decimal{}, quotes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
