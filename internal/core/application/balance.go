package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

const InsufficientSummaryMessage = "Insufficient information to build a wallet summary."


// ReportLine is a single "Label: Value" line of a balance report.
type ReportLine struct {
	Label     string
	Value     string
	Highlight bool
}

func (l ReportLine) String() string {
	return fmt.Sprintf("%s: %s", l.Label, l.Value)
}

// BalanceReport is the rendered balance of an account. Summary is nil, and
// Lines empty, when the wallet has not synced far enough to compute
// balances.
type BalanceReport struct {
	Account *domain.Account
	Address string
	Summary *domain.WalletSummary
	Lines   []ReportLine
}

// Insufficient reports whether the wallet lacked a summary.
func (r *BalanceReport) Insufficient() bool {
	return r.Summary == nil
}

// BalanceReporter reads the wallet summary of an account and renders its
// balances by pool, optionally converted to fiat.
type BalanceReporter struct {
	engine          ports.WalletEngine
	rates           ports.RateSource
	transparentPool bool
}

func NewBalanceReporter(
	engine ports.WalletEngine, rates ports.RateSource, transparentPool bool,
) *BalanceReporter {
	return &BalanceReporter{engine, rates, transparentPool}
}

// Report builds the balance report of the requested account, or of the
// only account if accountID is nil. When convert is set, values are also
// shown in that currency if the rate source supports it.
func (r *BalanceReporter) Report(
	ctx context.Context, accountID *uuid.UUID, convert *currency.Unit,
) (*BalanceReport, error) {
	account, err := SelectAccount(ctx, r.engine, accountID)
	if err != nil {
		return nil, err
	}

	address, err := r.engine.LastGeneratedAddress(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	if address == "" {
		return nil, domain.ErrMissingAddress
	}

	report := &BalanceReport{Account: account, Address: address}

	summary, err := r.engine.WalletSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet summary: %w", err)
	}
	if summary == nil {
		return report, nil
	}

	balance, ok := summary.AccountBalance(account.ID)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s", domain.ErrAccountMissingFromSummary, account.ID,
		)
	}

	printer, err := r.valuePrinter(ctx, convert)
	if err != nil {
		return nil, err
	}

	report.Summary = summary
	report.Lines = append(report.Lines,
		ReportLine{Label: "Height", Value: fmt.Sprint(summary.ChainTipHeight)},
		ReportLine{Label: "Synced", Value: formatScanProgress(summary.Progress.Scan)},
	)
	if recovery := summary.Progress.Recovery; recovery != nil {
		report.Lines = append(report.Lines, ReportLine{
			Label: "Recovered", Value: formatRecoveryProgress(*recovery),
		})
	}
	report.Lines = append(report.Lines,
		ReportLine{
			Label: "Balance", Value: printer.Format(balance.Total()), Highlight: true,
		},
		ReportLine{
			Label: "Sapling Spendable",
			Value: printer.Format(balance.Sapling.SpendableValue),
		},
		ReportLine{
			Label: "Orchard Spendable",
			Value: printer.Format(balance.Orchard.SpendableValue),
		},
	)
	if r.transparentPool {
		report.Lines = append(report.Lines, ReportLine{
			Label: "Unshielded Spendable",
			Value: printer.Format(balance.Unshielded.SpendableValue),
		})
	}

	return report, nil
}

func (r *BalanceReporter) valuePrinter(
	ctx context.Context, convert *currency.Unit,
) (ValuePrinter, error) {
	if convert == nil {
		return ValuePrinter{}, nil
	}
	if *convert != currency.USD {
		log.Warnf("%s/ZEC exchange rate is unsupported", *convert)
		return ValuePrinter{}, nil
	}

	log.Infof("fetching %s/ZEC exchange rate", *convert)
	rate, err := r.rates.ZecToUSD(ctx)
	if err != nil {
		return ValuePrinter{}, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}
	log.Infof("current %s/ZEC exchange rate: %s", *convert, rate)

	return NewValuePrinter(*convert, rate), nil
}

// ValuePrinter formats ZEC amounts, followed by their fiat value when a
// rate is set. The zero value prints ZEC only.
type ValuePrinter struct {
	unit *currency.Unit
	rate decimal.Decimal
}

func NewValuePrinter(unit currency.Unit, rate decimal.Decimal) ValuePrinter {
	return ValuePrinter{&unit, rate}
}

// Format renders value as "<zec> (<symbol><fiat>)", with fiat rounded to
// two decimal places.
func (p ValuePrinter) Format(value domain.Zatoshis) string {
	if p.unit == nil {
		return value.Format()
	}
	fiat := p.rate.Mul(value.Decimal())
	return fmt.Sprintf(
		"%s (%s%s)", value.Format(), currencySymbol(*p.unit), fiat.StringFixed(2),
	)
}

func currencySymbol(unit currency.Unit) string {
	if unit == currency.USD {
		return "$"
	}
	return unit.String() + " "
}

func formatScanProgress(r domain.Ratio) string {
	pct, ok := r.Percent()
	if !ok {
		return "not started"
	}
	return pct.StringFixed(3) + "%"
}

func formatRecoveryProgress(r domain.Ratio) string {
	pct, ok := r.Percent()
	if !ok {
		return "not in progress"
	}
	return fmt.Sprintf("%s%% = %s", pct.StringFixed(3), r)
}
