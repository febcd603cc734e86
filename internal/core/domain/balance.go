package domain

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coin is the number of zatoshis in one ZEC.
const Coin = 100_000_000

// Zatoshis is an amount of ZEC expressed in minor units.
type Zatoshis uint64

// Format renders the amount as whole and fractional ZEC.
func (z Zatoshis) Format() string {
	return fmt.Sprintf("%3d.%08d ZEC", uint64(z)/Coin, uint64(z)%Coin)
}

func (z Zatoshis) String() string {
	return z.Format()
}

// Decimal returns the exact amount in ZEC.
func (z Zatoshis) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(z)), -8)
}

// Balance is the value held in a single pool, split by spendability.
type Balance struct {
	SpendableValue            Zatoshis
	ChangePendingConfirmation Zatoshis
	ValuePendingSpendability  Zatoshis
}

// Total ...
func (b Balance) Total() Zatoshis {
	return b.SpendableValue + b.ChangePendingConfirmation + b.ValuePendingSpendability
}

// AccountBalance is the balance of an account decomposed by value pool.
type AccountBalance struct {
	Sapling    Balance
	Orchard    Balance
	Unshielded Balance
}

// Total returns the sum of the values of all pools.
func (b AccountBalance) Total() Zatoshis {
	return b.Sapling.Total() + b.Orchard.Total() + b.Unshielded.Total()
}

// Ratio is a progress fraction as reported by the wallet engine.
type Ratio struct {
	Numerator   uint64
	Denominator uint64
}

// Percent returns 100*n/d. The second return value is false for a zero
// denominator, meaning there is nothing to measure progress against.
func (r Ratio) Percent() (decimal.Decimal, bool) {
	if r.Denominator == 0 {
		return decimal.Zero, false
	}
	n := decimal.NewFromBigInt(new(big.Int).SetUint64(r.Numerator), 0)
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(r.Denominator), 0)
	return n.Mul(decimal.NewFromInt(100)).DivRound(d, 16), true
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Numerator, r.Denominator)
}

// Progress holds the scan and, when an account is being recovered, the
// recovery progress of the wallet.
type Progress struct {
	Scan     Ratio
	Recovery *Ratio
}

// WalletSummary is a point in time read of the wallet balances and sync
// progress.
type WalletSummary struct {
	AccountBalances    map[uuid.UUID]AccountBalance
	ChainTipHeight     uint32
	FullyScannedHeight uint32
	Progress           Progress
}

// AccountBalance returns the balance of the given account, if the summary
// holds one.
func (s WalletSummary) AccountBalance(id uuid.UUID) (AccountBalance, bool) {
	b, ok := s.AccountBalances[id]
	return b, ok
}
