package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/pkg/secret"
)

// AccountReader lists and looks up the accounts of a wallet.
type AccountReader interface {
	AccountIDs(ctx context.Context) ([]uuid.UUID, error)
	// Account returns nil without error if no account has the given id.
	Account(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

// WalletEngine is the local wallet storage owning accounts and their
// state.
type WalletEngine interface {
	AccountReader
	// CreateAccount derives a new account from the seed. Implementations
	// must not retain the seed buffer.
	CreateAccount(
		ctx context.Context, name string, seed *secret.Buffer,
		birthday *domain.AccountBirthday, keySource string,
	) (*domain.Account, error)
	// LastGeneratedAddress returns an empty string if the account has no
	// address yet.
	LastGeneratedAddress(ctx context.Context, id uuid.UUID) (string, error)
	// WalletSummary returns nil if the wallet has not synced enough to
	// compute one.
	WalletSummary(ctx context.Context) (*domain.WalletSummary, error)
	Close() error
}

// WalletEngineFactory opens or creates the wallet engine storage of a
// wallet directory.
type WalletEngineFactory interface {
	Open(walletDir string, network domain.Network) (WalletEngine, error)
}
