package application

import (
	"context"
	"fmt"

	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	"github.com/lightwallet-tools/zecw/pkg/secret"
)

// Provision creates a new account in the wallet engine. The seed is wiped
// before returning, whatever the outcome.
func Provision(
	ctx context.Context, engine ports.WalletEngine, name string,
	seed *secret.Buffer, birthday *domain.AccountBirthday, keySource string,
) (*domain.Account, error) {
	defer seed.Wipe()

	if seed.IsWiped() {
		return nil, secret.ErrWiped
	}
	if name == "" {
		return nil, ErrMissingAccountName
	}

	account, err := engine.CreateAccount(ctx, name, seed, birthday, keySource)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}
