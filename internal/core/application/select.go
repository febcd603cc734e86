package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
)

// SelectAccount returns the requested account or, if none is requested,
// the only account of the wallet. A wallet with several accounts always
// needs an explicit id.
func SelectAccount(
	ctx context.Context, accounts ports.AccountReader, requested *uuid.UUID,
) (*domain.Account, error) {
	var id uuid.UUID
	if requested != nil {
		id = *requested
	} else {
		ids, err := accounts.AccountIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		switch len(ids) {
		case 0:
			return nil, domain.ErrNoAccounts
		case 1:
			id = ids[0]
		default:
			return nil, domain.ErrAmbiguousAccount
		}
	}

	account, err := accounts.Account(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	return account, nil
}
