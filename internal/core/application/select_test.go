package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lightwallet-tools/zecw/internal/core/application"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSelectAccount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first := &domain.Account{ID: uuid.New(), Name: "first"}
	second := &domain.Account{ID: uuid.New(), Name: "second"}

	t.Run("only_account", func(t *testing.T) {
		engine := &mockWalletEngine{}
		engine.On("AccountIDs", mock.Anything).Return([]uuid.UUID{first.ID}, nil)
		engine.On("Account", mock.Anything, first.ID).Return(first, nil)

		account, err := application.SelectAccount(ctx, engine, nil)
		require.NoError(t, err)
		require.Equal(t, first, account)
	})

	t.Run("explicit_account", func(t *testing.T) {
		engine := &mockWalletEngine{}
		engine.On("Account", mock.Anything, second.ID).Return(second, nil)

		account, err := application.SelectAccount(ctx, engine, &second.ID)
		require.NoError(t, err)
		require.Equal(t, second, account)
		engine.AssertNotCalled(t, "AccountIDs", mock.Anything)
	})
}

func TestFailingSelectAccount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	missing := uuid.New()
	errEngine := errors.New("db closed")

	tests := []struct {
		name          string
		requested     *uuid.UUID
		ids           []uuid.UUID
		idsErr        error
		expectedError error
	}{
		{
			name:          "no_accounts",
			ids:           []uuid.UUID{},
			expectedError: domain.ErrNoAccounts,
		},
		{
			name:          "ambiguous",
			ids:           []uuid.UUID{uuid.New(), uuid.New()},
			expectedError: domain.ErrAmbiguousAccount,
		},
		{
			name:          "not_found",
			requested:     &missing,
			expectedError: domain.ErrAccountNotFound,
		},
		{
			name:          "listing_fails",
			idsErr:        errEngine,
			expectedError: errEngine,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockWalletEngine{}
			engine.On("AccountIDs", mock.Anything).Return(tt.ids, tt.idsErr)
			engine.On("Account", mock.Anything, missing).Return(nil, nil)

			account, err := application.SelectAccount(ctx, engine, tt.requested)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, account)
			engine.AssertNumberOfCalls(t, "CreateAccount", 0)
		})
	}

	require.Contains(t, domain.ErrAmbiguousAccount.Error(), "specify the account UUID")
}
