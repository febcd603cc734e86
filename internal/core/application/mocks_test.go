package application_test

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/pkg/secret"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// **** Chain client ****

type mockChainClient struct {
	mock.Mock
}

func (m *mockChainClient) LatestHeight(ctx context.Context) (uint32, error) {
	args := m.Called(ctx)

	var res uint32
	if a := args.Get(0); a != nil {
		res = a.(uint32)
	}
	return res, args.Error(1)
}

func (m *mockChainClient) TreeState(
	ctx context.Context, height uint64,
) (*domain.TreeState, error) {
	args := m.Called(ctx, height)

	var res *domain.TreeState
	switch a := args.Get(0).(type) {
	case func(context.Context, uint64) *domain.TreeState:
		res = a(ctx, height)
	case *domain.TreeState:
		res = a
	}
	return res, args.Error(1)
}

func (m *mockChainClient) Close() error {
	return nil
}

// **** Wallet engine ****

type mockWalletEngine struct {
	mock.Mock
}

func (m *mockWalletEngine) AccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)

	var res []uuid.UUID
	if a := args.Get(0); a != nil {
		res = a.([]uuid.UUID)
	}
	return res, args.Error(1)
}

func (m *mockWalletEngine) Account(
	ctx context.Context, id uuid.UUID,
) (*domain.Account, error) {
	args := m.Called(ctx, id)

	var res *domain.Account
	if a := args.Get(0); a != nil {
		res = a.(*domain.Account)
	}
	return res, args.Error(1)
}

func (m *mockWalletEngine) CreateAccount(
	ctx context.Context, name string, seed *secret.Buffer,
	birthday *domain.AccountBirthday, keySource string,
) (*domain.Account, error) {
	args := m.Called(ctx, name, seed, birthday, keySource)

	var res *domain.Account
	if a := args.Get(0); a != nil {
		res = a.(*domain.Account)
	}
	return res, args.Error(1)
}

func (m *mockWalletEngine) LastGeneratedAddress(
	ctx context.Context, id uuid.UUID,
) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockWalletEngine) WalletSummary(
	ctx context.Context,
) (*domain.WalletSummary, error) {
	args := m.Called(ctx)

	var res *domain.WalletSummary
	if a := args.Get(0); a != nil {
		res = a.(*domain.WalletSummary)
	}
	return res, args.Error(1)
}

func (m *mockWalletEngine) Close() error {
	return nil
}

// **** Rate source ****

type mockRateSource struct {
	mock.Mock
}

func (m *mockRateSource) ZecToUSD(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)

	res := decimal.Zero
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

// **** Prompter ****

type staticPrompter struct {
	input   string
	err     error
	prompts []string
}

func (p *staticPrompter) ReadSecret(prompt string) ([]byte, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return nil, p.err
	}
	return []byte(p.input), nil
}

// **** Fixtures ****

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

func newTreeState(height uint64) *domain.TreeState {
	return &domain.TreeState{
		Network:     "test",
		Height:      height,
		Hash:        strings.Repeat("1a", 32),
		Time:        1700000000,
		SaplingTree: "000000",
		OrchardTree: "000000",
	}
}
