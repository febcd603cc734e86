package application

import (
	"context"
	"fmt"

	"filippo.io/age"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type InitOpts struct {
	WalletDir    string
	IdentityPath string
	AccountName  string
	// Birthday overrides the default birthday height when set.
	Birthday  *uint32
	Network   domain.Network
	KeySource string
	// ExtraRecipients are added to the recipients of the identity file.
	ExtraRecipients []age.Recipient
}

func (o InitOpts) validate() error {
	if o.WalletDir == "" {
		return ErrMissingWalletDir
	}
	if o.AccountName == "" {
		return ErrMissingAccountName
	}
	if o.IdentityPath == "" {
		return ErrMissingIdentityPath
	}
	if o.Network.Name == "" {
		return domain.ErrUnknownNetwork
	}
	return nil
}

type InitResult struct {
	Account    *domain.Account
	Birthday   *domain.AccountBirthday
	Identity   *ports.Identity
	Recovering bool
}

// InitService creates a new wallet: it obtains the age identity, the
// mnemonic and the account birthday, writes the wallet config and finally
// provisions the first account.
type InitService struct {
	identities ports.IdentityStore
	configs    ports.WalletConfigStore
	engines    ports.WalletEngineFactory
	prompter   ports.Prompter
	birthdays  *BirthdayResolver
}

func NewInitService(
	identities ports.IdentityStore,
	configs ports.WalletConfigStore,
	engines ports.WalletEngineFactory,
	prompter ports.Prompter,
	birthdays *BirthdayResolver,
) *InitService {
	return &InitService{identities, configs, engines, prompter, birthdays}
}

// Init runs the wallet creation. The config file is written only after
// every network call succeeded, and the seed is wiped before returning.
func (s *InitService) Init(
	ctx context.Context, opts InitOpts,
) (*InitResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	identity, err := s.identities.Obtain(opts.IdentityPath)
	if err != nil {
		return nil, err
	}
	recipients := append([]age.Recipient{}, identity.Recipients...)
	recipients = append(recipients, opts.ExtraRecipients...)
	if len(recipients) == 0 {
		return nil, ErrMissingRecipients
	}

	mnemonic, recovering, err := ObtainMnemonic(s.prompter)
	if err != nil {
		return nil, err
	}
	defer mnemonic.Wipe()

	birthday, err := s.birthdays.Resolve(ctx, opts.Birthday, recovering)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.configs.Persist(
		opts.WalletDir, recipients, mnemonic, birthday.Height(), opts.Network.Name,
	); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"dir":      opts.WalletDir,
		"network":  opts.Network,
		"birthday": birthday.Height(),
	}).Debug("wallet config written")

	engine, err := s.engines.Open(opts.WalletDir, opts.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet storage: %w", err)
	}
	defer engine.Close()

	seed, err := mnemonic.Seed()
	if err != nil {
		return nil, err
	}
	account, err := Provision(
		ctx, engine, opts.AccountName, seed, birthday, opts.KeySource,
	)
	if err != nil {
		return nil, err
	}

	return &InitResult{
		Account:    account,
		Birthday:   birthday,
		Identity:   identity,
		Recovering: recovering,
	}, nil
}
