package domain

import "errors"

var (
	// ErrIdentityFileInvalid is returned when an existing identity file holds
	// no usable age identity.
	ErrIdentityFileInvalid = errors.New("identity file does not contain any valid age identity")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")
	// ErrConfigAlreadyExists is returned when initializing a wallet directory
	// that already holds a config. Re-initialization needs a fresh directory.
	ErrConfigAlreadyExists = errors.New("wallet config already exists, use a new wallet directory")
	// ErrInvalidTreeState is returned when the tree state received from the
	// chain-indexing server cannot be used as a birthday checkpoint.
	ErrInvalidTreeState = errors.New("invalid TreeState received from server")
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrNoAccounts ...
	ErrNoAccounts = errors.New("wallet contains no accounts")
	// ErrAmbiguousAccount is returned when the wallet has more than one account
	// and none was explicitly requested.
	ErrAmbiguousAccount = errors.New("more than one account is available; please specify the account UUID")
	// ErrAccountMissingFromSummary is returned when the wallet summary has no
	// balance for the selected account.
	ErrAccountMissingFromSummary = errors.New("account missing from wallet summary")
	// ErrAccountAlreadyExists is returned when creating an account from a seed
	// already known to the wallet.
	ErrAccountAlreadyExists = errors.New("an account for this seed already exists")
	// ErrMissingAddress ...
	ErrMissingAddress = errors.New("account has no generated address")
	// ErrUnknownNetwork ...
	ErrUnknownNetwork = errors.New("unknown network, must be one of \"main\" or \"test\"")
	// ErrNetworkMismatch is returned when a wallet or server belongs to a
	// different network than the requested one.
	ErrNetworkMismatch = errors.New("network mismatch")
)
