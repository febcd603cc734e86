package application

import "errors"

var (
	// ErrMissingRecipients is returned when there is no recipient to encrypt
	// the mnemonic to.
	ErrMissingRecipients = errors.New("at least one age recipient is required")
	// ErrMissingAccountName ...
	ErrMissingAccountName = errors.New("missing account name")
	// ErrMissingIdentityPath ...
	ErrMissingIdentityPath = errors.New("missing identity file path")
	// ErrMissingWalletDir ...
	ErrMissingWalletDir = errors.New("missing wallet directory")
)
