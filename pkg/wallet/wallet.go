// Package wallet implements the mnemonic side of key custody: generating,
// parsing and turning BIP-39 phrases into seeds.
package wallet

import "errors"

var (
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrInvalidMnemonic is returned for phrases with unknown words, a bad
	// word count or a failing checksum.
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrMnemonicWiped is returned when reading a mnemonic after Wipe.
	ErrMnemonicWiped = errors.New("mnemonic has been wiped")
)
