package wallet

import (
	"bytes"
	"fmt"

	"github.com/lightwallet-tools/zecw/pkg/secret"
	"github.com/tyler-smith/go-bip39"
)

const (
	// DefaultEntropySize gives 24-word phrases.
	DefaultEntropySize = 256
	// SeedSize is the length of a BIP-39 seed.
	SeedSize = 64
)

// Mnemonic is a validated BIP-39 phrase. The phrase is held in a secret
// buffer and never leaves the process in plaintext.
type Mnemonic struct {
	phrase *secret.Buffer
	words  int
}

type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a freshly generated mnemonic, 24 words unless a
// different entropy size is requested.
func NewMnemonic(opts NewMnemonicOpts) (*Mnemonic, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = DefaultEntropySize
	}

	entropy, err := bip39.NewEntropy(opts.EntropySize)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}
	defer secret.Wipe(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}
	return newMnemonic([]byte(phrase)), nil
}

// ParseMnemonic validates a user supplied phrase against the English word
// list and checksum. Runs of whitespace are collapsed. The input slice is
// wiped whether or not parsing succeeds.
func ParseMnemonic(phrase []byte) (*Mnemonic, error) {
	defer secret.Wipe(phrase)

	normalized := bytes.Join(bytes.Fields(phrase), []byte(" "))
	if len(normalized) == 0 {
		return nil, ErrNullMnemonic
	}

	entropy, err := bip39.EntropyFromMnemonic(string(normalized))
	if err != nil {
		secret.Wipe(normalized)
		return nil, fmt.Errorf("%w: %s", ErrInvalidMnemonic, err)
	}
	secret.Wipe(entropy)

	return newMnemonic(normalized), nil
}

func newMnemonic(phrase []byte) *Mnemonic {
	return &Mnemonic{
		phrase: secret.New(phrase),
		words:  len(bytes.Fields(phrase)),
	}
}

// Phrase exposes the space separated words. The returned slice aliases the
// mnemonic's memory and is zeroed by Wipe.
func (m *Mnemonic) Phrase() ([]byte, error) {
	if m == nil || m.phrase.IsWiped() {
		return nil, ErrMnemonicWiped
	}
	return m.phrase.Bytes(), nil
}

// WordCount returns the number of words of the phrase.
func (m *Mnemonic) WordCount() int {
	return m.words
}

// Seed derives the BIP-39 seed with an empty passphrase. The caller owns
// the returned buffer and must wipe it after its single use.
func (m *Mnemonic) Seed() (*secret.Buffer, error) {
	phrase, err := m.Phrase()
	if err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(string(phrase), "")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMnemonic, err)
	}
	return secret.New(seed), nil
}

// Wipe erases the phrase.
func (m *Mnemonic) Wipe() {
	if m == nil {
		return
	}
	m.phrase.Wipe()
}

func (m *Mnemonic) String() string {
	return fmt.Sprintf("mnemonic(%d words)", m.words)
}
