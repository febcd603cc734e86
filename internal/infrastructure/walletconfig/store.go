package walletconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/pkg/secret"
	"github.com/lightwallet-tools/zecw/pkg/wallet"
	"github.com/pelletier/go-toml/v2"
)

const FileName = "keys.toml"

// Record is the content of keys.toml. Every field is optional on read.
type Record struct {
	Mnemonic *string `toml:"mnemonic,omitempty" multiline:"true"`
	Network  *string `toml:"network,omitempty"`
	Birthday *uint32 `toml:"birthday,omitempty"`
}

// NetworkParams returns the network the wallet was created for.
func (r *Record) NetworkParams() (domain.Network, error) {
	if r.Network == nil {
		return domain.Network{}, fmt.Errorf("%s has no network", FileName)
	}
	return domain.ParseNetwork(*r.Network)
}

type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Persist encrypts the mnemonic phrase to all recipients and writes it,
// with the network name and birthday height, to walletDir/keys.toml.
// The wallet directory is created if missing. An existing keys.toml is
// never overwritten.
func (s *Store) Persist(
	walletDir string, recipients []age.Recipient,
	mnemonic *wallet.Mnemonic, birthday uint32, network string,
) error {
	ciphertext, err := EncryptMnemonic(recipients, mnemonic)
	if err != nil {
		return err
	}

	content, err := toml.Marshal(Record{
		Mnemonic: &ciphertext,
		Network:  &network,
		Birthday: &birthday,
	})
	if err != nil {
		return fmt.Errorf("error writing wallet config: %w", err)
	}

	if err := os.MkdirAll(walletDir, 0700); err != nil {
		return fmt.Errorf("failed to create wallet dir: %w", err)
	}

	path := filepath.Join(walletDir, FileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", domain.ErrConfigAlreadyExists, path)
		}
		return fmt.Errorf("failed to create wallet config: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("error writing wallet config: %w", err)
	}
	return f.Sync()
}

// Load reads walletDir/keys.toml.
func (s *Store) Load(walletDir string) (*Record, error) {
	content, err := os.ReadFile(filepath.Join(walletDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet config: %w", err)
	}

	var record Record
	if err := toml.Unmarshal(content, &record); err != nil {
		return nil, fmt.Errorf("invalid wallet config: %w", err)
	}
	return &record, nil
}

// EncryptMnemonic returns the ASCII armored age encryption of the phrase.
// Any identity matching one of the recipients can decrypt it.
func EncryptMnemonic(
	recipients []age.Recipient, mnemonic *wallet.Mnemonic,
) (string, error) {
	if len(recipients) == 0 {
		return "", fmt.Errorf("no recipient to encrypt the mnemonic to")
	}
	phrase, err := mnemonic.Phrase()
	if err != nil {
		return "", err
	}

	buf := &bytes.Buffer{}
	armorWriter := armor.NewWriter(buf)
	w, err := age.Encrypt(armorWriter, recipients...)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt mnemonic: %w", err)
	}
	if _, err := w.Write(phrase); err != nil {
		return "", fmt.Errorf("failed to encrypt mnemonic: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to encrypt mnemonic: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to armor mnemonic: %w", err)
	}

	return buf.String(), nil
}

// DecryptMnemonic recovers the mnemonic stored in the record with any of
// the given identities.
func DecryptMnemonic(
	record *Record, identities ...age.Identity,
) (*wallet.Mnemonic, error) {
	if record == nil || record.Mnemonic == nil {
		return nil, fmt.Errorf("%s has no mnemonic", FileName)
	}

	r, err := age.Decrypt(
		armor.NewReader(strings.NewReader(*record.Mnemonic)), identities...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt mnemonic: %w", err)
	}

	phrase, err := io.ReadAll(r)
	if err != nil {
		secret.Wipe(phrase)
		return nil, fmt.Errorf("failed to decrypt mnemonic: %w", err)
	}
	return wallet.ParseMnemonic(phrase)
}
