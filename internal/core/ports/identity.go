package ports

import (
	"filippo.io/age"
	"github.com/lightwallet-tools/zecw/pkg/wallet"
)

// Identity holds the age identities of an identity file and the recipients
// the mnemonic is encrypted to.
type Identity struct {
	Path       string
	Identities []age.Identity
	Recipients []age.Recipient
	// Generated is true if the identity file was created by this call.
	Generated bool
}

// IdentityStore loads the age identity at path, generating it if the file
// does not exist.
type IdentityStore interface {
	Obtain(path string) (*Identity, error)
}

// WalletConfigStore persists the encrypted mnemonic alongside the wallet
// network and birthday.
type WalletConfigStore interface {
	Persist(
		walletDir string, recipients []age.Recipient,
		mnemonic *wallet.Mnemonic, birthday uint32, network string,
	) error
}

// Prompter reads user input without echoing it back.
type Prompter interface {
	ReadSecret(prompt string) ([]byte, error)
}
