package application

import (
	"fmt"

	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	"github.com/lightwallet-tools/zecw/pkg/wallet"
)

const MnemonicPrompt = "Enter mnemonic (or just press Enter to generate a new one):"

// ObtainMnemonic asks the user for a mnemonic. An empty answer generates a
// new 24-word phrase, anything else, whitespace included, is parsed as an
// existing phrase being recovered. The returned flag reports which of the
// two happened.
func ObtainMnemonic(prompter ports.Prompter) (*wallet.Mnemonic, bool, error) {
	input, err := prompter.ReadSecret(MnemonicPrompt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read mnemonic: %w", err)
	}

	if len(input) == 0 {
		mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
		if err != nil {
			return nil, false, err
		}
		return mnemonic, false, nil
	}

	mnemonic, err := wallet.ParseMnemonic(input)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", domain.ErrInvalidMnemonic, err)
	}
	return mnemonic, true, nil
}
