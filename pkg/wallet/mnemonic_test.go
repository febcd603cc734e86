package wallet_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/lightwallet-tools/zecw/pkg/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPhrase = "abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon about"
	testSeedHex = "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc1" +
		"9a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
)

func TestNewMnemonic(t *testing.T) {
	m, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
	require.NoError(t, err)
	defer m.Wipe()

	phrase, err := m.Phrase()
	require.NoError(t, err)
	require.Len(t, strings.Split(string(phrase), " "), 24)
	require.Equal(t, 24, m.WordCount())

	// A generated phrase must parse back.
	parsed, err := wallet.ParseMnemonic(append([]byte{}, phrase...))
	require.NoError(t, err)
	parsed.Wipe()
}

func TestNewMnemonicEntropySize(t *testing.T) {
	tests := []struct {
		size  int
		words int
		err   error
	}{
		{128, 12, nil},
		{160, 15, nil},
		{256, 24, nil},
		{100, 0, wallet.ErrInvalidEntropySize},
		{288, 0, wallet.ErrInvalidEntropySize},
		{-32, 0, wallet.ErrInvalidEntropySize},
	}
	for _, tt := range tests {
		m, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: tt.size})
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.words, m.WordCount())
		m.Wipe()
	}
}

func TestParseMnemonic(t *testing.T) {
	t.Run("valid phrase with messy whitespace", func(t *testing.T) {
		input := []byte("  " + strings.ReplaceAll(testPhrase, " ", " \t ") + "\n")
		m, err := wallet.ParseMnemonic(input)
		require.NoError(t, err)
		defer m.Wipe()

		phrase, err := m.Phrase()
		require.NoError(t, err)
		require.Equal(t, testPhrase, string(phrase))

		for _, c := range input {
			require.Zero(t, c, "input must be wiped")
		}
	})

	t.Run("bad checksum", func(t *testing.T) {
		bad := strings.Repeat("abandon ", 12)
		_, err := wallet.ParseMnemonic([]byte(bad))
		require.ErrorIs(t, err, wallet.ErrInvalidMnemonic)
	})

	t.Run("unknown word", func(t *testing.T) {
		bad := strings.Replace(testPhrase, "about", "zcashy", 1)
		_, err := wallet.ParseMnemonic([]byte(bad))
		require.ErrorIs(t, err, wallet.ErrInvalidMnemonic)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := wallet.ParseMnemonic([]byte("   "))
		require.ErrorIs(t, err, wallet.ErrNullMnemonic)
	})
}

func TestSeed(t *testing.T) {
	m, err := wallet.ParseMnemonic([]byte(testPhrase))
	require.NoError(t, err)
	defer m.Wipe()

	seed, err := m.Seed()
	require.NoError(t, err)
	require.Equal(t, wallet.SeedSize, seed.Len())
	require.Equal(t, testSeedHex, hex.EncodeToString(seed.Bytes()))

	seed.Wipe()
	require.True(t, seed.IsWiped())
}

func TestWipe(t *testing.T) {
	m, err := wallet.ParseMnemonic([]byte(testPhrase))
	require.NoError(t, err)

	phrase, err := m.Phrase()
	require.NoError(t, err)
	m.Wipe()

	for _, c := range phrase {
		require.Zero(t, c)
	}
	_, err = m.Phrase()
	require.ErrorIs(t, err, wallet.ErrMnemonicWiped)
	_, err = m.Seed()
	require.ErrorIs(t, err, wallet.ErrMnemonicWiped)
	require.Equal(t, "mnemonic(12 words)", m.String())
}
