package secret_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lightwallet-tools/zecw/pkg/secret"
	"github.com/stretchr/testify/require"
)

func TestUseWipesOnSuccess(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	buf := secret.New(raw)

	var seen []byte
	err := buf.Use(func(b []byte) error {
		seen = append(seen, b...)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, seen)
	require.Equal(t, []byte{0, 0, 0, 0}, raw)
	require.True(t, buf.IsWiped())
	require.Nil(t, buf.Bytes())
	require.Zero(t, buf.Len())
}

func TestUseWipesOnError(t *testing.T) {
	raw := []byte{9, 9, 9}
	buf := secret.New(raw)

	testErr := errors.New("engine failure")
	err := buf.Use(func([]byte) error { return testErr })
	require.ErrorIs(t, err, testErr)
	require.Equal(t, []byte{0, 0, 0}, raw)
	require.True(t, buf.IsWiped())
}

func TestUseWipesOnPanic(t *testing.T) {
	raw := []byte{7, 7}
	buf := secret.New(raw)

	require.Panics(t, func() {
		_ = buf.Use(func([]byte) error { panic("boom") })
	})
	require.Equal(t, []byte{0, 0}, raw)
}

func TestUseAfterWipe(t *testing.T) {
	buf := secret.New([]byte{1})
	buf.Wipe()
	buf.Wipe()

	err := buf.Use(func([]byte) error { return nil })
	require.ErrorIs(t, err, secret.ErrWiped)
}

func TestCopyWipesSource(t *testing.T) {
	src := []byte("abandon")
	buf := secret.Copy(src)
	defer buf.Wipe()

	require.Equal(t, []byte("abandon"), buf.Bytes())
	require.Equal(t, make([]byte, 7), src)
}

func TestFormattingIsRedacted(t *testing.T) {
	buf := secret.New([]byte("super secret seed"))
	defer buf.Wipe()

	for _, verb := range []string{"%v", "%s", "%x", "%+v", "%#v"} {
		out := fmt.Sprintf(verb, buf)
		require.Equal(t, "[REDACTED]", out, verb)
	}
}
