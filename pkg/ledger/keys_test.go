package ledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	key, err := NewKey(bytes.Repeat([]byte{0x2a}, 32), "wasm")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key.Address(), "wasm1"))
	require.True(t, ValidateAddressFormat(key.Address(), "wasm"))
	require.Len(t, key.PubKeyBytes(), 33)
}

func TestNewKey_WrongLength(t *testing.T) {
	_, err := NewKey(bytes.Repeat([]byte{0x2a}, 16), "wasm")
	require.ErrorContains(t, err, "invalid private key length")
}

func TestNewKeyFromHex(t *testing.T) {
	raw := bytes.Repeat([]byte{0x2a}, 32)
	want, err := NewKey(raw, "wasm")
	require.NoError(t, err)

	hexKey := strings.Repeat("2a", 32)
	for _, in := range []string{hexKey, "0x" + hexKey, "  " + hexKey + "\n"} {
		key, err := NewKeyFromHex(in, "wasm")
		require.NoError(t, err)
		require.Equal(t, want.Address(), key.Address())
	}

	_, err = NewKeyFromHex("not-hex", "wasm")
	require.ErrorContains(t, err, "decode private key")
}

func TestKeySign_Deterministic(t *testing.T) {
	key := testKey(t)
	msg := []byte("sign me")

	sig1, err := key.sign(msg)
	require.NoError(t, err)
	sig2, err := key.sign(msg)
	require.NoError(t, err)
	require.Equal(t, sig1, sig2)
	require.True(t, key.PubKey().VerifySignature(msg, sig1))
}
