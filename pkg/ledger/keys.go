package ledger

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// Key is a secp256k1 signing identity. The bech32 address is derived once at
// construction from the public key and the chain's address prefix.
type Key struct {
	priv    *secp256k1.PrivKey
	address string
}

// NewKey wraps a raw 32-byte secp256k1 private key.
func NewKey(privKeyBytes []byte, addressPrefix string) (*Key, error) {
	if len(privKeyBytes) != 32 {
		return nil, fmt.Errorf("invalid private key length: expected 32, got %d", len(privKeyBytes))
	}
	priv := &secp256k1.PrivKey{Key: privKeyBytes}
	address, err := bech32.ConvertAndEncode(addressPrefix, priv.PubKey().Address())
	if err != nil {
		return nil, fmt.Errorf("derive address: %w", err)
	}
	return &Key{priv: priv, address: address}, nil
}

// NewKeyFromHex wraps a hex-encoded secp256k1 private key.
func NewKeyFromHex(privKeyHex, addressPrefix string) (*Key, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(strings.TrimPrefix(privKeyHex, "0x")))
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	return NewKey(raw, addressPrefix)
}

// Address returns the bech32 account address.
func (k *Key) Address() string { return k.address }

// PubKey returns the public key.
func (k *Key) PubKey() cryptotypes.PubKey { return k.priv.PubKey() }

// PubKeyBytes returns the compressed public key bytes.
func (k *Key) PubKeyBytes() []byte { return k.priv.PubKey().Bytes() }

// sign produces a signature over msg.
func (k *Key) sign(msg []byte) ([]byte, error) {
	signature, err := k.priv.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return signature, nil
}
