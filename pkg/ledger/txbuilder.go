package ledger

import (
	"context"
	"fmt"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
)

// BuildTransaction composes packed messages and signer metadata into an
// unsigned transaction. Each signer's sequence is taken from a fresh account
// query; the transaction is rebuilt from scratch on every workflow attempt
// precisely because the sequence may have moved between attempts.
//
// The result is deterministic for identical inputs and account state, which
// the signer relies on: sign bytes and broadcast bytes must match.
func (c *Client) BuildTransaction(
	ctx context.Context,
	msgs []*codectypes.Any,
	signerAddresses []string,
	pubKeys [][]byte,
	fee sdk.Coins,
	memo string,
	gasLimit uint64,
) (*txtypes.Tx, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}
	if len(signerAddresses) != len(pubKeys) {
		return nil, fmt.Errorf("got %d signer addresses but %d public keys", len(signerAddresses), len(pubKeys))
	}

	signerInfos := make([]*txtypes.SignerInfo, 0, len(signerAddresses))
	for i, address := range signerAddresses {
		account, err := c.QueryAccount(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("querying signer %s: %w", address, err)
		}
		info, err := signerInfo(pubKeys[i], account.Sequence)
		if err != nil {
			return nil, err
		}
		signerInfos = append(signerInfos, info)
	}

	return &txtypes.Tx{
		Body: &txtypes.TxBody{
			Messages: msgs,
			Memo:     memo,
		},
		AuthInfo: &txtypes.AuthInfo{
			SignerInfos: signerInfos,
			Fee: &txtypes.Fee{
				Amount:   fee,
				GasLimit: gasLimit,
			},
		},
	}, nil
}

// signerInfo binds a public key, the DIRECT signing mode and the signer's
// sequence at build time.
func signerInfo(pubKey []byte, sequence uint64) (*txtypes.SignerInfo, error) {
	packed, err := codectypes.NewAnyWithValue(&secp256k1.PubKey{Key: pubKey})
	if err != nil {
		return nil, &EncodingError{Msg: "public key", Cause: err}
	}
	return &txtypes.SignerInfo{
		PublicKey: packed,
		ModeInfo: &txtypes.ModeInfo{
			Sum: &txtypes.ModeInfo_Single_{
				Single: &txtypes.ModeInfo_Single{Mode: signing.SignMode_SIGN_MODE_DIRECT},
			},
		},
		Sequence: sequence,
	}, nil
}

// SignTransaction appends key's signature to tx. The signer's account number
// is resolved through the directory first; a missing account number is fatal,
// no amount of retrying fixes an unfunded address.
func (c *Client) SignTransaction(ctx context.Context, tx *txtypes.Tx, key *Key) error {
	accountNumber, err := c.ensureAccountNumber(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingAccountNumber, err)
	}

	bodyBytes, err := tx.Body.Marshal()
	if err != nil {
		return &EncodingError{Msg: "tx body", Cause: err}
	}
	authInfoBytes, err := tx.AuthInfo.Marshal()
	if err != nil {
		return &EncodingError{Msg: "auth info", Cause: err}
	}

	signDoc := &txtypes.SignDoc{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		ChainId:       c.cfg.ChainID,
		AccountNumber: accountNumber,
	}
	signBytes, err := signDoc.Marshal()
	if err != nil {
		return &EncodingError{Msg: "sign doc", Cause: err}
	}

	signature, err := key.sign(signBytes)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, signature)
	return nil
}

// marshalTx serializes a signed transaction for broadcast.
func marshalTx(tx *txtypes.Tx) ([]byte, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, &EncodingError{Msg: "signed tx", Cause: err}
	}
	return raw, nil
}
