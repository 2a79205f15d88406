package ledger

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/gogoproto/proto"
)

// The message builders are pure: they pack one domain operation into a
// type-tagged Any and never touch the network. A payload that cannot be
// serialized is an EncodingError -- retrying a pure encode is pointless.

// BuildSendMsg packs a bank send of amount from fromAddress to toAddress.
func BuildSendMsg(fromAddress, toAddress string, amount sdk.Coins) (*codectypes.Any, error) {
	msg := &banktypes.MsgSend{
		FromAddress: fromAddress,
		ToAddress:   toAddress,
		Amount:      amount,
	}
	return packMsg(msg)
}

// BuildStoreCodeMsg packs a store-code message. The bytecode is gzip-compressed
// at the highest level before encoding; the node decompresses on receipt.
func BuildStoreCodeMsg(sender string, wasmCode []byte) (*codectypes.Any, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, &EncodingError{Msg: "store code", Cause: err}
	}
	if _, err := zw.Write(wasmCode); err != nil {
		return nil, &EncodingError{Msg: "store code", Cause: err}
	}
	if err := zw.Close(); err != nil {
		return nil, &EncodingError{Msg: "store code", Cause: err}
	}

	msg := &wasmtypes.MsgStoreCode{
		Sender:       sender,
		WASMByteCode: buf.Bytes(),
	}
	return packMsg(msg)
}

// BuildInstantiateMsg packs an instantiate message for a stored code id.
// initMsg is any JSON-serializable value; funds may be nil.
func BuildInstantiateMsg(sender string, codeID uint64, initMsg any, label string, funds sdk.Coins) (*codectypes.Any, error) {
	raw, err := json.Marshal(initMsg)
	if err != nil {
		return nil, &EncodingError{Msg: "instantiate payload", Cause: err}
	}
	msg := &wasmtypes.MsgInstantiateContract{
		Sender: sender,
		CodeID: codeID,
		Label:  label,
		Msg:    wasmtypes.RawContractMessage(raw),
		Funds:  funds,
	}
	return packMsg(msg)
}

// BuildExecuteMsg packs an execute message for a deployed contract.
// execMsg is any JSON-serializable value; funds may be nil.
func BuildExecuteMsg(sender, contractAddress string, execMsg any, funds sdk.Coins) (*codectypes.Any, error) {
	raw, err := json.Marshal(execMsg)
	if err != nil {
		return nil, &EncodingError{Msg: "execute payload", Cause: err}
	}
	msg := &wasmtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: contractAddress,
		Msg:      wasmtypes.RawContractMessage(raw),
		Funds:    funds,
	}
	return packMsg(msg)
}

func packMsg(msg proto.Message) (*codectypes.Any, error) {
	packed, err := codectypes.NewAnyWithValue(msg)
	if err != nil {
		return nil, &EncodingError{Msg: fmt.Sprintf("%T", msg), Cause: err}
	}
	return packed, nil
}
