// Package rest adapts a Cosmos SDK gRPC-gateway (LCD) node to the ledger
// client's backend interfaces.
package rest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	ledgertypes "github.com/altuslabsxyz/cosmos-ledger/pkg/ledger/types"
)

// Client talks to the node's REST endpoint.
type Client struct {
	base string
	http *http.Client
}

// New creates a REST backend for the given base URL, e.g. "http://localhost:1317".
func New(endpoint string) *Client {
	return &Client{
		base: strings.TrimRight(endpoint, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// get performs a GET against path and returns the response body.
// A 404 is reported as errNotFound so callers can map it to absence.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// post performs a JSON POST against path and returns the response body.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	reqBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

var errNotFound = fmt.Errorf("not found")

// txResponse is the gateway's transaction envelope, shared by broadcast and
// tx-by-hash responses. Numeric fields arrive as strings.
type txResponse struct {
	Height    string `json:"height"`
	TxHash    string `json:"txhash"`
	Code      uint32 `json:"code"`
	RawLog    string `json:"raw_log"`
	GasWanted string `json:"gas_wanted"`
	GasUsed   string `json:"gas_used"`
	Timestamp string `json:"timestamp"`
}

// BroadcastSync submits signed transaction bytes in sync mode: the node
// acknowledges mempool admission, inclusion is confirmed separately.
func (c *Client) BroadcastSync(ctx context.Context, txBytes []byte) (*ledgertypes.BroadcastResult, error) {
	body, err := c.post(ctx, "/cosmos/tx/v1beta1/txs", map[string]string{
		"tx_bytes": base64.StdEncoding.EncodeToString(txBytes),
		"mode":     "BROADCAST_MODE_SYNC",
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		TxResponse txResponse `json:"tx_response"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing broadcast response: %w", err)
	}
	return &ledgertypes.BroadcastResult{
		TxHash: resp.TxResponse.TxHash,
		Code:   resp.TxResponse.Code,
		RawLog: resp.TxResponse.RawLog,
	}, nil
}

// TxByHash fetches the confirmed transaction record. It returns (nil, nil)
// while the transaction is not yet indexed.
func (c *Client) TxByHash(ctx context.Context, hash string) (*ledgertypes.TxResult, error) {
	body, err := c.get(ctx, "/cosmos/tx/v1beta1/txs/"+hash)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp struct {
		TxResponse txResponse `json:"tx_response"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing tx response: %w", err)
	}
	return toTxResult(&resp.TxResponse), nil
}

func toTxResult(r *txResponse) *ledgertypes.TxResult {
	height, _ := strconv.ParseInt(r.Height, 10, 64)
	gasWanted, _ := strconv.ParseInt(r.GasWanted, 10, 64)
	gasUsed, _ := strconv.ParseInt(r.GasUsed, 10, 64)
	return &ledgertypes.TxResult{
		TxHash:    r.TxHash,
		Height:    height,
		Code:      r.Code,
		RawLog:    r.RawLog,
		GasWanted: gasWanted,
		GasUsed:   gasUsed,
		Timestamp: r.Timestamp,
	}
}

// SmartContractState runs a read-only smart query and returns the contract's
// JSON answer.
func (c *Client) SmartContractState(ctx context.Context, contractAddr string, queryData []byte) ([]byte, error) {
	encoded := base64.URLEncoding.EncodeToString(queryData)
	body, err := c.get(ctx, fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/smart/%s", contractAddr, encoded))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing contract state response: %w", err)
	}
	return resp.Data, nil
}

// NetworkID returns the network id the node advertises.
func (c *Client) NetworkID(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/cosmos/base/tendermint/v1beta1/node_info")
	if err != nil {
		return "", err
	}

	var resp struct {
		DefaultNodeInfo struct {
			Network string `json:"network"`
		} `json:"default_node_info"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing node info: %w", err)
	}
	return resp.DefaultNodeInfo.Network, nil
}
