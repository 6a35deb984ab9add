// Package chain talks to the reward-pool node over JSON-RPC. Contract
// internals are opaque to the platform; this package only submits pool
// operations and observes transaction outcomes.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/utils/safe"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
	ID      int             `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Client is a JSON-RPC client for the reward-pool node.
type Client struct {
	rpcURL     string
	httpClient *http.Client
}

type Config struct {
	RPCURL  string
	Timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "RPC URL is empty")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		rpcURL: cfg.RPCURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Call makes a single JSON-RPC call. Transport failures map to
// types.ErrTransient (the node is unreachable); an RPC-level error means the
// node received and refused the request and maps to types.ErrChainRejected.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal rpc request", goerr.V("method", method))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create rpc request", goerr.V("method", method))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, goerr.Wrap(types.ErrTransient, "pool node unreachable",
			goerr.V("method", method),
			goerr.V("cause", err.Error()),
		)
	}
	defer safe.Close(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(types.ErrTransient, "failed to read rpc response",
			goerr.V("method", method),
			goerr.V("cause", err.Error()),
		)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, goerr.Wrap(types.ErrTransient, "malformed rpc response",
			goerr.V("method", method),
			goerr.V("body", string(respBody)),
		)
	}

	if rpcResp.Error != nil {
		return nil, goerr.Wrap(types.ErrChainRejected, "pool node rejected call",
			goerr.V("method", method),
			goerr.V("code", rpcResp.Error.Code),
			goerr.V("message", rpcResp.Error.Message),
		)
	}

	return rpcResp.Result, nil
}

// PoolTxResult is the node's answer to a mutating pool call.
type PoolTxResult struct {
	Hash      string `json:"hash"`
	Confirmed bool   `json:"confirmed"`
}

// SubmitPoolTx submits a mutating pool operation. The node honors the
// idempotency key inside params, but callers must not rely on that alone;
// the gateway layers its own replay guard on top.
func (c *Client) SubmitPoolTx(ctx context.Context, method string, params map[string]any) (*PoolTxResult, error) {
	raw, err := c.Call(ctx, method, []any{params})
	if err != nil {
		return nil, err
	}

	var result PoolTxResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, goerr.Wrap(types.ErrTransient, "malformed pool tx result",
			goerr.V("method", method),
			goerr.V("raw", string(raw)),
		)
	}
	if result.Hash == "" {
		return nil, goerr.Wrap(types.ErrTransient, "pool tx result missing hash",
			goerr.V("method", method),
		)
	}

	return &result, nil
}

// GetPoolBalance reads the pool balance for one repository and currency.
func (c *Client) GetPoolBalance(ctx context.Context, repoID types.GitHubRepoID, currency types.Currency) (types.Amount, error) {
	raw, err := c.Call(ctx, "getpoolbalance", []any{map[string]any{
		"repo_id":  int64(repoID),
		"currency": string(currency),
	}})
	if err != nil {
		return 0, err
	}

	var balance int64
	if err := json.Unmarshal(raw, &balance); err != nil {
		return 0, goerr.Wrap(types.ErrTransient, "malformed balance result",
			goerr.V("raw", string(raw)),
		)
	}

	return types.Amount(balance), nil
}

// Transaction states reported by the pool node.
const (
	txStateMined    = "mined"
	txStatePending  = "pending"
	txStateRejected = "rejected"
)

// GetTransactionState polls a submitted transaction once.
func (c *Client) GetTransactionState(ctx context.Context, hash types.TxHash) (string, error) {
	raw, err := c.Call(ctx, "gettransaction", []any{string(hash)})
	if err != nil {
		return "", err
	}

	var result struct {
		Hash  string `json:"hash"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", goerr.Wrap(types.ErrTransient, "malformed transaction result",
			goerr.V("raw", string(raw)),
		)
	}

	switch result.State {
	case txStateMined, txStatePending, txStateRejected:
		return result.State, nil
	default:
		return "", goerr.Wrap(types.ErrTransient, "unknown transaction state",
			goerr.V("state", result.State),
			goerr.V("hash", hash),
		)
	}
}

// WaitForMined polls for a transaction until it is mined, rejected, or the
// context expires. A pending state is retried; rejection is terminal.
func (c *Client) WaitForMined(ctx context.Context, hash types.TxHash, pollInterval time.Duration) error {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return goerr.Wrap(types.ErrChainPending, "gave up waiting for transaction",
				goerr.V("hash", hash),
			)
		case <-ticker.C:
			state, err := c.GetTransactionState(ctx, hash)
			if err != nil {
				// The node may briefly not know a just-submitted tx;
				// keep polling until the context deadline decides.
				continue
			}

			switch state {
			case txStateMined:
				return nil
			case txStateRejected:
				return goerr.Wrap(types.ErrChainRejected, "transaction rejected",
					goerr.V("hash", hash),
				)
			}
		}
	}
}
