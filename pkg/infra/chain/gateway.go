package chain

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// Gateway wraps the pool node client with the idempotency contract: a
// mutating call whose key was already confirmed replays the prior TxRef
// instead of re-executing. Unreachable submissions are retried with the
// same key; pending outcomes are handed back for reconciliation, never
// retried blindly.
type Gateway struct {
	client *Client

	mu        sync.RWMutex
	confirmed map[types.IdempotencyKey]*model.TxRef

	maxAttempts    int
	retryInterval  time.Duration
	pollInterval   time.Duration
	confirmTimeout time.Duration
}

var _ interfaces.ChainGateway = (*Gateway)(nil)

type GatewayOption func(*Gateway)

func WithRetry(maxAttempts int, interval time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.maxAttempts = maxAttempts
		g.retryInterval = interval
	}
}

func WithConfirmation(pollInterval, timeout time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.pollInterval = pollInterval
		g.confirmTimeout = timeout
	}
}

func NewGateway(client *Client, options ...GatewayOption) *Gateway {
	gw := &Gateway{
		client:         client,
		confirmed:      make(map[types.IdempotencyKey]*model.TxRef),
		maxAttempts:    3,
		retryInterval:  2 * time.Second,
		pollInterval:   2 * time.Second,
		confirmTimeout: 30 * time.Second,
	}
	for _, opt := range options {
		opt(gw)
	}
	return gw
}

func (g *Gateway) replay(key types.IdempotencyKey) *model.TxRef {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.confirmed[key]
}

func (g *Gateway) recordConfirmed(key types.IdempotencyKey, ref *model.TxRef) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.confirmed[key] = ref
}

// submit sends one mutating pool call, retrying with the same key while the
// node is unreachable. A rejection is never retried here; the key is burnt
// and the caller must mint a fresh one.
func (g *Gateway) submit(ctx context.Context, method string, key types.IdempotencyKey, params map[string]any) (*model.TxRef, error) {
	if prior := g.replay(key); prior != nil {
		logging.From(ctx).Info("Replaying confirmed chain call",
			slog.String("method", method),
			slog.String("key", string(key)),
			slog.String("hash", string(prior.Hash)),
		)
		return prior, nil
	}

	params["idempotency_key"] = string(key)

	var result *PoolTxResult
	for attempt := 1; ; attempt++ {
		var err error
		result, err = g.client.SubmitPoolTx(ctx, method, params)
		if err == nil {
			break
		}

		// Only unreachable-type failures are safe to retry with the
		// same key. Rejections and context aborts surface right away.
		if !errors.Is(err, types.ErrTransient) || attempt >= g.maxAttempts {
			return nil, err
		}

		logging.From(ctx).Warn("Pool node unreachable, retrying",
			slog.String("method", method),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		select {
		case <-ctx.Done():
			return nil, goerr.Wrap(types.ErrTransient, "aborted while retrying pool call",
				goerr.V("method", method),
			)
		case <-time.After(g.retryInterval):
		}
	}

	ref := &model.TxRef{
		Hash:      types.TxHash(result.Hash),
		Confirmed: result.Confirmed,
	}

	if !ref.Confirmed {
		waitCtx, cancel := context.WithTimeout(ctx, g.confirmTimeout)
		defer cancel()

		if err := g.client.WaitForMined(waitCtx, ref.Hash, g.pollInterval); err != nil {
			if errors.Is(err, types.ErrChainPending) {
				// Submitted but not yet mined: hand the unconfirmed ref
				// back so the caller can reconcile later.
				return ref, nil
			}
			return nil, err
		}
		ref.Confirmed = true
	}

	g.recordConfirmed(key, ref)
	return ref, nil
}

func (g *Gateway) Fund(ctx context.Context, repoID types.GitHubRepoID, currency types.Currency, amount types.Amount, key types.IdempotencyKey) (*model.TxRef, error) {
	return g.submit(ctx, "fundpool", key, map[string]any{
		"repo_id":  int64(repoID),
		"currency": string(currency),
		"amount":   int64(amount),
	})
}

func (g *Gateway) Allocate(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error) {
	return g.submit(ctx, "allocatereward", alloc.Key, map[string]any{
		"repo_id":   int64(alloc.RepoID),
		"issue":     int(alloc.Issue),
		"currency":  string(alloc.Currency),
		"amount":    int64(alloc.Amount),
		"recipient": string(alloc.Recipient),
	})
}

func (g *Gateway) PoolBalance(ctx context.Context, repoID types.GitHubRepoID, currency types.Currency) (types.Amount, error) {
	return g.client.GetPoolBalance(ctx, repoID, currency)
}

func (g *Gateway) TxStatus(ctx context.Context, hash types.TxHash) (*model.TxRef, error) {
	state, err := g.client.GetTransactionState(ctx, hash)
	if err != nil {
		return nil, err
	}

	switch state {
	case txStateMined:
		return &model.TxRef{Hash: hash, Confirmed: true}, nil
	case txStateRejected:
		return nil, goerr.Wrap(types.ErrChainRejected, "transaction rejected",
			goerr.V("hash", hash),
		)
	default:
		return &model.TxRef{Hash: hash, Confirmed: false}, nil
	}
}
