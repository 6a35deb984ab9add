package chain_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/infra/chain"
)

func newGateway(t *testing.T, handler func(method string, params []json.RawMessage) (any, *map[string]any)) *chain.Gateway {
	t.Helper()
	_, client := newNode(t, handler)
	return chain.NewGateway(client,
		chain.WithRetry(3, time.Millisecond),
		chain.WithConfirmation(time.Millisecond, 50*time.Millisecond),
	)
}

func paramField(t *testing.T, params []json.RawMessage, field string) string {
	t.Helper()
	gt.A(t, params).Length(1)
	var m map[string]any
	gt.NoError(t, json.Unmarshal(params[0], &m))
	v, _ := m[field].(string)
	return v
}

func TestGatewayFund(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed submission replays without a second call", func(t *testing.T) {
		submits := 0
		var seenKey string
		gw := newGateway(t, func(method string, params []json.RawMessage) (any, *map[string]any) {
			gt.V(t, method).Equal("fundpool")
			submits++
			seenKey = paramField(t, params, "idempotency_key")
			return map[string]any{"hash": "0xfund", "confirmed": true}, nil
		})

		key := model.FundingKey(100, types.CurrencyGAS, "nonce-1")
		ref := gt.R1(gw.Fund(ctx, 100, types.CurrencyGAS, 50, key)).NoError(t)
		gt.True(t, ref.Confirmed)
		gt.V(t, ref.Hash).Equal(types.TxHash("0xfund"))
		gt.V(t, seenKey).Equal(string(key))

		again := gt.R1(gw.Fund(ctx, 100, types.CurrencyGAS, 50, key)).NoError(t)
		gt.V(t, again.Hash).Equal(types.TxHash("0xfund"))
		gt.V(t, submits).Equal(1)
	})

	t.Run("retries transient failures with the same key", func(t *testing.T) {
		submits := 0
		gw := newGateway(t, func(method string, params []json.RawMessage) (any, *map[string]any) {
			submits++
			if submits < 3 {
				// A hash-less result reads as a transient node fault.
				return map[string]any{"confirmed": false}, nil
			}
			return map[string]any{"hash": "0xretry", "confirmed": true}, nil
		})

		key := model.FundingKey(100, types.CurrencyGAS, "nonce-2")
		ref := gt.R1(gw.Fund(ctx, 100, types.CurrencyGAS, 50, key)).NoError(t)
		gt.True(t, ref.Confirmed)
		gt.V(t, submits).Equal(3)
	})

	t.Run("rejection is returned without retry", func(t *testing.T) {
		submits := 0
		gw := newGateway(t, func(string, []json.RawMessage) (any, *map[string]any) {
			submits++
			return nil, rpcFailure(-32000, "pool is closed")
		})

		key := model.FundingKey(100, types.CurrencyGAS, "nonce-3")
		_, err := gw.Fund(ctx, 100, types.CurrencyGAS, 50, key)
		gt.True(t, errors.Is(err, types.ErrChainRejected))
		gt.V(t, submits).Equal(1)
	})
}

func TestGatewayAllocate(t *testing.T) {
	ctx := context.Background()

	alloc := &model.RewardAllocation{
		ID:        types.NewAllocationID(),
		RepoID:    100,
		Issue:     7,
		Currency:  types.CurrencyGAS,
		Amount:    25,
		Recipient: "NWalletAddr1",
		Key:       model.AllocationKey(100, 7, types.CurrencyGAS, 0),
	}

	t.Run("unconfirmed submission is polled to mined", func(t *testing.T) {
		polls := 0
		gw := newGateway(t, func(method string, _ []json.RawMessage) (any, *map[string]any) {
			switch method {
			case "allocatereward":
				return map[string]any{"hash": "0xalloc", "confirmed": false}, nil
			case "gettransaction":
				polls++
				state := "pending"
				if polls >= 2 {
					state = "mined"
				}
				return map[string]any{"hash": "0xalloc", "state": state}, nil
			default:
				t.Fatalf("unexpected method: %s", method)
				return nil, nil
			}
		})

		ref := gt.R1(gw.Allocate(ctx, alloc)).NoError(t)
		gt.True(t, ref.Confirmed)
		gt.V(t, ref.Hash).Equal(types.TxHash("0xalloc"))
	})

	t.Run("still pending at the deadline hands back an unconfirmed ref", func(t *testing.T) {
		gw := newGateway(t, func(method string, _ []json.RawMessage) (any, *map[string]any) {
			switch method {
			case "allocatereward":
				return map[string]any{"hash": "0xslow", "confirmed": false}, nil
			default:
				return map[string]any{"hash": "0xslow", "state": "pending"}, nil
			}
		})

		ref := gt.R1(gw.Allocate(ctx, alloc)).NoError(t)
		gt.False(t, ref.Confirmed)
		gt.V(t, ref.Hash).Equal(types.TxHash("0xslow"))
	})

	t.Run("rejection during confirmation surfaces as chain rejection", func(t *testing.T) {
		gw := newGateway(t, func(method string, _ []json.RawMessage) (any, *map[string]any) {
			switch method {
			case "allocatereward":
				return map[string]any{"hash": "0xbad", "confirmed": false}, nil
			default:
				return map[string]any{"hash": "0xbad", "state": "rejected"}, nil
			}
		})

		_, err := gw.Allocate(ctx, alloc)
		gt.True(t, errors.Is(err, types.ErrChainRejected))
	})
}

func TestGatewayTxStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("mined transaction is confirmed", func(t *testing.T) {
		gw := newGateway(t, func(string, []json.RawMessage) (any, *map[string]any) {
			return map[string]any{"hash": "0xabc", "state": "mined"}, nil
		})

		ref := gt.R1(gw.TxStatus(ctx, "0xabc")).NoError(t)
		gt.True(t, ref.Confirmed)
	})

	t.Run("pending transaction is unconfirmed", func(t *testing.T) {
		gw := newGateway(t, func(string, []json.RawMessage) (any, *map[string]any) {
			return map[string]any{"hash": "0xabc", "state": "pending"}, nil
		})

		ref := gt.R1(gw.TxStatus(ctx, "0xabc")).NoError(t)
		gt.False(t, ref.Confirmed)
	})

	t.Run("rejected transaction returns an error", func(t *testing.T) {
		gw := newGateway(t, func(string, []json.RawMessage) (any, *map[string]any) {
			return map[string]any{"hash": "0xabc", "state": "rejected"}, nil
		})

		_, err := gw.TxStatus(ctx, "0xabc")
		gt.True(t, errors.Is(err, types.ErrChainRejected))
	})
}
