package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/mock"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/infra"
	"github.com/issuepool/issuepool/pkg/repository/memory"
	"github.com/issuepool/issuepool/pkg/usecase"
)

func allocateInput(amount types.Amount) *model.AllocateRewardInput {
	return &model.AllocateRewardInput{
		Principal: authedPrincipal(),
		RepoID:    555,
		Issue:     42,
		Currency:  types.CurrencyGAS,
		Amount:    amount,
		Recipient: "NWalletAddr1",
	}
}

func TestAllocateReward(t *testing.T) {
	ctx := context.Background()

	setup := func() (*mock.ChainGatewayMock, interfaces.RewardRepository, *usecase.UseCase) {
		ghMock := newGitHubMock()
		ghMock.GetIssueFunc = func(ctx context.Context, installID types.GitHubAppInstallID, owner, name string, number types.GitHubIssueNumber) (*model.GitHubIssue, error) {
			return &model.GitHubIssue{Number: number, Title: "bug", State: "open"}, nil
		}
		chainMock := &mock.ChainGatewayMock{
			AllocateFunc: func(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error) {
				return &model.TxRef{Hash: "0xalloc", Confirmed: true}, nil
			},
		}
		memRepo := memory.New()
		seedRegistration(t, memRepo, false)

		uc := usecase.New(
			infra.New(
				infra.WithGitHub(ghMock),
				infra.WithChain(chainMock),
				infra.WithRewardRepository(memRepo),
			),
			usecase.WithLimits(fundLimits()),
		)
		return chainMock, memRepo, uc
	}

	t.Run("confirmed allocation replays without a second chain call", func(t *testing.T) {
		chainMock, _, uc := setup()

		first := gt.R1(uc.AllocateReward(ctx, allocateInput(50))).NoError(t)
		gt.V(t, first.Hash).Equal("0xalloc")
		gt.True(t, first.Confirmed)

		second := gt.R1(uc.AllocateReward(ctx, allocateInput(50))).NoError(t)
		gt.V(t, second.Hash).Equal("0xalloc")
		gt.True(t, second.Confirmed)
		gt.A(t, chainMock.AllocateCalls()).Length(1)
	})

	t.Run("pending allocation returns its ref and waits for reconciliation", func(t *testing.T) {
		chainMock, memRepo, uc := setup()
		chainMock.AllocateFunc = func(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error) {
			return &model.TxRef{Hash: "0xpending", Confirmed: false}, nil
		}

		first := gt.R1(uc.AllocateReward(ctx, allocateInput(50))).NoError(t)
		gt.False(t, first.Confirmed)

		second := gt.R1(uc.AllocateReward(ctx, allocateInput(50))).NoError(t)
		gt.V(t, second.Hash).Equal("0xpending")
		gt.False(t, second.Confirmed)
		gt.A(t, chainMock.AllocateCalls()).Length(1)

		pending := gt.R1(memRepo.ListPendingAllocations(ctx)).NoError(t)
		gt.A(t, pending).Length(1)
	})

	t.Run("terminal failure admits a retry under a fresh key", func(t *testing.T) {
		chainMock, _, uc := setup()
		chainMock.AllocateFunc = func(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error) {
			return nil, goerr.Wrap(types.ErrChainRejected, "contract refused")
		}

		_, err := uc.AllocateReward(ctx, allocateInput(50))
		gt.True(t, errors.Is(err, types.ErrChainRejected))

		chainMock.AllocateFunc = func(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error) {
			return &model.TxRef{Hash: "0xsecond", Confirmed: true}, nil
		}
		ref := gt.R1(uc.AllocateReward(ctx, allocateInput(50))).NoError(t)
		gt.V(t, ref.Hash).Equal("0xsecond")

		calls := chainMock.AllocateCalls()
		gt.A(t, calls).Length(2)
		gt.V(t, calls[0].Alloc.Key == calls[1].Alloc.Key).Equal(false)
	})

	t.Run("rejected allocation refunds the transfer window", func(t *testing.T) {
		chainMock, _, uc := setup()
		chainMock.AllocateFunc = func(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error) {
			return nil, goerr.Wrap(types.ErrChainRejected, "contract refused")
		}

		_, err := uc.AllocateReward(ctx, allocateInput(150))
		gt.True(t, errors.Is(err, types.ErrChainRejected))

		// The full ceiling is available for the retry.
		chainMock.AllocateFunc = func(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error) {
			return &model.TxRef{Hash: "0xok", Confirmed: true}, nil
		}
		gt.R1(uc.AllocateReward(ctx, allocateInput(150))).NoError(t)
	})

	t.Run("transfer ceiling rejects before any chain call", func(t *testing.T) {
		chainMock, _, uc := setup()

		_, err := uc.AllocateReward(ctx, allocateInput(151))
		gt.True(t, errors.Is(err, types.ErrLimitExceeded))
		gt.A(t, chainMock.AllocateCalls()).Length(0)
	})

	t.Run("closed issue is rejected", func(t *testing.T) {
		chainMock, _, uc := setup()
		ghMock := newGitHubMock()
		ghMock.GetIssueFunc = func(ctx context.Context, installID types.GitHubAppInstallID, owner, name string, number types.GitHubIssueNumber) (*model.GitHubIssue, error) {
			return &model.GitHubIssue{Number: number, State: "closed"}, nil
		}
		memRepo := memory.New()
		seedRegistration(t, memRepo, false)
		uc = usecase.New(infra.New(
			infra.WithGitHub(ghMock),
			infra.WithChain(chainMock),
			infra.WithRewardRepository(memRepo),
		))

		_, err := uc.AllocateReward(ctx, allocateInput(50))
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})
}

func TestReconcileAllocations(t *testing.T) {
	ctx := context.Background()

	setupPending := func() (*mock.ChainGatewayMock, interfaces.RewardRepository, *usecase.UseCase) {
		chainMock, memRepo, uc := func() (*mock.ChainGatewayMock, interfaces.RewardRepository, *usecase.UseCase) {
			ghMock := newGitHubMock()
			ghMock.GetIssueFunc = func(ctx context.Context, installID types.GitHubAppInstallID, owner, name string, number types.GitHubIssueNumber) (*model.GitHubIssue, error) {
				return &model.GitHubIssue{Number: number, State: "open"}, nil
			}
			chainMock := &mock.ChainGatewayMock{
				AllocateFunc: func(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error) {
					return &model.TxRef{Hash: "0xpending", Confirmed: false}, nil
				},
			}
			memRepo := memory.New()
			seedRegistration(t, memRepo, false)
			uc := usecase.New(
				infra.New(
					infra.WithGitHub(ghMock),
					infra.WithChain(chainMock),
					infra.WithRewardRepository(memRepo),
				),
				usecase.WithLimits(fundLimits()),
			)
			return chainMock, memRepo, uc
		}()

		gt.R1(uc.AllocateReward(ctx, allocateInput(150))).NoError(t)
		return chainMock, memRepo, uc
	}

	t.Run("mined transaction promotes the allocation", func(t *testing.T) {
		chainMock, memRepo, uc := setupPending()
		chainMock.TxStatusFunc = func(ctx context.Context, hash types.TxHash) (*model.TxRef, error) {
			return &model.TxRef{Hash: hash, Confirmed: true}, nil
		}

		gt.NoError(t, uc.ReconcileAllocations(ctx))

		pending := gt.R1(memRepo.ListPendingAllocations(ctx)).NoError(t)
		gt.A(t, pending).Length(0)

		allocs := gt.R1(memRepo.ListAllocations(ctx, 555, 42, types.CurrencyGAS)).NoError(t)
		gt.A(t, allocs).Length(1)
		gt.V(t, allocs[0].Status).Equal(types.AllocationConfirmed)

		// The promoted allocation now replays.
		ref := gt.R1(uc.AllocateReward(ctx, allocateInput(150))).NoError(t)
		gt.True(t, ref.Confirmed)
		gt.V(t, ref.Hash).Equal("0xpending")
	})

	t.Run("rejected transaction demotes and refunds the window", func(t *testing.T) {
		chainMock, memRepo, uc := setupPending()
		chainMock.TxStatusFunc = func(ctx context.Context, hash types.TxHash) (*model.TxRef, error) {
			return nil, goerr.Wrap(types.ErrChainRejected, "rejected")
		}

		gt.NoError(t, uc.ReconcileAllocations(ctx))

		allocs := gt.R1(memRepo.ListAllocations(ctx, 555, 42, types.CurrencyGAS)).NoError(t)
		gt.A(t, allocs).Length(1)
		gt.V(t, allocs[0].Status).Equal(types.AllocationFailed)

		window := gt.R1(memRepo.GetWindow(ctx, "u-100", types.CurrencyGAS, types.WindowTransfer)).NoError(t)
		gt.V(t, window.AmountConsumed).Equal(0)
	})

	t.Run("unknown outcome leaves the allocation pending", func(t *testing.T) {
		chainMock, memRepo, uc := setupPending()
		chainMock.TxStatusFunc = func(ctx context.Context, hash types.TxHash) (*model.TxRef, error) {
			return nil, goerr.Wrap(types.ErrTransient, "node unreachable")
		}

		gt.NoError(t, uc.ReconcileAllocations(ctx))

		pending := gt.R1(memRepo.ListPendingAllocations(ctx)).NoError(t)
		gt.A(t, pending).Length(1)
	})
}
