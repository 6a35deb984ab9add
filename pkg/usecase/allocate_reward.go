package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/repository"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// AllocateReward assigns a bounty from the repository pool to a recipient
// for one issue. The operation is idempotent per (repo, issue, currency): a
// confirmed allocation replays its TxRef, a pending one is returned as-is
// for reconciliation, and only a terminally failed history admits a new
// attempt under a fresh salted key.
func (x *UseCase) AllocateReward(ctx context.Context, input *model.AllocateRewardInput) (*model.TxRef, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	reg, err := x.clients.RewardRepository().GetRegistration(ctx, input.RepoID)
	if err != nil {
		return nil, err
	}
	if !reg.IsActive {
		return nil, goerr.Wrap(types.ErrNotInstalled, "repository registration is inactive",
			goerr.V("repoID", reg.RepoID),
			goerr.V("install_url", x.clients.GitHub().InstallURL()),
		)
	}

	ok, err := x.canView(ctx, input.Principal, reg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, goerr.Wrap(types.ErrNotAuthorized, "user has no access to repository",
			goerr.V("repo", reg.FullName()),
			goerr.V("login", input.Principal.Login),
		)
	}

	issue, err := x.clients.GitHub().GetIssue(ctx, reg.InstallationID, reg.Owner, reg.Name, input.Issue)
	if err != nil {
		return nil, err
	}
	if !issue.IsOpen() {
		return nil, goerr.Wrap(types.ErrValidationFailed, "issue is not open",
			goerr.V("repo", reg.FullName()),
			goerr.V("issue", input.Issue),
			goerr.V("state", issue.State),
		)
	}

	unlock := x.repoLocks.Lock(strings.ToLower(reg.FullName()))
	defer unlock()

	history, err := x.clients.RewardRepository().ListAllocations(ctx, input.RepoID, input.Issue, input.Currency)
	if err != nil {
		return nil, err
	}

	attempt := 0
	for _, prior := range history {
		switch prior.Status {
		case types.AllocationConfirmed:
			if prior.TxHash == "" {
				return nil, goerr.Wrap(types.ErrInconsistent, "confirmed allocation has no transaction hash",
					goerr.V("allocationID", prior.ID),
				)
			}
			logging.From(ctx).Info("Replaying confirmed allocation",
				slog.String("allocationID", string(prior.ID)),
				slog.String("hash", string(prior.TxHash)),
			)
			return &model.TxRef{Hash: prior.TxHash, Confirmed: true}, nil

		case types.AllocationPending:
			return &model.TxRef{Hash: prior.TxHash, Confirmed: false}, nil

		case types.AllocationFailed:
			attempt++
		}
	}

	limit, err := x.limits.Ceiling(input.Currency, types.WindowTransfer)
	if err != nil {
		return nil, err
	}

	subject := input.Principal.UserID
	now := x.now().UTC()
	if err := x.clients.RewardRepository().ConsumeWindow(ctx, subject, input.Currency, types.WindowTransfer, input.Amount, limit, now); err != nil {
		if errors.Is(err, repository.ErrLimitExceeded) {
			return nil, goerr.Wrap(types.ErrLimitExceeded, "transfer window ceiling reached",
				goerr.V("subject", subject),
				goerr.V("currency", input.Currency),
				goerr.V("amount", input.Amount),
				goerr.V("limit", limit),
			)
		}
		return nil, err
	}

	alloc := &model.RewardAllocation{
		ID:          types.NewAllocationID(),
		RepoID:      input.RepoID,
		Issue:       input.Issue,
		Currency:    input.Currency,
		Amount:      input.Amount,
		Recipient:   input.Recipient,
		AllocatedBy: subject,
		Key:         model.AllocationKey(input.RepoID, input.Issue, input.Currency, attempt),
		Status:      types.AllocationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := alloc.Validate(); err != nil {
		x.releaseWindow(ctx, subject, input.Currency, types.WindowTransfer, input.Amount)
		return nil, err
	}

	if err := x.clients.RewardRepository().CreateAllocation(ctx, alloc); err != nil {
		x.releaseWindow(ctx, subject, input.Currency, types.WindowTransfer, input.Amount)
		if errors.Is(err, repository.ErrAlreadyExists) {
			// Lost a race on the idempotency key; surface the winner.
			return x.replayAllocation(ctx, alloc.Key)
		}
		return nil, err
	}

	ref, err := x.clients.Chain().Allocate(ctx, alloc)
	if err != nil {
		if uerr := x.clients.RewardRepository().UpdateAllocationStatus(ctx, alloc.ID, types.AllocationFailed, ""); uerr != nil {
			logging.From(ctx).Error("Failed to mark allocation failed", slog.Any("error", uerr))
		}
		x.releaseWindow(ctx, subject, input.Currency, types.WindowTransfer, input.Amount)
		return nil, err
	}

	status := types.AllocationPending
	if ref.Confirmed {
		status = types.AllocationConfirmed
	}
	if err := x.clients.RewardRepository().UpdateAllocationStatus(ctx, alloc.ID, status, ref.Hash); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("Allocated reward",
		slog.String("allocationID", string(alloc.ID)),
		slog.Int64("repoID", int64(alloc.RepoID)),
		slog.Int("issue", int(alloc.Issue)),
		slog.String("currency", string(alloc.Currency)),
		slog.Int64("amount", int64(alloc.Amount)),
		slog.String("hash", string(ref.Hash)),
		slog.Bool("confirmed", ref.Confirmed),
	)

	if ref.Confirmed {
		alloc.Status = status
		alloc.TxHash = ref.Hash
		x.exportAllocationAudit(ctx, alloc)
	}

	return ref, nil
}

func (x *UseCase) replayAllocation(ctx context.Context, key types.IdempotencyKey) (*model.TxRef, error) {
	existing, err := x.clients.RewardRepository().GetAllocationByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	switch existing.Status {
	case types.AllocationConfirmed:
		return &model.TxRef{Hash: existing.TxHash, Confirmed: true}, nil
	case types.AllocationPending:
		return &model.TxRef{Hash: existing.TxHash, Confirmed: false}, nil
	default:
		// The key was taken by an attempt that already failed; a retry
		// will salt a fresh key past it.
		return nil, goerr.Wrap(types.ErrTransient, "allocation raced with a failed attempt",
			goerr.V("key", key),
			goerr.V("allocationID", existing.ID),
		)
	}
}
