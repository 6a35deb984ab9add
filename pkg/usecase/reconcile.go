package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// ReconcileAllocations sweeps pending allocations against the chain. A mined
// transaction promotes the allocation to confirmed, a rejected one demotes
// it to failed and refunds the transfer window, and an unknown outcome is
// left pending for the next pass. Store failures are collected; one bad row
// never stops the sweep.
func (x *UseCase) ReconcileAllocations(ctx context.Context) error {
	pending, err := x.clients.RewardRepository().ListPendingAllocations(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, alloc := range pending {
		if err := x.reconcileOne(ctx, alloc); err != nil {
			errs = append(errs, err)
		}
	}

	logging.From(ctx).Info("Reconciled pending allocations",
		slog.Int("pending", len(pending)),
		slog.Int("failures", len(errs)),
	)

	return errors.Join(errs...)
}

func (x *UseCase) reconcileOne(ctx context.Context, alloc *model.RewardAllocation) error {
	logger := logging.From(ctx).With(
		slog.String("allocationID", string(alloc.ID)),
		slog.String("hash", string(alloc.TxHash)),
	)

	if alloc.TxHash == "" {
		// The submission never produced a transaction; nothing on the
		// chain can resolve this row.
		logger.Warn("Pending allocation has no transaction hash, marking failed")
		return x.failAllocation(ctx, alloc)
	}

	ref, err := x.clients.Chain().TxStatus(ctx, alloc.TxHash)
	switch {
	case errors.Is(err, types.ErrChainRejected):
		logger.Warn("Chain rejected pending allocation")
		return x.failAllocation(ctx, alloc)

	case err != nil:
		// Unreachable node or unknown outcome; retry on the next pass.
		logger.Warn("Transaction status unavailable, leaving pending", slog.Any("error", err))
		return nil
	}

	if !ref.Confirmed {
		return nil
	}

	if err := x.clients.RewardRepository().UpdateAllocationStatus(ctx, alloc.ID, types.AllocationConfirmed, ref.Hash); err != nil {
		return err
	}

	logger.Info("Confirmed pending allocation")

	alloc.Status = types.AllocationConfirmed
	x.exportAllocationAudit(ctx, alloc)
	return nil
}

func (x *UseCase) failAllocation(ctx context.Context, alloc *model.RewardAllocation) error {
	if err := x.clients.RewardRepository().UpdateAllocationStatus(ctx, alloc.ID, types.AllocationFailed, ""); err != nil {
		return err
	}
	x.releaseWindow(ctx, alloc.AllocatedBy, alloc.Currency, types.WindowTransfer, alloc.Amount)
	return nil
}
