package usecase

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// ListAccessibleRepositories returns the active registrations the principal
// may see. Public repositories are included without touching GitHub; private
// ones are probed concurrently under a bounded worker count and a client-side
// rate cap. A repository whose probe fails is excluded and reported as a
// diagnostic; one bad probe never fails the whole listing.
func (x *UseCase) ListAccessibleRepositories(ctx context.Context, principal model.Principal) ([]*model.Registration, []model.RepoDiagnostic, error) {
	regs, err := x.clients.RewardRepository().ListRegistrations(ctx)
	if err != nil {
		return nil, nil, err
	}

	visible := make([]*model.Registration, len(regs))
	var mu sync.Mutex
	var diags []model.RepoDiagnostic

	limiter := rate.NewLimiter(rate.Limit(x.probeRate), x.probeConcurrency)

	var eg errgroup.Group
	eg.SetLimit(x.probeConcurrency)

	for i, reg := range regs {
		if !reg.IsActive {
			continue
		}
		if !reg.IsPrivate {
			visible[i] = reg
			continue
		}

		eg.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				mu.Lock()
				diags = append(diags, model.RepoDiagnostic{
					RepoID:   reg.RepoID,
					FullName: reg.FullName(),
					Reason:   "visibility probe aborted",
				})
				mu.Unlock()
				return nil
			}

			ok, err := x.canView(ctx, principal, reg)
			if err != nil {
				mu.Lock()
				diags = append(diags, model.RepoDiagnostic{
					RepoID:   reg.RepoID,
					FullName: reg.FullName(),
					Reason:   "visibility probe failed: " + err.Error(),
				})
				mu.Unlock()
				return nil
			}
			if ok {
				mu.Lock()
				visible[i] = reg
				mu.Unlock()
			}
			return nil
		})
	}

	// Probe outcomes are collected per repo; the group itself never fails.
	_ = eg.Wait()

	results := make([]*model.Registration, 0, len(regs))
	for _, reg := range visible {
		if reg != nil {
			results = append(results, reg)
		}
	}

	logging.From(ctx).Debug("Listed accessible repositories",
		slog.Int("total", len(regs)),
		slog.Int("visible", len(results)),
		slog.Int("excluded", len(diags)),
	)

	return results, diags, nil
}
