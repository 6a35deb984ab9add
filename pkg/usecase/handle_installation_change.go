package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// HandleInstallationChange reacts to installation lifecycle events from
// GitHub. A removed installation deactivates every registration bound to it
// so funding and allocation stop immediately. Any other change re-verifies
// each bound registration against GitHub: repositories the installation
// still covers are (re)activated, repositories it no longer covers are
// deactivated. A repository dropped from the grant is therefore never
// reactivated by an unrelated add.
func (x *UseCase) HandleInstallationChange(ctx context.Context, installID types.GitHubAppInstallID, removed bool) error {
	regs, err := x.clients.RewardRepository().ListRegistrations(ctx)
	if err != nil {
		return err
	}

	var errs []error
	changed := 0
	for _, reg := range regs {
		if reg.InstallationID != installID {
			continue
		}

		active := false
		if !removed {
			covered, err := x.installationCovers(ctx, installID, reg)
			if err != nil {
				// Verification did not complete; leave the registration
				// as it is rather than guessing.
				errs = append(errs, err)
				continue
			}
			active = covered
		}

		if reg.IsActive == active {
			continue
		}
		if err := x.clients.RewardRepository().SetActive(ctx, reg.RepoID, active); err != nil {
			errs = append(errs, err)
			continue
		}
		changed++
	}

	logging.From(ctx).Info("Handled installation change",
		slog.Int64("installID", int64(installID)),
		slog.Bool("removed", removed),
		slog.Int("changed", changed),
	)

	return errors.Join(errs...)
}

// installationCovers probes whether the installation can still reach the
// registered repository.
func (x *UseCase) installationCovers(ctx context.Context, installID types.GitHubAppInstallID, reg *model.Registration) (bool, error) {
	_, err := x.clients.GitHub().GetRepo(ctx, installID, reg.Owner, reg.Name)
	if err != nil {
		if errors.Is(err, types.ErrNotInstalled) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
