package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// installStrategy is one way of locating the installation that authorizes
// operations on a repository. Strategies run in precedence order; the first
// hit wins. A strategy reports (nil, nil) for a clean miss so the chain can
// continue, and a non-nil error only for failures that must stop resolution.
type installStrategy func(ctx context.Context, principal model.Principal, owner, name string) (*model.Installation, error)

// resolveInstallation walks the strategy chain for owner/name. A repo-scoped
// grant outranks an owner-wide one, so the repo-specific lookup runs first.
// When every strategy misses cleanly the caller gets types.ErrNotInstalled
// carrying the URL where the user can complete installation.
func (x *UseCase) resolveInstallation(ctx context.Context, principal model.Principal, owner, name string) (*model.Installation, error) {
	strategies := []installStrategy{
		x.repoInstallation,
		x.userInstallations,
	}

	for _, strategy := range strategies {
		inst, err := strategy(ctx, principal, owner, name)
		if err != nil {
			return nil, err
		}
		if inst != nil {
			logging.From(ctx).Debug("Resolved installation",
				slog.String("owner", owner),
				slog.String("name", name),
				slog.Int64("installID", int64(inst.ID)),
				slog.String("scope", string(inst.Scope)),
			)
			return inst, nil
		}
	}

	return nil, goerr.Wrap(types.ErrNotInstalled, "app is not installed for repository",
		goerr.V("owner", owner),
		goerr.V("name", name),
		goerr.V("install_url", x.clients.GitHub().InstallURL()),
	)
}

// repoInstallation asks GitHub for the installation granted specifically for
// the repository, using the app credentials. Transient and rate-limit
// failures propagate; only a definitive "not installed" lets the chain fall
// through to the next strategy.
func (x *UseCase) repoInstallation(ctx context.Context, _ model.Principal, owner, name string) (*model.Installation, error) {
	inst, err := x.clients.GitHub().FindRepoInstallation(ctx, owner, name)
	if err != nil {
		if errors.Is(err, types.ErrNotInstalled) {
			return nil, nil
		}
		return nil, err
	}
	return inst, nil
}

// userInstallations scans the installations visible to the principal's own
// token for an owner-wide grant covering the repository's owner. Skipped for
// principals without a token.
func (x *UseCase) userInstallations(ctx context.Context, principal model.Principal, owner, _ string) (*model.Installation, error) {
	if principal.Token == "" {
		return nil, nil
	}

	installations, err := x.clients.GitHub().ListUserInstallations(ctx, principal.Token)
	if err != nil {
		return nil, err
	}

	for _, inst := range installations {
		if !x.clients.GitHub().MatchesApp(inst) {
			continue
		}
		if inst.OwnerLogin == owner {
			return inst, nil
		}
	}

	return nil, nil
}
