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

// RegisterRepository binds a repository to the requesting user and the
// installation that authorizes operations on it. Without a usable
// installation no row is written; the caller gets types.ErrNotInstalled with
// the URL to complete installation.
func (x *UseCase) RegisterRepository(ctx context.Context, input *model.RegisterRepositoryInput) (*model.Registration, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	owner, name, err := model.SplitFullName(input.FullName)
	if err != nil {
		return nil, err
	}

	unlock := x.repoLocks.Lock(strings.ToLower(input.FullName))
	defer unlock()

	inst, err := x.verifyInstallHint(ctx, input.InstallIDHint, owner, name)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		if inst, err = x.resolveInstallation(ctx, input.Principal, owner, name); err != nil {
			return nil, err
		}
	}

	repo, err := x.clients.GitHub().GetRepo(ctx, inst.ID, owner, name)
	if err != nil {
		return nil, err
	}
	if err := repo.Validate(); err != nil {
		return nil, err
	}

	now := x.now().UTC()
	reg := &model.Registration{
		RepoID:         repo.RepoID,
		Owner:          repo.Owner,
		Name:           repo.Name,
		RegisteredBy:   input.Principal.UserID,
		InstallationID: inst.ID,
		InstallScope:   inst.Scope,
		IsPrivate:      repo.IsPrivate,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := reg.Validate(); err != nil {
		return nil, err
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

	existing, err := x.clients.RewardRepository().GetRegistration(ctx, repo.RepoID)
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, goerr.Wrap(types.ErrAlreadyRegistered, "repository is already registered",
				goerr.V("repoID", repo.RepoID),
			)
		}
		// A deactivated row is revived in place, re-linked to the
		// freshly resolved installation.
		if err := x.clients.RewardRepository().UpdateInstallation(ctx, repo.RepoID, inst.ID, inst.Scope); err != nil {
			return nil, err
		}
		if err := x.clients.RewardRepository().SetActive(ctx, repo.RepoID, true); err != nil {
			return nil, err
		}
		return x.clients.RewardRepository().GetRegistration(ctx, repo.RepoID)

	case errors.Is(err, repository.ErrNotFound):
		// fallthrough to create

	default:
		return nil, err
	}

	if err := x.clients.RewardRepository().CreateRegistration(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, goerr.Wrap(types.ErrAlreadyRegistered, "repository is already registered",
				goerr.V("repoID", repo.RepoID),
			)
		}
		return nil, err
	}

	logging.From(ctx).Info("Registered repository",
		slog.String("repo", reg.FullName()),
		slog.Int64("repoID", int64(reg.RepoID)),
		slog.Int64("installID", int64(reg.InstallationID)),
		slog.String("scope", string(reg.InstallScope)),
	)

	return reg, nil
}

// verifyInstallHint validates a caller-supplied installation ID by fetching
// the repository through it. An unusable hint is discarded, not fatal; the
// normal resolution chain runs instead.
func (x *UseCase) verifyInstallHint(ctx context.Context, hint types.GitHubAppInstallID, owner, name string) (*model.Installation, error) {
	if hint == 0 {
		return nil, nil
	}

	if _, err := x.clients.GitHub().GetRepo(ctx, hint, owner, name); err != nil {
		logging.From(ctx).Warn("Installation hint did not verify, falling back to resolution",
			slog.Int64("hint", int64(hint)),
			slog.String("owner", owner),
			slog.String("name", name),
			slog.Any("error", err),
		)
		return nil, nil
	}

	return &model.Installation{
		ID:    hint,
		Scope: types.ScopeRepo,
	}, nil
}
