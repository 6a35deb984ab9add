package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/domain/mock"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/infra"
	"github.com/issuepool/issuepool/pkg/usecase"
)

const testInstallURL = "https://github.com/apps/issuepool/installations/new"

func newGitHubMock() *mock.GitHubClientMock {
	return &mock.GitHubClientMock{
		InstallURLFunc: func() string { return testInstallURL },
		MatchesAppFunc: func(inst *model.Installation) bool {
			return inst.AppID == 1234
		},
	}
}

func authedPrincipal() model.Principal {
	return model.Principal{
		UserID: "u-100",
		Login:  "alice",
		Token:  "gho_dummy",
	}
}

func TestResolveInstallation(t *testing.T) {
	ctx := context.Background()

	t.Run("repo-specific installation wins without touching user installations", func(t *testing.T) {
		ghMock := newGitHubMock()
		ghMock.FindRepoInstallationFunc = func(ctx context.Context, owner, name string) (*model.Installation, error) {
			return &model.Installation{ID: 10, AppID: 1234, OwnerLogin: owner, Scope: types.ScopeRepo}, nil
		}
		uc := usecase.New(infra.New(infra.WithGitHub(ghMock)))

		inst := gt.R1(uc.ResolveInstallation(ctx, authedPrincipal(), "acme", "widgets")).NoError(t)
		gt.V(t, inst.ID).Equal(10)
		gt.V(t, inst.Scope).Equal(types.ScopeRepo)
		gt.A(t, ghMock.ListUserInstallationsCalls()).Length(0)
	})

	t.Run("falls back to owner-wide installation from user token", func(t *testing.T) {
		ghMock := newGitHubMock()
		ghMock.FindRepoInstallationFunc = func(ctx context.Context, owner, name string) (*model.Installation, error) {
			return nil, goerr.Wrap(types.ErrNotInstalled, "no installation")
		}
		ghMock.ListUserInstallationsFunc = func(ctx context.Context, token types.GitHubUserToken) ([]*model.Installation, error) {
			return []*model.Installation{
				{ID: 20, AppID: 9999, OwnerLogin: "acme", Scope: types.ScopeOwner},
				{ID: 21, AppID: 1234, OwnerLogin: "other", Scope: types.ScopeOwner},
				{ID: 22, AppID: 1234, OwnerLogin: "acme", Scope: types.ScopeOwner},
			}, nil
		}
		uc := usecase.New(infra.New(infra.WithGitHub(ghMock)))

		inst := gt.R1(uc.ResolveInstallation(ctx, authedPrincipal(), "acme", "widgets")).NoError(t)
		gt.V(t, inst.ID).Equal(22)
		gt.V(t, inst.Scope).Equal(types.ScopeOwner)
	})

	t.Run("no installation anywhere yields ErrNotInstalled with install URL", func(t *testing.T) {
		ghMock := newGitHubMock()
		ghMock.FindRepoInstallationFunc = func(ctx context.Context, owner, name string) (*model.Installation, error) {
			return nil, goerr.Wrap(types.ErrNotInstalled, "no installation")
		}
		ghMock.ListUserInstallationsFunc = func(ctx context.Context, token types.GitHubUserToken) ([]*model.Installation, error) {
			return nil, nil
		}
		uc := usecase.New(infra.New(infra.WithGitHub(ghMock)))

		_, err := uc.ResolveInstallation(ctx, authedPrincipal(), "acme", "widgets")
		gt.True(t, errors.Is(err, types.ErrNotInstalled))

		goErr := goerr.Unwrap(err)
		gt.V(t, goErr.Values()["install_url"]).Equal(any(testInstallURL))
	})

	t.Run("anonymous principal skips the user installation strategy", func(t *testing.T) {
		ghMock := newGitHubMock()
		ghMock.FindRepoInstallationFunc = func(ctx context.Context, owner, name string) (*model.Installation, error) {
			return nil, goerr.Wrap(types.ErrNotInstalled, "no installation")
		}
		uc := usecase.New(infra.New(infra.WithGitHub(ghMock)))

		_, err := uc.ResolveInstallation(ctx, model.Principal{}, "acme", "widgets")
		gt.True(t, errors.Is(err, types.ErrNotInstalled))
		gt.A(t, ghMock.ListUserInstallationsCalls()).Length(0)
	})

	t.Run("transient failure is not reported as NotInstalled", func(t *testing.T) {
		ghMock := newGitHubMock()
		ghMock.FindRepoInstallationFunc = func(ctx context.Context, owner, name string) (*model.Installation, error) {
			return nil, goerr.Wrap(types.ErrTransient, "github is down")
		}
		uc := usecase.New(infra.New(infra.WithGitHub(ghMock)))

		_, err := uc.ResolveInstallation(ctx, authedPrincipal(), "acme", "widgets")
		gt.True(t, errors.Is(err, types.ErrTransient))
		gt.False(t, errors.Is(err, types.ErrNotInstalled))
		gt.A(t, ghMock.ListUserInstallationsCalls()).Length(0)
	})

	t.Run("rate limit failure propagates from the fallback strategy", func(t *testing.T) {
		ghMock := newGitHubMock()
		ghMock.FindRepoInstallationFunc = func(ctx context.Context, owner, name string) (*model.Installation, error) {
			return nil, goerr.Wrap(types.ErrNotInstalled, "no installation")
		}
		ghMock.ListUserInstallationsFunc = func(ctx context.Context, token types.GitHubUserToken) ([]*model.Installation, error) {
			return nil, goerr.Wrap(types.ErrRateLimited, "secondary rate limit")
		}
		uc := usecase.New(infra.New(infra.WithGitHub(ghMock)))

		_, err := uc.ResolveInstallation(ctx, authedPrincipal(), "acme", "widgets")
		gt.True(t, errors.Is(err, types.ErrRateLimited))
	})
}
