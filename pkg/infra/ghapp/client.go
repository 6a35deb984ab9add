package ghapp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

type Client struct {
	appID        types.GitHubAppID
	appSlug      string
	pem          types.GitHubAppPrivateKey
	appTransport *ghinstallation.AppsTransport
	tokens       *tokenCache
}

var _ interfaces.GitHubClient = (*Client)(nil)

func New(appID types.GitHubAppID, appSlug string, pem types.GitHubAppPrivateKey) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if appSlug == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appSlug is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	atr, err := ghinstallation.NewAppsTransport(http.DefaultTransport, int64(appID), []byte(pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create app transport")
	}

	client := &Client{
		appID:        appID,
		appSlug:      appSlug,
		pem:          pem,
		appTransport: atr,
	}
	client.tokens = newTokenCache(client.exchangeToken, defaultTokenMargin)

	return client, nil
}

// buildAppClient authenticates as the app itself (JWT), for app-level
// endpoints such as installation discovery and token minting.
func (x *Client) buildAppClient() *github.Client {
	return github.NewClient(github_ratelimit.NewClient(x.appTransport))
}

// buildInstallClient authenticates as one installation. The secondary
// rate-limit middleware sleeps on 429 instead of failing the call.
func (x *Client) buildInstallClient(installID types.GitHubAppInstallID) *github.Client {
	itr := ghinstallation.NewFromAppsTransport(x.appTransport, int64(installID))
	return github.NewClient(github_ratelimit.NewClient(itr))
}

func (x *Client) buildUserClient(ctx context.Context, token types.GitHubUserToken) *github.Client {
	return github.NewTokenClient(ctx, string(token))
}

// wrapGitHubError maps go-github failures onto the core taxonomy. Primary
// rate-limit exhaustion becomes ErrRateLimited with a retry_after hint;
// everything else that reached GitHub and failed is treated as transient.
func wrapGitHubError(err error, msg string, options ...goerr.Option) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		options = append(options,
			goerr.V("retry_after", time.Until(rateErr.Rate.Reset.Time)),
		)
		return goerr.Wrap(types.ErrRateLimited, msg, options...)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		options = append(options,
			goerr.V("retry_after", abuseErr.GetRetryAfter()),
		)
		return goerr.Wrap(types.ErrRateLimited, msg, options...)
	}

	options = append(options, goerr.V("cause", err.Error()))
	return goerr.Wrap(types.ErrTransient, msg, options...)
}

func (x *Client) FindRepoInstallation(ctx context.Context, owner, name string) (*model.Installation, error) {
	client := x.buildAppClient()

	installation, resp, err := client.Apps.FindRepositoryInstallation(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, goerr.Wrap(types.ErrNotInstalled, "no installation for repository",
				goerr.V("owner", owner),
				goerr.V("name", name),
			)
		}
		return nil, wrapGitHubError(err, "failed to find repository installation",
			goerr.V("owner", owner),
			goerr.V("name", name),
		)
	}

	logging.From(ctx).Debug("Found repository installation",
		slog.String("owner", owner),
		slog.String("name", name),
		slog.Int64("installID", installation.GetID()),
	)

	return &model.Installation{
		ID:         types.GitHubAppInstallID(installation.GetID()),
		AppID:      types.GitHubAppID(installation.GetAppID()),
		OwnerLogin: installation.GetAccount().GetLogin(),
		Scope:      types.ScopeRepo,
	}, nil
}

func (x *Client) ListUserInstallations(ctx context.Context, token types.GitHubUserToken) ([]*model.Installation, error) {
	client := x.buildUserClient(ctx, token)

	var all []*model.Installation
	opts := &github.ListOptions{PerPage: 100}

	for {
		installations, resp, err := client.Apps.ListUserInstallations(ctx, opts)
		if err != nil {
			return nil, wrapGitHubError(err, "failed to list user installations")
		}

		for _, inst := range installations {
			all = append(all, &model.Installation{
				ID:         types.GitHubAppInstallID(inst.GetID()),
				AppID:      types.GitHubAppID(inst.GetAppID()),
				OwnerLogin: inst.GetAccount().GetLogin(),
				Scope:      types.ScopeOwner,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.From(ctx).Debug("Listed user installations", slog.Int("count", len(all)))

	return all, nil
}

// MatchesApp reports whether the installation belongs to this platform's
// app. Matching is by registered app ID, not slug, so app renames do not
// break resolution.
func (x *Client) MatchesApp(inst *model.Installation) bool {
	return inst.AppID == x.appID
}

func (x *Client) IsCollaborator(ctx context.Context, installID types.GitHubAppInstallID, owner, name, login string) (bool, error) {
	client := x.buildInstallClient(installID)

	// 404 means "not a collaborator" and is reported as (false, nil) by
	// go-github; only transport-level failures surface as errors.
	isCollab, _, err := client.Repositories.IsCollaborator(ctx, owner, name, login)
	if err != nil {
		return false, wrapGitHubError(err, "failed to check collaborator",
			goerr.V("owner", owner),
			goerr.V("name", name),
			goerr.V("login", login),
		)
	}

	return isCollab, nil
}

func (x *Client) GetRepo(ctx context.Context, installID types.GitHubAppInstallID, owner, name string) (*model.GitHubRepo, error) {
	client := x.buildInstallClient(installID)

	repo, resp, err := client.Repositories.Get(ctx, owner, name)
	if err != nil {
		// 404 through an installation token means the installation does
		// not cover this repository (or it is gone).
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, goerr.Wrap(types.ErrNotInstalled, "repository not accessible through installation",
				goerr.V("owner", owner),
				goerr.V("name", name),
				goerr.V("installID", installID),
			)
		}
		return nil, wrapGitHubError(err, "failed to get repository",
			goerr.V("owner", owner),
			goerr.V("name", name),
		)
	}

	return &model.GitHubRepo{
		RepoID:    types.GitHubRepoID(repo.GetID()),
		Owner:     repo.GetOwner().GetLogin(),
		Name:      repo.GetName(),
		IsPrivate: repo.GetPrivate(),
	}, nil
}

func (x *Client) GetIssue(ctx context.Context, installID types.GitHubAppInstallID, owner, name string, number types.GitHubIssueNumber) (*model.GitHubIssue, error) {
	client := x.buildInstallClient(installID)

	issue, _, err := client.Issues.Get(ctx, owner, name, int(number))
	if err != nil {
		return nil, wrapGitHubError(err, "failed to get issue",
			goerr.V("owner", owner),
			goerr.V("name", name),
			goerr.V("number", number),
		)
	}

	return &model.GitHubIssue{
		Number: types.GitHubIssueNumber(issue.GetNumber()),
		Title:  issue.GetTitle(),
		State:  issue.GetState(),
	}, nil
}

func (x *Client) ListOpenIssues(ctx context.Context, installID types.GitHubAppInstallID, owner, name string) ([]*model.GitHubIssue, error) {
	client := x.buildInstallClient(installID)

	var all []*model.GitHubIssue
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		issues, resp, err := client.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, wrapGitHubError(err, "failed to list issues",
				goerr.V("owner", owner),
				goerr.V("name", name),
			)
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, &model.GitHubIssue{
				Number: types.GitHubIssueNumber(issue.GetNumber()),
				Title:  issue.GetTitle(),
				State:  issue.GetState(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func (x *Client) InstallationToken(ctx context.Context, installID types.GitHubAppInstallID) (*model.InstallationToken, error) {
	return x.tokens.Get(ctx, installID)
}

// exchangeToken mints the short-lived installation token with the app
// credentials. Called only by the token cache on a miss.
func (x *Client) exchangeToken(ctx context.Context, installID types.GitHubAppInstallID) (*model.InstallationToken, error) {
	client := x.buildAppClient()

	token, _, err := client.Apps.CreateInstallationToken(ctx, int64(installID), nil)
	if err != nil {
		return nil, wrapGitHubError(err, "failed to create installation token",
			goerr.V("installID", installID),
		)
	}

	logging.From(ctx).Debug("Minted installation token",
		slog.Int64("installID", int64(installID)),
		slog.Time("expiresAt", token.GetExpiresAt().Time),
	)

	return &model.InstallationToken{
		Token:     token.GetToken(),
		ExpiresAt: token.GetExpiresAt().Time,
	}, nil
}

func (x *Client) InstallURL() string {
	return "https://github.com/apps/" + x.appSlug + "/installations/new"
}
