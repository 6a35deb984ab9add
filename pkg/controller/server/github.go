package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// installationChange is the distilled outcome of a GitHub App webhook event:
// which installation moved, and whether it went away.
type installationChange struct {
	InstallID types.GitHubAppInstallID
	Removed   bool
}

// validateGitHubAppEvent checks the webhook signature and parses the event.
// It returns nil when the event carries no installation change. Validation
// is synchronous; only the store updates run in the background.
func validateGitHubAppEvent(r *http.Request, secret types.GitHubAppSecret) (*installationChange, error) {
	ctx := r.Context()
	payload, err := github.ValidatePayload(r, []byte(secret))
	if err != nil {
		return nil, goerr.Wrap(err, "validating payload")
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		return nil, goerr.Wrap(err, "parsing webhook")
	}

	logging.From(ctx).Info("Received GitHub App event", slog.String("type", github.WebHookType(r)))

	return githubEventToChange(event), nil
}

func githubEventToChange(event any) *installationChange {
	switch ev := event.(type) {
	case *github.InstallationEvent:
		if ev.GetInstallation().GetID() == 0 {
			logging.Default().Warn("ignore installation event without installation ID")
			return nil
		}
		return &installationChange{
			InstallID: types.GitHubAppInstallID(ev.GetInstallation().GetID()),
			Removed:   ev.GetAction() == "deleted" || ev.GetAction() == "suspend",
		}

	case *github.InstallationRepositoriesEvent:
		if ev.GetInstallation().GetID() == 0 {
			logging.Default().Warn("ignore installation_repositories event without installation ID")
			return nil
		}
		// Repositories moved in or out of the grant; re-verification runs
		// either way, so treat it as a non-removal change.
		return &installationChange{
			InstallID: types.GitHubAppInstallID(ev.GetInstallation().GetID()),
			Removed:   false,
		}

	default:
		return nil
	}
}

// runInstallationChange applies the change in a background goroutine with a
// detached context.
func runInstallationChange(ctx context.Context, uc interfaces.UseCase, change *installationChange) {
	logger := logging.From(ctx).With(
		slog.Int64("installID", int64(change.InstallID)),
		slog.Bool("removed", change.Removed),
	)
	logger.Info("Applying installation change")

	if err := uc.HandleInstallationChange(ctx, change.InstallID, change.Removed); err != nil {
		logger.Error("Installation change failed", slog.Any("error", err))
	} else {
		logger.Info("Installation change applied")
	}
}
