package usecase

import (
	"context"
	"log/slog"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// canView decides whether the principal may see the registered repository.
// Public repositories are visible to everyone without touching GitHub.
// Private ones require a verified collaborator probe; any probe failure
// denies access rather than guessing.
func (x *UseCase) canView(ctx context.Context, principal model.Principal, reg *model.Registration) (bool, error) {
	if !reg.IsPrivate {
		return true, nil
	}

	if !principal.IsAuthenticated() {
		return false, nil
	}

	ok, err := x.clients.GitHub().IsCollaborator(ctx, reg.InstallationID, reg.Owner, reg.Name, principal.Login)
	if err != nil {
		logging.From(ctx).Warn("Visibility probe failed, denying access",
			slog.String("repo", reg.FullName()),
			slog.String("login", principal.Login),
			slog.Any("error", err),
		)
		return false, err
	}

	return ok, nil
}
