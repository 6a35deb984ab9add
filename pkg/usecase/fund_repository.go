package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/repository"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// FundRepository admits a deposit against the funder's rolling funding
// window and submits it to the reward pool. The window reservation is
// returned when the chain call fails so the ceiling only counts effective
// deposits.
func (x *UseCase) FundRepository(ctx context.Context, input *model.FundRepositoryInput) (*model.TxRef, error) {
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

	unlock := x.repoLocks.Lock(strings.ToLower(reg.FullName()))
	defer unlock()

	limit, err := x.limits.Ceiling(input.Currency, types.WindowFunding)
	if err != nil {
		return nil, err
	}

	subject := input.Principal.UserID
	now := x.now().UTC()
	if err := x.clients.RewardRepository().ConsumeWindow(ctx, subject, input.Currency, types.WindowFunding, input.Amount, limit, now); err != nil {
		if errors.Is(err, repository.ErrLimitExceeded) {
			return nil, goerr.Wrap(types.ErrLimitExceeded, "funding window ceiling reached",
				goerr.V("subject", subject),
				goerr.V("currency", input.Currency),
				goerr.V("amount", input.Amount),
				goerr.V("limit", limit),
			)
		}
		return nil, err
	}

	nonce := input.Nonce
	if nonce == "" {
		nonce = uuid.NewString()
	}
	key := model.FundingKey(input.RepoID, input.Currency, nonce)

	ref, err := x.clients.Chain().Fund(ctx, input.RepoID, input.Currency, input.Amount, key)
	if err != nil {
		x.releaseWindow(ctx, subject, input.Currency, types.WindowFunding, input.Amount)
		return nil, err
	}

	logging.From(ctx).Info("Funded repository pool",
		slog.Int64("repoID", int64(input.RepoID)),
		slog.String("currency", string(input.Currency)),
		slog.Int64("amount", int64(input.Amount)),
		slog.String("hash", string(ref.Hash)),
		slog.Bool("confirmed", ref.Confirmed),
	)

	return ref, nil
}

// releaseWindow refunds a reserved admission. Failures are logged, not
// propagated; the original chain error is the one the caller must see.
func (x *UseCase) releaseWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind, amount types.Amount) {
	if err := x.clients.RewardRepository().ReleaseWindow(ctx, subject, currency, kind, amount); err != nil {
		logging.From(ctx).Error("Failed to release window reservation",
			slog.String("subject", string(subject)),
			slog.String("currency", string(currency)),
			slog.String("kind", string(kind)),
			slog.Int64("amount", int64(amount)),
			slog.Any("error", err),
		)
	}
}
