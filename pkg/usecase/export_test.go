package usecase

import (
	"context"
	"time"

	"github.com/issuepool/issuepool/pkg/domain/model"
)

// Export unexported functions for testing
var NewKeyedLock = newKeyedLock

func (x *UseCase) ResolveInstallation(ctx context.Context, principal model.Principal, owner, name string) (*model.Installation, error) {
	return x.resolveInstallation(ctx, principal, owner, name)
}

func (x *UseCase) CanView(ctx context.Context, principal model.Principal, reg *model.Registration) (bool, error) {
	return x.canView(ctx, principal, reg)
}

func (x *UseCase) SetNowFunc(now func() time.Time) {
	x.now = now
}
