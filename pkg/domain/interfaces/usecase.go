package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

type UseCase interface {
	RegisterRepository(ctx context.Context, input *model.RegisterRepositoryInput) (*model.Registration, error)
	ListAccessibleRepositories(ctx context.Context, principal model.Principal) ([]*model.Registration, []model.RepoDiagnostic, error)
	FundRepository(ctx context.Context, input *model.FundRepositoryInput) (*model.TxRef, error)
	AllocateReward(ctx context.Context, input *model.AllocateRewardInput) (*model.TxRef, error)
	ReconcileAllocations(ctx context.Context) error

	HandleInstallationChange(ctx context.Context, installID types.GitHubAppInstallID, removed bool) error
}
