package interfaces

import (
	"context"
	"time"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

// RewardRepository is the persistent store for registrations, rolling-window
// counters and reward allocations.
type RewardRepository interface {
	// Registration operations. CreateRegistration fails with
	// repository.ErrAlreadyExists when a row for the repo ID exists.
	CreateRegistration(ctx context.Context, reg *model.Registration) error
	GetRegistration(ctx context.Context, repoID types.GitHubRepoID) (*model.Registration, error)
	GetRegistrationByFullName(ctx context.Context, owner, name string) (*model.Registration, error)
	ListRegistrations(ctx context.Context) ([]*model.Registration, error)
	ListRegistrationsByUser(ctx context.Context, userID types.UserID) ([]*model.Registration, error)
	// UpdateInstallation re-links a registration to a new installation.
	// RepoID is immutable; only the installation and scope change.
	UpdateInstallation(ctx context.Context, repoID types.GitHubRepoID, installID types.GitHubAppInstallID, scope types.InstallScope) error
	SetActive(ctx context.Context, repoID types.GitHubRepoID, active bool) error

	// ConsumeWindow is the atomic check-and-increment over the rolling
	// window. The expired window is reset before comparison; an admission
	// that would push consumption past the limit fails with
	// repository.ErrLimitExceeded and consumes nothing.
	ConsumeWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind, amount, limit types.Amount, now time.Time) error
	// ReleaseWindow returns a reserved amount after a failed downstream
	// call so the ceiling reflects only effective operations.
	ReleaseWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind, amount types.Amount) error
	GetWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind) (*model.FundingWindow, error)

	// Allocation operations. CreateAllocation fails with
	// repository.ErrAlreadyExists when the idempotency key is taken.
	CreateAllocation(ctx context.Context, alloc *model.RewardAllocation) error
	GetAllocationByKey(ctx context.Context, key types.IdempotencyKey) (*model.RewardAllocation, error)
	// ListAllocations returns all allocations for the (repo, issue,
	// currency) triple, newest first.
	ListAllocations(ctx context.Context, repoID types.GitHubRepoID, issue types.GitHubIssueNumber, currency types.Currency) ([]*model.RewardAllocation, error)
	ListPendingAllocations(ctx context.Context) ([]*model.RewardAllocation, error)
	UpdateAllocationStatus(ctx context.Context, id types.AllocationID, status types.AllocationStatus, hash types.TxHash) error
}
