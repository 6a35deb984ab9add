package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHubClient ChainGateway BigQuery

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

// GitHubClient is the capability surface the core consumes from GitHub.
// All methods report rate-limit exhaustion as types.ErrRateLimited so
// callers can distinguish it from other failures.
type GitHubClient interface {
	// FindRepoInstallation queries the repo-specific installation endpoint
	// with the app credentials. Returns types.ErrNotInstalled when GitHub
	// reports no installation for the repository.
	FindRepoInstallation(ctx context.Context, owner, name string) (*model.Installation, error)

	// ListUserInstallations enumerates installations visible to the user
	// token, all pages.
	ListUserInstallations(ctx context.Context, token types.GitHubUserToken) ([]*model.Installation, error)

	// MatchesApp reports whether the installation belongs to this
	// platform's registered app.
	MatchesApp(inst *model.Installation) bool

	// IsCollaborator is a binary membership probe using the installation's
	// token.
	IsCollaborator(ctx context.Context, installID types.GitHubAppInstallID, owner, name, login string) (bool, error)

	GetRepo(ctx context.Context, installID types.GitHubAppInstallID, owner, name string) (*model.GitHubRepo, error)
	GetIssue(ctx context.Context, installID types.GitHubAppInstallID, owner, name string, number types.GitHubIssueNumber) (*model.GitHubIssue, error)
	ListOpenIssues(ctx context.Context, installID types.GitHubAppInstallID, owner, name string) ([]*model.GitHubIssue, error)

	// InstallationToken exchanges the installation ID for a short-lived
	// token. Implementations cache by installation ID and coalesce
	// concurrent misses.
	InstallationToken(ctx context.Context, installID types.GitHubAppInstallID) (*model.InstallationToken, error)

	// InstallURL is where a user completes installation out-of-band.
	InstallURL() string
}

// ChainGateway abstracts the on-chain reward pool. Contract internals are
// opaque; the core relies only on the idempotency contract: a mutating call
// whose key was already confirmed returns the prior TxRef instead of
// re-executing.
type ChainGateway interface {
	Fund(ctx context.Context, repoID types.GitHubRepoID, currency types.Currency, amount types.Amount, key types.IdempotencyKey) (*model.TxRef, error)
	Allocate(ctx context.Context, alloc *model.RewardAllocation) (*model.TxRef, error)
	PoolBalance(ctx context.Context, repoID types.GitHubRepoID, currency types.Currency) (types.Amount, error)

	// TxStatus polls a submitted transaction. A pending outcome returns a
	// TxRef with Confirmed unset; types.ErrChainRejected means the chain
	// has refused it.
	TxStatus(ctx context.Context, hash types.TxHash) (*model.TxRef, error)
}

// BigQuery is the optional allocation audit sink. A nil client disables
// the export without affecting the ledger.
type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}
