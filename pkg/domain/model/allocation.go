package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/types"
)

// TxRef references a chain transaction returned by the reward-pool gateway.
type TxRef struct {
	Hash      types.TxHash
	Confirmed bool
}

// RewardAllocation is owned by its (repo, issue, currency) triple. Retries
// after a terminal failure create a new allocation with a fresh salted key;
// they never mutate a prior row.
type RewardAllocation struct {
	ID        types.AllocationID
	RepoID    types.GitHubRepoID
	Issue     types.GitHubIssueNumber
	Currency  types.Currency
	Amount    types.Amount
	Recipient types.WalletAddress
	// AllocatedBy is the subject whose transfer window admitted this
	// allocation. Kept so a late rejection can refund the right window.
	AllocatedBy types.UserID
	Key         types.IdempotencyKey
	TxHash      types.TxHash
	Status      types.AllocationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (x *RewardAllocation) Validate() error {
	if x.RepoID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "repo ID is empty")
	}
	if x.Issue == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "issue number is empty")
	}
	if !x.Currency.IsValid() {
		return goerr.Wrap(types.ErrValidationFailed, "unsupported currency", goerr.V("currency", x.Currency))
	}
	if x.Amount <= 0 {
		return goerr.Wrap(types.ErrValidationFailed, "amount must be positive", goerr.V("amount", x.Amount))
	}
	if x.Recipient == "" {
		return goerr.Wrap(types.ErrValidationFailed, "recipient wallet is empty")
	}
	if x.Key == "" {
		return goerr.Wrap(types.ErrValidationFailed, "idempotency key is empty")
	}
	return nil
}

// AllocationAuditRecord is the flattened allocation row exported to the
// audit sink once the chain confirms it.
type AllocationAuditRecord struct {
	RewardAllocation
	ExportedAt int64
}

// AllocationKey derives the idempotency key owned by the (repo, issue,
// currency) triple. attempt is 0 for the first allocation and increments for
// each retry after a terminal failure, so a retry never replays a failed key.
func AllocationKey(repoID types.GitHubRepoID, issue types.GitHubIssueNumber, currency types.Currency, attempt int) types.IdempotencyKey {
	h := sha256.Sum256(fmt.Appendf(nil, "%d|%d|%s|%d", repoID, issue, currency, attempt))
	return types.IdempotencyKey(hex.EncodeToString(h[:]))
}

// FundingKey derives a fresh idempotency key for a pool funding call. Funding
// has no natural dedup triple, so each admission gets its own key and the
// gateway replays it only on transport-level retries.
func FundingKey(repoID types.GitHubRepoID, currency types.Currency, nonce string) types.IdempotencyKey {
	h := sha256.Sum256(fmt.Appendf(nil, "fund|%d|%s|%s", repoID, currency, nonce))
	return types.IdempotencyKey(hex.EncodeToString(h[:]))
}
