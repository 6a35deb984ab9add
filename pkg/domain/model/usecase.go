package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/types"
)

type RegisterRepositoryInput struct {
	Principal Principal
	FullName  string

	// InstallIDHint skips resolution when the caller already knows the
	// installation, e.g. from a webhook payload. It is still verified
	// against the repository before use.
	InstallIDHint types.GitHubAppInstallID
}

func (x *RegisterRepositoryInput) Validate() error {
	if !x.Principal.IsAuthenticated() {
		return goerr.Wrap(types.ErrNotAuthorized, "registration requires an authenticated user")
	}
	if _, _, err := SplitFullName(x.FullName); err != nil {
		return err
	}
	return nil
}

type FundRepositoryInput struct {
	Principal Principal
	RepoID    types.GitHubRepoID
	Currency  types.Currency
	Amount    types.Amount

	// Nonce lets a caller retry the same funding request under one
	// idempotency key. A fresh nonce is minted when left empty.
	Nonce string
}

func (x *FundRepositoryInput) Validate() error {
	if !x.Principal.IsAuthenticated() {
		return goerr.Wrap(types.ErrNotAuthorized, "funding requires an authenticated user")
	}
	if x.RepoID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "repo ID is empty")
	}
	if !x.Currency.IsValid() {
		return goerr.Wrap(types.ErrValidationFailed, "unsupported currency", goerr.V("currency", x.Currency))
	}
	if x.Amount <= 0 {
		return goerr.Wrap(types.ErrValidationFailed, "amount must be positive", goerr.V("amount", x.Amount))
	}
	return nil
}

type AllocateRewardInput struct {
	Principal Principal
	RepoID    types.GitHubRepoID
	Issue     types.GitHubIssueNumber
	Currency  types.Currency
	Amount    types.Amount
	Recipient types.WalletAddress
}

func (x *AllocateRewardInput) Validate() error {
	if !x.Principal.IsAuthenticated() {
		return goerr.Wrap(types.ErrNotAuthorized, "allocation requires an authenticated user")
	}
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
	return nil
}

// RepoDiagnostic records why one repository was excluded from a batch
// visibility listing. Returned in aggregate, never as a per-item failure.
type RepoDiagnostic struct {
	RepoID   types.GitHubRepoID
	FullName string
	Reason   string
}
