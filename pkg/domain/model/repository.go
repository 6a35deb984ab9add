package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/types"
)

// GitHubRepo identifies a repository as reported by the GitHub API.
type GitHubRepo struct {
	RepoID    types.GitHubRepoID
	Owner     string
	Name      string
	IsPrivate bool
}

func (x *GitHubRepo) Validate() error {
	if x.RepoID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "repo ID is empty")
	}
	if x.Owner == "" {
		return goerr.Wrap(types.ErrValidationFailed, "owner is empty")
	}
	if x.Name == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repo name is empty")
	}
	return nil
}

func (x *GitHubRepo) FullName() string {
	return x.Owner + "/" + x.Name
}

// SplitFullName splits "owner/name" into its parts.
func SplitFullName(fullName string) (owner, name string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", goerr.Wrap(types.ErrValidationFailed, "repository name must be owner/name",
			goerr.V("full_name", fullName),
		)
	}
	return parts[0], parts[1], nil
}

// Registration is the durable mapping of a repository to the user that
// registered it, the installation that authorizes platform operations on it,
// and its visibility flag. RepoID is immutable; InstallationID may be
// re-linked when installations change.
type Registration struct {
	RepoID         types.GitHubRepoID
	Owner          string
	Name           string
	RegisteredBy   types.UserID
	InstallationID types.GitHubAppInstallID
	InstallScope   types.InstallScope
	IsPrivate      bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (x *Registration) FullName() string {
	return x.Owner + "/" + x.Name
}

func (x *Registration) Validate() error {
	if x.RepoID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "repo ID is empty")
	}
	if x.Owner == "" || x.Name == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository full name is incomplete")
	}
	if x.RegisteredBy == "" {
		return goerr.Wrap(types.ErrValidationFailed, "registering user is empty")
	}
	if x.InstallationID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "installation ID is empty")
	}
	return nil
}

// GitHubIssue is the subset of issue data the funding flow validates against.
type GitHubIssue struct {
	Number types.GitHubIssueNumber
	Title  string
	State  string
}

func (x *GitHubIssue) IsOpen() bool {
	return x.State == "open"
}
