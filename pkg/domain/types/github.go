package types

import "log/slog"

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppSecret     string
	GitHubAppPrivateKey string
	GitHubUserToken     string
	GitHubRepoID        int64
	GitHubIssueNumber   int
	UserID              string

	InstallScope string
)

const (
	// ScopeRepo is an installation granted for the specific repository. It
	// outranks owner-wide installations during resolution.
	ScopeRepo InstallScope = "repo"
	// ScopeOwner is an installation granted for a whole user or organization
	// account.
	ScopeOwner InstallScope = "owner"
)

func (x GitHubAppSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppSecret) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x GitHubUserToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubUserToken) String() string {
	return "***********"
}
