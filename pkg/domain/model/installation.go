package model

import (
	"time"

	"github.com/issuepool/issuepool/pkg/domain/types"
)

// Installation mirrors a GitHub App installation grant. GitHub stays
// authoritative; this is never persisted beyond the registration row that
// references its ID.
type Installation struct {
	ID         types.GitHubAppInstallID
	AppID      types.GitHubAppID
	OwnerLogin string
	Scope      types.InstallScope
}

// InstallationToken is a short-lived token minted for one installation.
type InstallationToken struct {
	Token     string `masq:"secret"`
	ExpiresAt time.Time
}
