package model

import (
	"github.com/issuepool/issuepool/pkg/domain/types"
)

// Principal is the requesting identity. Anonymous principals have an empty
// UserID and can only see public repositories.
type Principal struct {
	UserID types.UserID
	Login  string
	Token  types.GitHubUserToken
}

func (x *Principal) IsAuthenticated() bool {
	return x != nil && x.UserID != "" && x.Login != ""
}
