package memory

import (
	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

// New creates a new in-memory repository
func New() interfaces.RewardRepository {
	return &rewardRepository{
		registrations: make(map[types.GitHubRepoID]*registrationData),
		windows:       make(map[windowKey]*windowData),
		allocations:   make(map[types.IdempotencyKey]*allocationData),
	}
}
