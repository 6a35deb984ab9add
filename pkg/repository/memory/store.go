package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/repository"
)

type registrationData struct {
	reg *model.Registration
}

type windowKey struct {
	subject  types.UserID
	currency types.Currency
	kind     types.WindowKind
}

type windowData struct {
	window *model.FundingWindow
}

type allocationData struct {
	alloc *model.RewardAllocation
}

type rewardRepository struct {
	mu            sync.RWMutex
	registrations map[types.GitHubRepoID]*registrationData
	windows       map[windowKey]*windowData
	allocations   map[types.IdempotencyKey]*allocationData
}

// Registration operations

func (r *rewardRepository) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[reg.RepoID]; exists {
		return goerr.Wrap(repository.ErrAlreadyExists, "registration already exists",
			goerr.V("repoID", reg.RepoID),
		)
	}

	r.registrations[reg.RepoID] = &registrationData{reg: copyRegistration(reg)}
	return nil
}

func (r *rewardRepository) GetRegistration(ctx context.Context, repoID types.GitHubRepoID) (*model.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.registrations[repoID]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "registration not found",
			goerr.V("repoID", repoID),
		)
	}

	return copyRegistration(data.reg), nil
}

func (r *rewardRepository) GetRegistrationByFullName(ctx context.Context, owner, name string) (*model.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, data := range r.registrations {
		if data.reg.Owner == owner && data.reg.Name == name {
			return copyRegistration(data.reg), nil
		}
	}

	return nil, goerr.Wrap(repository.ErrNotFound, "registration not found",
		goerr.V("owner", owner),
		goerr.V("name", name),
	)
}

func (r *rewardRepository) ListRegistrations(ctx context.Context) ([]*model.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var regs []*model.Registration
	for _, data := range r.registrations {
		regs = append(regs, copyRegistration(data.reg))
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].RepoID < regs[j].RepoID })

	return regs, nil
}

func (r *rewardRepository) ListRegistrationsByUser(ctx context.Context, userID types.UserID) ([]*model.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var regs []*model.Registration
	for _, data := range r.registrations {
		if data.reg.RegisteredBy == userID {
			regs = append(regs, copyRegistration(data.reg))
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].RepoID < regs[j].RepoID })

	return regs, nil
}

func (r *rewardRepository) UpdateInstallation(ctx context.Context, repoID types.GitHubRepoID, installID types.GitHubAppInstallID, scope types.InstallScope) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.registrations[repoID]
	if !exists {
		return goerr.Wrap(repository.ErrNotFound, "registration not found",
			goerr.V("repoID", repoID),
		)
	}

	data.reg.InstallationID = installID
	data.reg.InstallScope = scope
	data.reg.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *rewardRepository) SetActive(ctx context.Context, repoID types.GitHubRepoID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.registrations[repoID]
	if !exists {
		return goerr.Wrap(repository.ErrNotFound, "registration not found",
			goerr.V("repoID", repoID),
		)
	}

	data.reg.IsActive = active
	data.reg.UpdatedAt = time.Now().UTC()
	return nil
}

// Window operations

func (r *rewardRepository) ConsumeWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind, amount, limit types.Amount, now time.Time) error {
	if amount <= 0 {
		return goerr.Wrap(repository.ErrInvalidInput, "amount must be positive",
			goerr.V("amount", amount),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := windowKey{subject: subject, currency: currency, kind: kind}
	data, exists := r.windows[key]
	if !exists || data.window.Expired(now) {
		// Lazy reset: an expired window starts over at the admission time.
		if amount > limit {
			return goerr.Wrap(repository.ErrLimitExceeded, "admission exceeds window ceiling",
				goerr.V("subject", subject),
				goerr.V("currency", currency),
				goerr.V("kind", kind),
				goerr.V("amount", amount),
				goerr.V("limit", limit),
			)
		}
		r.windows[key] = &windowData{window: &model.FundingWindow{
			SubjectID:      subject,
			Currency:       currency,
			Kind:           kind,
			WindowStart:    now,
			AmountConsumed: amount,
		}}
		return nil
	}

	if data.window.AmountConsumed+amount > limit {
		return goerr.Wrap(repository.ErrLimitExceeded, "admission exceeds window ceiling",
			goerr.V("subject", subject),
			goerr.V("currency", currency),
			goerr.V("kind", kind),
			goerr.V("consumed", data.window.AmountConsumed),
			goerr.V("amount", amount),
			goerr.V("limit", limit),
		)
	}

	data.window.AmountConsumed += amount
	return nil
}

func (r *rewardRepository) ReleaseWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind, amount types.Amount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := windowKey{subject: subject, currency: currency, kind: kind}
	data, exists := r.windows[key]
	if !exists {
		return nil
	}

	data.window.AmountConsumed -= amount
	if data.window.AmountConsumed < 0 {
		data.window.AmountConsumed = 0
	}
	return nil
}

func (r *rewardRepository) GetWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind) (*model.FundingWindow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.windows[windowKey{subject: subject, currency: currency, kind: kind}]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "window not found",
			goerr.V("subject", subject),
			goerr.V("currency", currency),
			goerr.V("kind", kind),
		)
	}

	return copyWindow(data.window), nil
}

// Allocation operations

func (r *rewardRepository) CreateAllocation(ctx context.Context, alloc *model.RewardAllocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.allocations[alloc.Key]; exists {
		return goerr.Wrap(repository.ErrAlreadyExists, "allocation key already exists",
			goerr.V("key", alloc.Key),
		)
	}

	r.allocations[alloc.Key] = &allocationData{alloc: copyAllocation(alloc)}
	return nil
}

func (r *rewardRepository) GetAllocationByKey(ctx context.Context, key types.IdempotencyKey) (*model.RewardAllocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.allocations[key]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "allocation not found",
			goerr.V("key", key),
		)
	}

	return copyAllocation(data.alloc), nil
}

func (r *rewardRepository) ListAllocations(ctx context.Context, repoID types.GitHubRepoID, issue types.GitHubIssueNumber, currency types.Currency) ([]*model.RewardAllocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var allocs []*model.RewardAllocation
	for _, data := range r.allocations {
		a := data.alloc
		if a.RepoID == repoID && a.Issue == issue && a.Currency == currency {
			allocs = append(allocs, copyAllocation(a))
		}
	}
	sort.Slice(allocs, func(i, j int) bool { return allocs[i].CreatedAt.After(allocs[j].CreatedAt) })

	return allocs, nil
}

func (r *rewardRepository) ListPendingAllocations(ctx context.Context) ([]*model.RewardAllocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var allocs []*model.RewardAllocation
	for _, data := range r.allocations {
		if data.alloc.Status == types.AllocationPending {
			allocs = append(allocs, copyAllocation(data.alloc))
		}
	}
	sort.Slice(allocs, func(i, j int) bool { return allocs[i].CreatedAt.Before(allocs[j].CreatedAt) })

	return allocs, nil
}

func (r *rewardRepository) UpdateAllocationStatus(ctx context.Context, id types.AllocationID, status types.AllocationStatus, hash types.TxHash) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, data := range r.allocations {
		if data.alloc.ID == id {
			data.alloc.Status = status
			if hash != "" {
				data.alloc.TxHash = hash
			}
			data.alloc.UpdatedAt = time.Now().UTC()
			return nil
		}
	}

	return goerr.Wrap(repository.ErrNotFound, "allocation not found",
		goerr.V("id", id),
	)
}

// Copy helpers so callers never share pointers with the store.

func copyRegistration(reg *model.Registration) *model.Registration {
	c := *reg
	return &c
}

func copyWindow(w *model.FundingWindow) *model.FundingWindow {
	c := *w
	return &c
}

func copyAllocation(a *model.RewardAllocation) *model.RewardAllocation {
	c := *a
	return &c
}
