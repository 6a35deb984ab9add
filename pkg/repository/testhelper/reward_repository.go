package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/repository"
)

// TestAll runs the full conformance suite for a RewardRepository
// implementation. Every store must pass it unchanged; the suite only uses
// unique identifiers so it can run against a shared database.
func TestAll(t *testing.T, repo interfaces.RewardRepository) {
	t.Run("RegistrationCRUD", func(t *testing.T) {
		TestRegistrationCRUD(t, repo)
	})
	t.Run("WindowAdmission", func(t *testing.T) {
		TestWindowAdmission(t, repo)
	})
	t.Run("WindowRelease", func(t *testing.T) {
		TestWindowRelease(t, repo)
	})
	t.Run("AllocationLifecycle", func(t *testing.T) {
		TestAllocationLifecycle(t, repo)
	})
}

func newRepoID() types.GitHubRepoID {
	// uuid.ID() is a random uint32; unique enough to keep suite runs on a
	// shared database from colliding.
	return types.GitHubRepoID(int64(uuid.New().ID()) + 1)
}

func newSubject() types.UserID {
	return types.UserID("u-" + uuid.NewString()[:8])
}

func newRegistration(repoID types.GitHubRepoID) *model.Registration {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.Registration{
		RepoID:         repoID,
		Owner:          fmt.Sprintf("owner-%d", repoID),
		Name:           fmt.Sprintf("repo-%d", repoID),
		RegisteredBy:   newSubject(),
		InstallationID: 10,
		InstallScope:   types.ScopeRepo,
		IsPrivate:      false,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// TestRegistrationCRUD covers the registration read and write paths.
func TestRegistrationCRUD(t *testing.T, repo interfaces.RewardRepository) {
	ctx := context.Background()

	reg := newRegistration(newRepoID())
	gt.NoError(t, repo.CreateRegistration(ctx, reg))

	t.Run("duplicate repo ID is rejected", func(t *testing.T) {
		err := repo.CreateRegistration(ctx, reg)
		gt.True(t, errors.Is(err, repository.ErrAlreadyExists))
	})

	t.Run("lookup by ID and by full name", func(t *testing.T) {
		got := gt.R1(repo.GetRegistration(ctx, reg.RepoID)).NoError(t)
		gt.V(t, got.Owner).Equal(reg.Owner)
		gt.V(t, got.RegisteredBy).Equal(reg.RegisteredBy)

		got = gt.R1(repo.GetRegistrationByFullName(ctx, reg.Owner, reg.Name)).NoError(t)
		gt.V(t, got.RepoID).Equal(reg.RepoID)

		_, err := repo.GetRegistration(ctx, newRepoID())
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("list by registering user", func(t *testing.T) {
		regs := gt.R1(repo.ListRegistrationsByUser(ctx, reg.RegisteredBy)).NoError(t)
		gt.A(t, regs).Length(1)
		gt.V(t, regs[0].RepoID).Equal(reg.RepoID)
	})

	t.Run("installation re-link", func(t *testing.T) {
		gt.NoError(t, repo.UpdateInstallation(ctx, reg.RepoID, 99, types.ScopeOwner))
		got := gt.R1(repo.GetRegistration(ctx, reg.RepoID)).NoError(t)
		gt.V(t, got.InstallationID).Equal(types.GitHubAppInstallID(99))
		gt.V(t, got.InstallScope).Equal(types.ScopeOwner)

		err := repo.UpdateInstallation(ctx, newRepoID(), 99, types.ScopeOwner)
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("active flag round trip", func(t *testing.T) {
		gt.NoError(t, repo.SetActive(ctx, reg.RepoID, false))
		got := gt.R1(repo.GetRegistration(ctx, reg.RepoID)).NoError(t)
		gt.False(t, got.IsActive)

		gt.NoError(t, repo.SetActive(ctx, reg.RepoID, true))
		got = gt.R1(repo.GetRegistration(ctx, reg.RepoID)).NoError(t)
		gt.True(t, got.IsActive)
	})
}

// TestWindowAdmission covers the check-and-increment contract, including
// the fresh-window and lazy-reset paths.
func TestWindowAdmission(t *testing.T, repo interfaces.RewardRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("first admission over the ceiling is rejected", func(t *testing.T) {
		subject := newSubject()

		err := repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 101, 100, now)
		gt.True(t, errors.Is(err, repository.ErrLimitExceeded))

		// The rejection must not leave a window behind.
		_, err = repo.GetWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding)
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("boundary admission is inclusive", func(t *testing.T) {
		subject := newSubject()

		gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 60, 100, now))
		gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 40, 100, now))

		err := repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 1, 100, now)
		gt.True(t, errors.Is(err, repository.ErrLimitExceeded))

		w := gt.R1(repo.GetWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding)).NoError(t)
		gt.V(t, w.AmountConsumed).Equal(types.Amount(100))
	})

	t.Run("expired window lazily resets at admission time", func(t *testing.T) {
		subject := newSubject()

		gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 100, 100, now))

		later := now.Add(model.WindowDuration + time.Second)
		gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 100, 100, later))

		w := gt.R1(repo.GetWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding)).NoError(t)
		gt.V(t, w.AmountConsumed).Equal(types.Amount(100))
		gt.True(t, w.WindowStart.Equal(later))
	})

	t.Run("reset admission over the ceiling is rejected", func(t *testing.T) {
		subject := newSubject()

		gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 50, 100, now))

		later := now.Add(model.WindowDuration + time.Second)
		err := repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 101, 100, later)
		gt.True(t, errors.Is(err, repository.ErrLimitExceeded))
	})

	t.Run("currencies and kinds track separate windows", func(t *testing.T) {
		subject := newSubject()

		gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 100, 100, now))
		gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyNEO, types.WindowFunding, 100, 100, now))
		gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowTransfer, 100, 100, now))
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		err := repo.ConsumeWindow(ctx, newSubject(), types.CurrencyGAS, types.WindowFunding, 0, 100, now)
		gt.True(t, errors.Is(err, repository.ErrInvalidInput))
	})
}

// TestWindowRelease covers the refund path.
func TestWindowRelease(t *testing.T, repo interfaces.RewardRepository) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	subject := newSubject()

	gt.NoError(t, repo.ConsumeWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 50, 100, now))

	t.Run("refund reduces the consumed total", func(t *testing.T) {
		gt.NoError(t, repo.ReleaseWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 30))
		w := gt.R1(repo.GetWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding)).NoError(t)
		gt.V(t, w.AmountConsumed).Equal(types.Amount(20))
	})

	t.Run("over-refund clamps at zero and keeps the row", func(t *testing.T) {
		gt.NoError(t, repo.ReleaseWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding, 500))
		w := gt.R1(repo.GetWindow(ctx, subject, types.CurrencyGAS, types.WindowFunding)).NoError(t)
		gt.V(t, w.AmountConsumed).Equal(types.Amount(0))
	})

	t.Run("releasing a missing window is a no-op", func(t *testing.T) {
		gt.NoError(t, repo.ReleaseWindow(ctx, newSubject(), types.CurrencyGAS, types.WindowFunding, 10))
	})
}

// TestAllocationLifecycle covers creation, idempotency-key uniqueness,
// history ordering and status transitions.
func TestAllocationLifecycle(t *testing.T, repo interfaces.RewardRepository) {
	ctx := context.Background()
	repoID := newRepoID()
	subject := newSubject()

	newAlloc := func(attempt int, createdAt time.Time) *model.RewardAllocation {
		return &model.RewardAllocation{
			ID:          types.NewAllocationID(),
			RepoID:      repoID,
			Issue:       7,
			Currency:    types.CurrencyGAS,
			Amount:      10,
			Recipient:   "NWalletAddr1",
			AllocatedBy: subject,
			Key:         model.AllocationKey(repoID, 7, types.CurrencyGAS, attempt),
			Status:      types.AllocationPending,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}
	}

	base := time.Now().UTC().Truncate(time.Microsecond)
	allocs := make([]*model.RewardAllocation, 3)
	for i := range allocs {
		allocs[i] = newAlloc(i, base.Add(time.Duration(i)*time.Minute))
		gt.NoError(t, repo.CreateAllocation(ctx, allocs[i]))
	}

	t.Run("duplicate idempotency key is rejected", func(t *testing.T) {
		err := repo.CreateAllocation(ctx, newAlloc(0, base))
		gt.True(t, errors.Is(err, repository.ErrAlreadyExists))
	})

	t.Run("lookup by key", func(t *testing.T) {
		got := gt.R1(repo.GetAllocationByKey(ctx, allocs[1].Key)).NoError(t)
		gt.V(t, got.ID).Equal(allocs[1].ID)
		gt.V(t, got.AllocatedBy).Equal(subject)

		_, err := repo.GetAllocationByKey(ctx, types.IdempotencyKey("missing"))
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("history is newest first", func(t *testing.T) {
		history := gt.R1(repo.ListAllocations(ctx, repoID, 7, types.CurrencyGAS)).NoError(t)
		gt.A(t, history).Length(3)
		gt.V(t, history[0].Key).Equal(allocs[2].Key)
		gt.V(t, history[2].Key).Equal(allocs[0].Key)
	})

	t.Run("status update sets the hash and leaves pending", func(t *testing.T) {
		gt.NoError(t, repo.UpdateAllocationStatus(ctx, allocs[2].ID, types.AllocationConfirmed, "0xabc"))

		got := gt.R1(repo.GetAllocationByKey(ctx, allocs[2].Key)).NoError(t)
		gt.V(t, got.Status).Equal(types.AllocationConfirmed)
		gt.V(t, got.TxHash).Equal(types.TxHash("0xabc"))

		pending := gt.R1(repo.ListPendingAllocations(ctx)).NoError(t)
		keys := make(map[types.IdempotencyKey]bool, len(pending))
		for _, a := range pending {
			keys[a.Key] = true
		}
		gt.True(t, keys[allocs[0].Key])
		gt.True(t, keys[allocs[1].Key])
		gt.False(t, keys[allocs[2].Key])
	})

	t.Run("empty hash keeps the prior hash", func(t *testing.T) {
		gt.NoError(t, repo.UpdateAllocationStatus(ctx, allocs[2].ID, types.AllocationFailed, ""))
		got := gt.R1(repo.GetAllocationByKey(ctx, allocs[2].Key)).NoError(t)
		gt.V(t, got.Status).Equal(types.AllocationFailed)
		gt.V(t, got.TxHash).Equal(types.TxHash("0xabc"))
	})

	t.Run("unknown allocation ID returns not found", func(t *testing.T) {
		err := repo.UpdateAllocationStatus(ctx, types.NewAllocationID(), types.AllocationFailed, "")
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})
}
