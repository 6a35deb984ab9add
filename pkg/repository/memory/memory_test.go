package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/repository/memory"
	"github.com/issuepool/issuepool/pkg/repository/testhelper"
)

func TestMemoryRewardRepository(t *testing.T) {
	testhelper.TestAll(t, memory.New())
}

func TestStoredRowsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	now := time.Now().UTC()
	gt.NoError(t, repo.CreateRegistration(ctx, &model.Registration{
		RepoID:         100,
		Owner:          "acme",
		Name:           "widgets",
		RegisteredBy:   "u-1",
		InstallationID: 7,
		InstallScope:   types.ScopeRepo,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}))

	got := gt.R1(repo.GetRegistration(ctx, 100)).NoError(t)
	got.Name = "mutated"

	again := gt.R1(repo.GetRegistration(ctx, 100)).NoError(t)
	gt.V(t, again.Name).Equal("widgets")
}

func TestConcurrentAdmissions(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.ConsumeWindow(ctx, "u-1", types.CurrencyGAS, types.WindowFunding, 10, 100, now)
		}()
	}
	wg.Wait()

	w := gt.R1(repo.GetWindow(ctx, "u-1", types.CurrencyGAS, types.WindowFunding)).NoError(t)
	gt.V(t, w.AmountConsumed).Equal(types.Amount(100))
}
