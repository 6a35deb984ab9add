package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

func TestAllocationKey(t *testing.T) {
	t.Run("deterministic for identical operations", func(t *testing.T) {
		a := model.AllocationKey(100, 7, types.CurrencyGAS, 0)
		b := model.AllocationKey(100, 7, types.CurrencyGAS, 0)
		gt.V(t, a).Equal(b)
	})

	t.Run("attempt salts a distinct key", func(t *testing.T) {
		a := model.AllocationKey(100, 7, types.CurrencyGAS, 0)
		b := model.AllocationKey(100, 7, types.CurrencyGAS, 1)
		gt.V(t, a != b).Equal(true)
	})

	t.Run("each dimension contributes", func(t *testing.T) {
		base := model.AllocationKey(100, 7, types.CurrencyGAS, 0)
		gt.V(t, base != model.AllocationKey(101, 7, types.CurrencyGAS, 0)).Equal(true)
		gt.V(t, base != model.AllocationKey(100, 8, types.CurrencyGAS, 0)).Equal(true)
		gt.V(t, base != model.AllocationKey(100, 7, types.CurrencyNEO, 0)).Equal(true)
	})
}

func TestFundingKey(t *testing.T) {
	a := model.FundingKey(100, types.CurrencyGAS, "nonce-1")
	gt.V(t, a).Equal(model.FundingKey(100, types.CurrencyGAS, "nonce-1"))
	gt.V(t, a != model.FundingKey(100, types.CurrencyGAS, "nonce-2")).Equal(true)
}

func TestSplitFullName(t *testing.T) {
	t.Run("splits owner and name", func(t *testing.T) {
		owner, name, err := model.SplitFullName("acme/widgets")
		gt.NoError(t, err)
		gt.V(t, owner).Equal("acme")
		gt.V(t, name).Equal("widgets")
	})

	t.Run("rejects malformed names", func(t *testing.T) {
		for _, bad := range []string{"", "acme", "acme/", "/widgets", "a/b/c"} {
			_, _, err := model.SplitFullName(bad)
			gt.True(t, errors.Is(err, types.ErrValidationFailed))
		}
	})
}

func TestFundingWindowExpired(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := &model.FundingWindow{WindowStart: start}

	gt.False(t, w.Expired(start.Add(23*time.Hour)))
	gt.True(t, w.Expired(start.Add(model.WindowDuration)))
	gt.True(t, w.Expired(start.Add(48*time.Hour)))
}

func TestLimitConfig(t *testing.T) {
	t.Run("defaults cover every currency and kind", func(t *testing.T) {
		gt.NoError(t, model.DefaultLimits().Validate())
	})

	t.Run("ceiling lookup", func(t *testing.T) {
		limits := &model.LimitConfig{
			Funding:  map[types.Currency]types.Amount{types.CurrencyGAS: 100},
			Transfer: map[types.Currency]types.Amount{types.CurrencyGAS: 50},
		}

		gt.V(t, gt.R1(limits.Ceiling(types.CurrencyGAS, types.WindowFunding)).NoError(t)).Equal(types.Amount(100))
		gt.V(t, gt.R1(limits.Ceiling(types.CurrencyGAS, types.WindowTransfer)).NoError(t)).Equal(types.Amount(50))

		_, err := limits.Ceiling(types.CurrencyNEO, types.WindowFunding)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("validation rejects missing or non-positive ceilings", func(t *testing.T) {
		limits := model.DefaultLimits()
		limits.Transfer[types.CurrencyNEO] = 0
		gt.True(t, errors.Is(limits.Validate(), types.ErrInvalidOption))

		limits = model.DefaultLimits()
		delete(limits.Funding, types.CurrencyUSDC)
		gt.True(t, errors.Is(limits.Validate(), types.ErrInvalidOption))
	})
}

func TestRegistrationValidate(t *testing.T) {
	valid := func() *model.Registration {
		return &model.Registration{
			RepoID:         100,
			Owner:          "acme",
			Name:           "widgets",
			RegisteredBy:   "u-1",
			InstallationID: 10,
		}
	}

	gt.NoError(t, valid().Validate())

	t.Run("each required field is enforced", func(t *testing.T) {
		mutations := []func(*model.Registration){
			func(r *model.Registration) { r.RepoID = 0 },
			func(r *model.Registration) { r.Owner = "" },
			func(r *model.Registration) { r.Name = "" },
			func(r *model.Registration) { r.RegisteredBy = "" },
			func(r *model.Registration) { r.InstallationID = 0 },
		}
		for _, mutate := range mutations {
			reg := valid()
			mutate(reg)
			gt.True(t, errors.Is(reg.Validate(), types.ErrValidationFailed))
		}
	})
}

func TestPrincipal(t *testing.T) {
	p := model.Principal{UserID: "u-1", Login: "alice"}
	gt.True(t, p.IsAuthenticated())

	gt.False(t, (&model.Principal{Login: "alice"}).IsAuthenticated())
	gt.False(t, (&model.Principal{UserID: "u-1"}).IsAuthenticated())
	gt.False(t, (&model.Principal{}).IsAuthenticated())
}

func TestAllocationValidate(t *testing.T) {
	valid := func() *model.RewardAllocation {
		return &model.RewardAllocation{
			ID:          types.NewAllocationID(),
			RepoID:      100,
			Issue:       7,
			Currency:    types.CurrencyGAS,
			Amount:      25,
			Recipient:   "NWalletAddr1",
			AllocatedBy: "u-1",
			Key:         model.AllocationKey(100, 7, types.CurrencyGAS, 0),
			Status:      types.AllocationPending,
		}
	}

	gt.NoError(t, valid().Validate())

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		alloc := valid()
		alloc.Amount = 0
		gt.True(t, errors.Is(alloc.Validate(), types.ErrValidationFailed))
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		alloc := valid()
		alloc.Currency = "DOGE"
		gt.True(t, errors.Is(alloc.Validate(), types.ErrValidationFailed))
	})

	t.Run("rejects empty recipient", func(t *testing.T) {
		alloc := valid()
		alloc.Recipient = ""
		gt.True(t, errors.Is(alloc.Validate(), types.ErrValidationFailed))
	})
}
