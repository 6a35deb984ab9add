package ghapp

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

// defaultTokenMargin is subtracted from the token's real expiry so a token
// handed out here never expires mid-request.
const defaultTokenMargin = 2 * time.Minute

// exchangeTimeout bounds a detached token exchange so a stuck call cannot
// hold the flight open forever.
const exchangeTimeout = 30 * time.Second

type exchangeFunc func(ctx context.Context, installID types.GitHubAppInstallID) (*model.InstallationToken, error)

// tokenCache holds installation tokens keyed by installation ID. Concurrent
// misses for the same installation are coalesced into a single exchange
// call; a failed exchange evicts the entry and propagates the error, so a
// stale token is never returned.
type tokenCache struct {
	mu       sync.RWMutex
	entries  map[types.GitHubAppInstallID]*model.InstallationToken
	group    singleflight.Group
	margin   time.Duration
	exchange exchangeFunc

	// now is replaceable for tests.
	now func() time.Time
}

func newTokenCache(exchange exchangeFunc, margin time.Duration) *tokenCache {
	return &tokenCache{
		entries:  make(map[types.GitHubAppInstallID]*model.InstallationToken),
		margin:   margin,
		exchange: exchange,
		now:      time.Now,
	}
}

func (x *tokenCache) lookup(installID types.GitHubAppInstallID) *model.InstallationToken {
	x.mu.RLock()
	defer x.mu.RUnlock()

	token, ok := x.entries[installID]
	if !ok {
		return nil
	}
	if !x.now().Before(token.ExpiresAt.Add(-x.margin)) {
		return nil
	}
	return token
}

func (x *tokenCache) Get(ctx context.Context, installID types.GitHubAppInstallID) (*model.InstallationToken, error) {
	if token := x.lookup(installID); token != nil {
		return token, nil
	}

	// The flight's result is shared by every coalesced waiter, so the
	// exchange must not die with the first caller's request context.
	exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exchangeTimeout)
	defer cancel()

	v, err, _ := x.group.Do(strconv.FormatInt(int64(installID), 10), func() (any, error) {
		// Re-check under the flight: another caller may have refreshed
		// the entry between lookup and Do.
		if token := x.lookup(installID); token != nil {
			return token, nil
		}

		token, err := x.exchange(exchangeCtx, installID)
		if err != nil {
			x.mu.Lock()
			delete(x.entries, installID)
			x.mu.Unlock()
			return nil, err
		}

		x.mu.Lock()
		x.entries[installID] = token
		x.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*model.InstallationToken), nil
}
