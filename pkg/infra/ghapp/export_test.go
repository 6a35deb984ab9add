package ghapp

import "time"

// Exported for testing purposes
var NewTokenCache = newTokenCache

func (x *tokenCache) SetNowFunc(now func() time.Time) {
	x.now = now
}
