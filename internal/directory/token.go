package directory

import (
	"sync"
	"time"
)

// TokenCache holds the current access token and its expiry. It is an
// explicit value owned by the client instance; there is no package
// level token state.
type TokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Get returns the cached token if it is still valid at now.
func (tc *TokenCache) Get(now time.Time) (string, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.token == "" || !now.Before(tc.expiresAt) {
		return "", false
	}
	return tc.token, true
}

func (tc *TokenCache) Set(token string, expiresAt time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.token = token
	tc.expiresAt = expiresAt
}

// Clear drops the cached token, forcing a refresh on next use.
func (tc *TokenCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.token = ""
	tc.expiresAt = time.Time{}
}
