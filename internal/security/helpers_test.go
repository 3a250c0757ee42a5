package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func mustSigner(t *testing.T, secret string) *TokenSigner {
	t.Helper()
	s, err := NewTokenSigner([]byte(secret))
	require.NoError(t, err)
	return s
}

func newTestProvider(t *testing.T, accessTTL, refreshTTL time.Duration, clock Clock) *TokenProvider {
	t.Helper()
	return NewTokenProvider(mustSigner(t, testSecret), accessTTL, refreshTTL, clock)
}
