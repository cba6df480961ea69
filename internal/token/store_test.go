package token

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSingleUse(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	tok, err := s.Issue(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	used, err := s.Claim(ctx, tok)
	require.NoError(t, err)
	assert.False(t, used)

	used, err = s.Claim(ctx, tok)
	require.NoError(t, err)
	assert.True(t, used)
}

func TestMemoryStoreUnknownTokenIsUsed(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	used, err := s.Claim(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.True(t, used)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	tok, err := s.Issue(ctx)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	// An expired token is never re-acceptable.
	used, err := s.Claim(ctx, tok)
	require.NoError(t, err)
	assert.True(t, used)
}

func TestMemoryStoreConcurrentClaimsSingleWinner(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	tok, err := s.Issue(ctx)
	require.NoError(t, err)

	const goroutines = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			used, err := s.Claim(ctx, tok)
			if err == nil && !used {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestMemoryStoreIndependentTokens(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	first, err := s.Issue(ctx)
	require.NoError(t, err)
	second, err := s.Issue(ctx)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	used, err := s.Claim(ctx, first)
	require.NoError(t, err)
	assert.False(t, used)

	// Claiming one token leaves the other claimable.
	used, err = s.Claim(ctx, second)
	require.NoError(t, err)
	assert.False(t, used)
}
