package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"community/internal/domain/model"
	repo "community/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenMemory_SaveFindDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newRefreshTokenMemoryRepository(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "t1", UserID: 5, ExpiresAt: now.Add(time.Hour)}))

	got, err := store.Find(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.UserID)
	assert.Equal(t, now, got.CreatedAt)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Find(ctx, "t1")
	assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound)

	//2回目の削除もエラーにならない
	assert.NoError(t, store.Delete(ctx, "t1"))
}

func TestRefreshTokenMemory_ExpiredIsAbsent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newRefreshTokenMemoryRepository(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "old", UserID: 1, ExpiresAt: now.Add(time.Minute)}))

	now = now.Add(time.Minute)
	_, err := store.Find(ctx, "old")
	assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound)

	//次のSaveで掃除される
	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "new", UserID: 1, ExpiresAt: now.Add(time.Minute)}))
	assert.Len(t, store.tokens, 1)
}

func TestRefreshTokenMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewRefreshTokenMemoryRepository()
	assert.ErrorIs(t, store.Save(ctx, model.RefreshToken{Token: "x", ExpiresAt: time.Now().Add(time.Hour)}), context.Canceled)
	_, err := store.Find(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Delete(ctx, "x"), context.Canceled)
	assert.ErrorIs(t, store.Consume(ctx, "x"), context.Canceled)
	assert.ErrorIs(t, store.DeleteAllByUserID(ctx, 1), context.Canceled)
}

func TestRefreshTokenMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewRefreshTokenMemoryRepository()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("tok-%d", i)
			assert.NoError(t, store.Save(ctx, model.RefreshToken{Token: token, UserID: int64(i), ExpiresAt: exp}))

			//書いた直後に自分で読める
			got, err := store.Find(ctx, token)
			assert.NoError(t, err)
			assert.Equal(t, int64(i), got.UserID)

			if i%2 == 0 {
				assert.NoError(t, store.Delete(ctx, token))
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		_, err := store.Find(ctx, fmt.Sprintf("tok-%d", i))
		if i%2 == 0 {
			assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestRefreshTokenMemory_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newRefreshTokenMemoryRepository(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "t1", UserID: 5, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "t2", UserID: 5, ExpiresAt: now.Add(time.Minute)}))

	assert.NoError(t, store.Consume(ctx, "t1"))
	assert.ErrorIs(t, store.Consume(ctx, "t1"), repo.ErrRefreshTokenNotFound)
	assert.ErrorIs(t, store.Consume(ctx, "missing"), repo.ErrRefreshTokenNotFound)

	//期限切れは消せても成功にはならない
	now = now.Add(time.Minute)
	assert.ErrorIs(t, store.Consume(ctx, "t2"), repo.ErrRefreshTokenNotFound)
	assert.Empty(t, store.tokens)
}

func TestRefreshTokenMemory_ConsumeConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewRefreshTokenMemoryRepository()
	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "shared", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Consume(ctx, "shared")
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestRefreshTokenMemory_DeleteAllByUserID(t *testing.T) {
	ctx := context.Background()
	store := NewRefreshTokenMemoryRepository()
	exp := time.Now().Add(time.Hour)
	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "a1", UserID: 1, ExpiresAt: exp}))
	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "a2", UserID: 1, ExpiresAt: exp}))
	require.NoError(t, store.Save(ctx, model.RefreshToken{Token: "b1", UserID: 2, ExpiresAt: exp}))

	require.NoError(t, store.DeleteAllByUserID(ctx, 1))

	for _, tok := range []string{"a1", "a2"} {
		_, err := store.Find(ctx, tok)
		assert.ErrorIs(t, err, repo.ErrRefreshTokenNotFound, tok)
	}
	_, err := store.Find(ctx, "b1")
	assert.NoError(t, err)
}
