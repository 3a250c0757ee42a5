package repository

import (
	"context"
	"sync"
	"time"

	"community/internal/domain/model"
	repo "community/internal/repository"
)

// プロセス内だけで完結するリフレッシュトークン置き場（開発・テスト用）
type refreshTokenMemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]model.RefreshToken
	now    func() time.Time
}

func NewRefreshTokenMemoryRepository() repo.RefreshTokenRepository {
	return newRefreshTokenMemoryRepository(time.Now)
}

func newRefreshTokenMemoryRepository(now func() time.Time) *refreshTokenMemoryRepository {
	return &refreshTokenMemoryRepository{
		tokens: make(map[string]model.RefreshToken),
		now:    now,
	}
}

func (r *refreshTokenMemoryRepository) Save(ctx context.Context, token model.RefreshToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	//期限切れのゴミはついでに掃除
	now := r.now()
	for k, v := range r.tokens {
		if !now.Before(v.ExpiresAt) {
			delete(r.tokens, k)
		}
	}

	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *refreshTokenMemoryRepository) Find(ctx context.Context, token string) (model.RefreshToken, error) {
	if err := ctx.Err(); err != nil {
		return model.RefreshToken{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.tokens[token]
	if !ok || !r.now().Before(row.ExpiresAt) {
		return model.RefreshToken{}, repo.ErrRefreshTokenNotFound
	}
	return row, nil
}

// 確認と削除を同じロックの中で行う
func (r *refreshTokenMemoryRepository) Consume(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.tokens[token]
	if !ok {
		return repo.ErrRefreshTokenNotFound
	}
	delete(r.tokens, token)
	if !r.now().Before(row.ExpiresAt) {
		return repo.ErrRefreshTokenNotFound
	}
	return nil
}

func (r *refreshTokenMemoryRepository) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.tokens, token)
	r.mu.Unlock()
	return nil
}

func (r *refreshTokenMemoryRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range r.tokens {
		if v.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}
