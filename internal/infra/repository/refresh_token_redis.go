package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"community/internal/domain/model"
	repo "community/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	refreshTokenKeyPrefix     = "refresh_token:"
	refreshTokenUserKeyPrefix = "refresh_token_user:"
)

type refreshTokenRedisRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

// Redis実装。期限はキーのTTLに任せる。
func NewRefreshTokenRedisRepository(client redis.UniversalClient) repo.RefreshTokenRepository {
	return &refreshTokenRedisRepository{client: client, now: time.Now}
}

func refreshTokenKey(token string) string {
	return refreshTokenKeyPrefix + token
}

// ユーザーごとのトークン一覧（SET）。DeleteAllByUserIDで使う。
func refreshTokenUserKey(userID int64) string {
	return fmt.Sprintf("%s%d", refreshTokenUserKeyPrefix, userID)
}

func (r *refreshTokenRedisRepository) Save(ctx context.Context, token model.RefreshToken) error {
	now := r.now()
	ttl := token.ExpiresAt.Sub(now)
	if ttl <= 0 {
		//期限切れは保存しても読めないので置かない
		return nil
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}

	body, err := json.Marshal(redisRefreshToken{
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal refresh token: %w", err)
	}

	//有効期限はどのトークンも同じ長さなので、索引のTTLは最後のSaveに合わせれば足りる
	userKey := refreshTokenUserKey(token.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, refreshTokenKey(token.Token), body, ttl)
		pipe.SAdd(ctx, userKey, token.Token)
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRedisRepository) Find(ctx context.Context, token string) (model.RefreshToken, error) {
	body, err := r.client.Get(ctx, refreshTokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.RefreshToken{}, repo.ErrRefreshTokenNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("redis get refresh token: %w", err)
	}

	var row redisRefreshToken
	if err := json.Unmarshal(body, &row); err != nil {
		return model.RefreshToken{}, fmt.Errorf("unmarshal refresh token: %w", err)
	}
	if !r.now().Before(row.ExpiresAt) {
		return model.RefreshToken{}, repo.ErrRefreshTokenNotFound
	}

	return model.RefreshToken{
		Token:     row.Token,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// DELの戻り値（消えたキー数）で判定する。同時に呼ばれても1になるのは1回だけ。
func (r *refreshTokenRedisRepository) Consume(ctx context.Context, token string) error {
	n, err := r.client.Del(ctx, refreshTokenKey(token)).Result()
	if err != nil {
		return fmt.Errorf("redis del refresh token: %w", err)
	}
	if n == 0 {
		return repo.ErrRefreshTokenNotFound
	}
	return nil
}

// 索引に残った値は、後でDELしても害が無いのでそのままにする
func (r *refreshTokenRedisRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, refreshTokenKey(token)).Err(); err != nil {
		return fmt.Errorf("redis del refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRedisRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	userKey := refreshTokenUserKey(userID)
	tokens, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("redis smembers refresh token: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, refreshTokenKey(t))
	}
	keys = append(keys, userKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del refresh tokens: %w", err)
	}
	return nil
}

// model.RefreshTokenはTokenをjsonに出さないので保存用に別の形を持つ
type redisRefreshToken struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
