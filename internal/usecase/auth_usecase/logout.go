package auth

import (
	"context"
	"strings"
)

// リフレッシュトークンを失効させる。何度呼んでも同じ結果。
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return ErrRefreshTokenMismatch
	}
	return s.tokens.Delete(ctx, refreshToken)
}
