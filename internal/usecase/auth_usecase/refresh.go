package auth

import (
	"context"
	"errors"
	"strings"

	"community/internal/metrics"
	"community/internal/repository"
	"community/internal/security"
)

// リフレッシュトークンをローテーションして新しい組を返す
// 古い値はConsumeで消せた呼び出しだけが先へ進む（同時に来ても片方だけ）
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (out LoginResult, err error) {
	defer func() { metrics.RefreshTotal.WithLabelValues(metrics.Result(err)).Inc() }()

	//空文字・空白だけはどこにも問い合わせずに弾く
	if strings.TrimSpace(refreshToken) == "" {
		return LoginResult{}, ErrRefreshTokenMismatch
	}

	payload, err := s.issuer.ParseToken(refreshToken, security.TokenTypeRefresh)
	if err != nil {
		return LoginResult{}, err
	}

	//保存されていない（ローテーション済み・ログアウト済み）なら拒否
	row, err := s.tokens.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return LoginResult{}, ErrRefreshTokenMismatch
		}
		return LoginResult{}, err
	}
	if row.UserID != payload.UserID {
		return LoginResult{}, ErrRefreshTokenMismatch
	}

	if err := s.tokens.Consume(ctx, refreshToken); err != nil {
		//Findの後に他のリクエストが先に使った
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return LoginResult{}, ErrRefreshTokenMismatch
		}
		return LoginResult{}, err
	}

	return s.issuePair(ctx, payload.UserID)
}
