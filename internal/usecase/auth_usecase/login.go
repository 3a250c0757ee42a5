package auth

import (
	"context"
	"errors"

	"community/internal/domain/model"
	"community/internal/metrics"
	"community/internal/repository"
	"community/internal/security"
)

// ログイン処理を実行する
func (s *AuthService) Login(ctx context.Context, email string, password string) (out LoginResult, err error) {
	defer func() { metrics.LoginTotal.WithLabelValues(metrics.Result(err)).Inc() }()

	//emailでユーザー取得
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrLoginFailed
		}
		return LoginResult{}, err
	}

	//パスワード照合
	if ok := s.verifier.Verify(password, user.PasswordHash); !ok {
		return LoginResult{}, ErrLoginFailed
	}

	return s.issuePair(ctx, user.ID)
}

func newRefreshRow(refresh security.TokenResult, userID int64) model.RefreshToken {
	return model.RefreshToken{
		Token:     refresh.Token,
		UserID:    userID,
		ExpiresAt: refresh.ExpiresAt,
	}
}
