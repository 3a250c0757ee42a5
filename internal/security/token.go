package security

import (
	"context"
	"time"
)

// トークンの種別
type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

// ParseTokenが成功したときだけ作られる
type TokenPayload struct {
	UserID    int64
	ExpiresAt time.Time
	Type      TokenType
}

// CreateTokenの戻り値（Tokenはそのままワイヤ形式）
type TokenResult struct {
	Token     string
	ExpiresAt time.Time
}

// 認証済みユーザー（1リクエストの間だけ使う）
type AuthenticatedUser struct {
	UserID int64
}

// GetAuthenticationの戻り値
type Authentication struct {
	Principal     AuthenticatedUser
	Authenticated bool
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClockは実時間を返すClock。
func SystemClock() Clock {
	return systemClock{}
}

type principalKey struct{}

// WithPrincipalは認証済みユーザーをcontextに載せる。
func WithPrincipal(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// PrincipalFromはcontextから認証済みユーザーを取り出す。
func PrincipalFrom(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(principalKey{}).(AuthenticatedUser)
	return user, ok && user.UserID > 0
}
