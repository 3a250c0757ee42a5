package auth

import (
	"context"
	"errors"
	"time"

	"community/internal/repository"
	"community/internal/security"
)

var (
	// メール違い・パスワード違いは区別しない
	ErrLoginFailed = errors.New("login failed")

	// リフレッシュトークンが空・未登録・ローテーション済み
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")
)

// トークンの発行と検証（security.TokenProviderが実装）
type TokenIssuer interface {
	CreateToken(claims map[string]any, tokenType security.TokenType) (security.TokenResult, error)
	ParseToken(token string, expected security.TokenType) (security.TokenPayload, error)
	TTL(tokenType security.TokenType) time.Duration
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// ランダムなID（refresh tokenのjti）を作る約束
type IDGenerator interface {
	NewID() string
}

// ログイン・リフレッシュの結果。handlerがbodyとcookieに詰める。
type LoginResult struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	// アクセストークンの有効秒数
	ExpiresIn int64
}

// ログイン・トークン更新・ログアウト
type AuthService struct {
	users    repository.UserRepository
	tokens   repository.RefreshTokenRepository
	issuer   TokenIssuer
	verifier PasswordVerifier
	idGen    IDGenerator
}

// DI
func NewAuthService(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	issuer TokenIssuer,
	verifier PasswordVerifier,
	idGen IDGenerator,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		issuer:   issuer,
		verifier: verifier,
		idGen:    idGen,
	}
}

// アクセス・リフレッシュの組を作って、リフレッシュ側を保存する
func (s *AuthService) issuePair(ctx context.Context, userID int64) (LoginResult, error) {
	access, err := s.issuer.CreateToken(map[string]any{"sub": userID}, security.TokenTypeAccess)
	if err != nil {
		return LoginResult{}, err
	}

	refresh, err := s.issuer.CreateToken(map[string]any{
		"sub": userID,
		"jti": s.idGen.NewID(),
	}, security.TokenTypeRefresh)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.tokens.Save(ctx, newRefreshRow(refresh, userID)); err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshToken:     refresh.Token,
		RefreshExpiresAt: refresh.ExpiresAt,
		ExpiresIn:        int64(s.issuer.TTL(security.TokenTypeAccess) / time.Second),
	}, nil
}
