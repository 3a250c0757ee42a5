package security

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const bearerPrefix = "Bearer "

// 署名付きトークンの発行と検証
type TokenProvider struct {
	codec      TokenCodec
	signer     *TokenSigner
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      Clock
}

// DI
func NewTokenProvider(signer *TokenSigner, accessTTL time.Duration, refreshTTL time.Duration, clock Clock) *TokenProvider {
	if clock == nil {
		clock = SystemClock()
	}
	return &TokenProvider{
		signer:     signer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		clock:      clock,
	}
}

// TTLは種別ごとの有効期限を返す。
func (p *TokenProvider) TTL(tokenType TokenType) time.Duration {
	if tokenType == TokenTypeAccess {
		return p.accessTTL
	}
	return p.refreshTTL
}

// CreateTokenはclaimsにexp/iat/typeを足して署名したトークンを作る。
func (p *TokenProvider) CreateToken(claims map[string]any, tokenType TokenType) (TokenResult, error) {
	now := p.clock.Now()
	expiresAt := now.Add(p.TTL(tokenType))

	header := map[string]any{
		"alg": p.signer.Alg(),
		"typ": "JWT",
	}

	payload := make(map[string]any, len(claims)+3)
	for k, v := range claims {
		payload[k] = v
	}
	payload["exp"] = expiresAt.Unix()
	payload["iat"] = now.Unix()
	payload["type"] = string(tokenType)

	encodedHeader, err := p.codec.EncodePart(header)
	if err != nil {
		return TokenResult{}, ErrTokenGeneration
	}
	encodedPayload, err := p.codec.EncodePart(payload)
	if err != nil {
		return TokenResult{}, ErrTokenGeneration
	}

	unsigned := p.codec.Join(encodedHeader, encodedPayload)
	signature, err := p.signer.Sign(unsigned)
	if err != nil {
		return TokenResult{}, ErrTokenGeneration
	}

	return TokenResult{
		Token: p.codec.Join(unsigned, signature),
		//expは秒単位なので合わせる
		ExpiresAt: time.Unix(expiresAt.Unix(), 0),
	}, nil
}

// ParseTokenは構造→署名→payload→期限→種別の順に検証する。
func (p *TokenProvider) ParseToken(token string, expected TokenType) (TokenPayload, error) {
	header, payload, signature, ok := p.codec.Split(token)
	if !ok {
		return TokenPayload{}, ErrInvalidToken
	}

	if !p.signer.Verify(p.codec.Join(header, payload), signature) {
		return TokenPayload{}, ErrInvalidToken
	}

	claims, err := p.codec.DecodePart(payload)
	if err != nil {
		return TokenPayload{}, ErrInvalidToken
	}

	exp, ok := ClaimInt64(claims["exp"])
	if !ok {
		return TokenPayload{}, ErrInvalidToken
	}
	expiresAt := time.Unix(exp, 0)
	if !p.clock.Now().Before(expiresAt) {
		return TokenPayload{}, ErrExpiredToken
	}

	rawType, ok := claims["type"].(string)
	if !ok || TokenType(rawType) != expected {
		return TokenPayload{}, ErrInvalidToken
	}

	userID, ok := ClaimInt64(claims["sub"])
	if !ok {
		return TokenPayload{}, ErrInvalidToken
	}

	return TokenPayload{
		UserID:    userID,
		ExpiresAt: expiresAt,
		Type:      TokenType(rawType),
	}, nil
}

// ResolveTokenはAuthorizationヘッダからBearerトークンを抜き出す。
func (p *TokenProvider) ResolveToken(r *http.Request) (string, error) {
	if r == nil {
		return "", ErrUnauthorized
	}
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, bearerPrefix) {
		return "", ErrUnauthorized
	}
	return strings.TrimPrefix(authz, bearerPrefix), nil
}

// GetAuthenticationはACCESSトークンを認証済みユーザーに変える。
func (p *TokenProvider) GetAuthentication(token string) (Authentication, error) {
	payload, err := p.ParseToken(token, TokenTypeAccess)
	if err != nil {
		return Authentication{}, err
	}
	return Authentication{
		Principal:     AuthenticatedUser{UserID: payload.UserID},
		Authenticated: true,
	}, nil
}

// ClaimInt64はJSON由来の数値（json.Number/float64/文字列など）をint64にする。
func ClaimInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		i, err := t.Int64()
		return i, err == nil
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int16:
		return int64(t), true
	case int8:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint:
		return int64(t), uint64(t) <= math.MaxInt64
	case uint64:
		return int64(t), t <= math.MaxInt64
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int64(t), true
	case string:
		i, err := strconv.ParseInt(t, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
