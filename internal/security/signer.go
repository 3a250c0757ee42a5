package security

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// HMAC-SHA256でトークンに署名する。鍵は起動時に一度だけ読み込む。
type TokenSigner struct {
	method *jwt.SigningMethodHMAC
	key    []byte
}

// NewTokenSignerは署名器を作る。errorが返ったら起動を止めること。
func NewTokenSigner(secret []byte) (*TokenSigner, error) {
	if len(secret) == 0 {
		return nil, errors.New("signing secret is empty")
	}

	method := jwt.SigningMethodHS256
	if !method.Hash.Available() {
		return nil, fmt.Errorf("hash %v is unavailable", method.Hash)
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	s := &TokenSigner{method: method, key: key}

	//初期化失敗はここで検出する
	if _, err := s.Sign("init"); err != nil {
		return nil, fmt.Errorf("init signer: %w", err)
	}
	return s, nil
}

// Alg はheaderに入れるアルゴリズム名
func (s *TokenSigner) Alg() string {
	return s.method.Alg()
}

// Signは未署名部分の署名をbase64urlで返す。
func (s *TokenSigner) Sign(unsigned string) (string, error) {
	return s.method.Sign(unsigned, s.key)
}

// Verifyは署名を計算し直して比較する。
func (s *TokenSigner) Verify(unsigned string, signature string) bool {
	expected, err := s.Sign(unsigned)
	if err != nil {
		return false
	}
	return constantTimeEquals(expected, signature)
}

// 長さが違えば即false、同じ長さなら途中で抜けずに全体を比べる
func constantTimeEquals(expected string, actual string) bool {
	if len(expected) != len(actual) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
