package security

import "errors"

var (
	//401 構造不正・署名不一致・デコード失敗・種別違い
	ErrInvalidToken = errors.New("invalid token")
	//401 署名は正しいが期限切れ
	ErrExpiredToken = errors.New("expired token")
	//401 Authorizationヘッダが無い、またはBearer形式でない
	ErrUnauthorized = errors.New("unauthorized")
	//500 トークン生成時のシリアライズ失敗（通常は起きない）
	ErrTokenGeneration = errors.New("token generation error")
)
