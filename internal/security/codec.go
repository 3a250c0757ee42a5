package security

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

const tokenSeparator = "."

// header/payloadとワイヤ形式（base64url・パディングなし）の変換
type TokenCodec struct{}

// EncodePartはmapをJSONにしてbase64urlで返す。
func (TokenCodec) EncodePart(part map[string]any) (string, error) {
	raw, err := json.Marshal(part)
	if err != nil {
		return "", err
	}
	return jwt.EncodeSegment(raw), nil
}

// DecodePartはbase64urlのJSONをmapに戻す。数値はjson.Numberのまま。
func (TokenCodec) DecodePart(segment string) (map[string]any, error) {
	raw, err := jwt.DecodeSegment(segment)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var part map[string]any
	if err := dec.Decode(&part); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after json object")
	}
	if part == nil {
		return nil, errors.New("json object is null")
	}
	return part, nil
}

// Joinは各パートを"."でつなぐ。
func (TokenCodec) Join(parts ...string) string {
	return strings.Join(parts, tokenSeparator)
}

// Splitは空でない3パートに分かれたときだけokを返す。
func (TokenCodec) Split(token string) (header, payload, signature string, ok bool) {
	parts := strings.Split(token, tokenSeparator)
	if len(parts) != 3 {
		return "", "", "", false
	}
	for _, p := range parts {
		if p == "" {
			return "", "", "", false
		}
	}
	return parts[0], parts[1], parts[2], true
}
