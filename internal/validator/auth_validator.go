package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

var emailLike = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ログインの入力を検証（DBに行く前に弾けるものだけ）
func ValidateLogin(email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	return nil
}

// サインアップの入力を検証
func ValidateRegister(email string, password string, nickname string) error {
	if err := ValidateLogin(email, password); err != nil {
		return err
	}
	if strings.TrimSpace(nickname) == "" {
		return ErrInvalidInput
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailLike.MatchString(s)
}
