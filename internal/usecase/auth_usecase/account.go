package auth

import (
	"context"
	"errors"

	"community/internal/repository"
)

var (
	// トークンは正しいがユーザーが消えている
	ErrAccountNotFound = errors.New("account not found")

	// パスワード変更で今のパスワードが違う
	ErrCurrentPasswordMismatch = errors.New("current password mismatch")
)

// パスワード変更の入力
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// パスワード変更と退会。どちらもその人のリフレッシュトークンを全部失効させる。
type AccountUsecase struct {
	users    repository.UserRepository
	tokens   repository.RefreshTokenRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
}

// DI
func NewAccountUsecase(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
) *AccountUsecase {
	return &AccountUsecase{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		verifier: verifier,
	}
}

// ChangePasswordは今のパスワードを確かめてから差し替える。
func (u *AccountUsecase) ChangePassword(ctx context.Context, userID int64, in ChangePasswordInput) error {
	// 新しいパスワードは会員登録と同じ基準
	if len(in.NewPassword) < 8 {
		return ErrPasswordTooShort
	}
	if isWeakPassword(in.NewPassword) {
		return ErrWeakPassword
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if !u.verifier.Verify(in.CurrentPassword, user.PasswordHash) {
		return ErrCurrentPasswordMismatch
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	// 他の端末のセッションも切る
	return u.tokens.DeleteAllByUserID(ctx, userID)
}

// DeleteAccountは先にトークンを失効させてからユーザーを消す。
func (u *AccountUsecase) DeleteAccount(ctx context.Context, userID int64) error {
	if err := u.tokens.DeleteAllByUserID(ctx, userID); err != nil {
		return err
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}
