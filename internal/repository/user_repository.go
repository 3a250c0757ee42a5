package repository

import (
	"community/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// email/nicknameの重複
var ErrUserDuplicated = errors.New("user duplicated")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//ニックネームから1件
	FindByNickname(ctx context.Context, nickname string) (*model.User, error)

	//重複ならErrUserDuplicated
	UpdateNickname(ctx context.Context, userID int64, nickname string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	//ユーザーと、その投稿・コメントをまとめて削除する
	Delete(ctx context.Context, userID int64) error
}
