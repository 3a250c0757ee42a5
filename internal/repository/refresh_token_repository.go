package repository

import (
	"community/internal/domain/model"
	"context"
	"errors"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの保存・取得・削除
// Saveした値は、その後のFindから必ず見える（単一の正本）
type RefreshTokenRepository interface {
	Save(ctx context.Context, token model.RefreshToken) error
	//無ければErrRefreshTokenNotFound
	Find(ctx context.Context, token string) (model.RefreshToken, error)
	//実際に消せたときだけnil。同じ値を同時に消しても成功するのは1回だけ。
	//消すものが無ければErrRefreshTokenNotFound
	Consume(ctx context.Context, token string) error
	//存在しなくてもエラーにしない
	Delete(ctx context.Context, token string) error
	//ユーザーのトークンを全部失効させる（パスワード変更・退会）
	DeleteAllByUserID(ctx context.Context, userID int64) error
}
