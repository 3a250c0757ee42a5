package repository

import (
	"community/internal/domain/model"
	"context"
	"errors"
)

// 投稿が存在しない（Handlerが404に変換する）
var ErrPostNotFound = errors.New("post not found")

// 一覧取得の範囲（新しい順）
type PageQuery struct {
	Offset int
	Limit  int
}

// 投稿(Post)を保存・取得する窓口
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error

	//無ければErrPostNotFound
	FindByID(ctx context.Context, postID int64) (*model.Post, error)

	//全体の一覧と総件数
	List(ctx context.Context, q PageQuery) ([]model.Post, int64, error)

	//あるユーザーの投稿一覧と総件数
	ListByUserID(ctx context.Context, userID int64, q PageQuery) ([]model.Post, int64, error)

	//タイトルと本文だけ更新する
	Update(ctx context.Context, post *model.Post) error

	//投稿とその配下のコメントを削除する
	Delete(ctx context.Context, postID int64) error
}
