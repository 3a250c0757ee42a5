package repository

import (
	"community/internal/domain/model"
	"context"
	"errors"
)

// コメントが存在しない（Handlerが404に変換する）
var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error

	//無ければErrCommentNotFound
	FindByID(ctx context.Context, commentID int64) (*model.Comment, error)

	//投稿に付いたコメント（古い順）と総件数
	ListByPostID(ctx context.Context, postID int64, q PageQuery) ([]model.Comment, int64, error)

	//本文だけ更新する
	Update(ctx context.Context, comment *model.Comment) error

	Delete(ctx context.Context, commentID int64) error
}
