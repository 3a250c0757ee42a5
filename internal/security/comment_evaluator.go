package security

import (
	"context"

	"community/internal/repository"
)

// コメントの持ち主で、かつ指定の投稿に属しているか
type CommentPermissionEvaluator struct {
	comments repository.CommentRepository
}

func NewCommentPermissionEvaluator(comments repository.CommentRepository) *CommentPermissionEvaluator {
	return &CommentPermissionEvaluator{comments: comments}
}

func (e *CommentPermissionEvaluator) SupportType() TargetType {
	return TargetComment
}

// コメントが無ければErrCommentNotFound（extraの形より先に判定）。
// extraは[任意, 親の投稿ID]の2要素。それ以外の形はfalse。
func (e *CommentPermissionEvaluator) HasPermission(ctx context.Context, user AuthenticatedUser, targetID int64, _ TargetType, extra []any) (bool, error) {
	comment, err := e.comments.FindByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	if len(extra) != 2 {
		return false, nil
	}
	postID, ok := numberParam(extra[1])
	if !ok {
		return false, nil
	}

	return comment.UserID == user.UserID && comment.PostID == postID, nil
}

// 数値型だけ受け付ける（文字列の"5"は不可）
func numberParam(v any) (int64, bool) {
	if _, isString := v.(string); isString {
		return 0, false
	}
	return ClaimInt64(v)
}

var _ TargetAwareEvaluator = (*CommentPermissionEvaluator)(nil)
