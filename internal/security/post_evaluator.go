package security

import (
	"context"

	"community/internal/repository"
)

// 投稿の持ち主かどうか
type PostPermissionEvaluator struct {
	posts repository.PostRepository
}

func NewPostPermissionEvaluator(posts repository.PostRepository) *PostPermissionEvaluator {
	return &PostPermissionEvaluator{posts: posts}
}

func (e *PostPermissionEvaluator) SupportType() TargetType {
	return TargetPost
}

// 投稿が無ければrepository.ErrPostNotFoundをそのまま返す
func (e *PostPermissionEvaluator) HasPermission(ctx context.Context, user AuthenticatedUser, targetID int64, _ TargetType, _ []any) (bool, error) {
	post, err := e.posts.FindByID(ctx, targetID)
	if err != nil {
		return false, err
	}
	return post.UserID == user.UserID, nil
}

var _ TargetAwareEvaluator = (*PostPermissionEvaluator)(nil)
