package usecase

import (
	"context"
	"strings"
	"time"

	"community/internal/domain/model"
	"community/internal/repository"
)

type CommentDTO struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"post_id"`
	UserID    int64  `json:"user_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CommentWriteRequest struct {
	Content string `json:"content"`
}

type CommentUsecase struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewCommentUsecase(posts repository.PostRepository, comments repository.CommentRepository) *CommentUsecase {
	return &CommentUsecase{posts: posts, comments: comments}
}

func (u *CommentUsecase) Create(ctx context.Context, userID int64, postID int64, req CommentWriteRequest) (CommentDTO, error) {
	if userID <= 0 {
		return CommentDTO{}, ErrUnauthorized
	}
	if postID <= 0 {
		return CommentDTO{}, ErrValidation
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return CommentDTO{}, ErrValidation
	}

	//親の投稿が無ければ404
	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		return CommentDTO{}, mapRepoError(err)
	}

	now := time.Now()
	c := &model.Comment{
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.comments.Create(ctx, c); err != nil {
		return CommentDTO{}, ErrInternal
	}
	return toCommentDTO(c), nil
}

// 投稿に付いたコメント一覧（古い順）。投稿が無ければ404。
func (u *CommentUsecase) ListByPost(ctx context.Context, postID int64, page int, size int) (PageDTO[CommentDTO], error) {
	if postID <= 0 {
		return PageDTO[CommentDTO]{}, ErrValidation
	}
	q, size, err := pageQuery(page, size)
	if err != nil {
		return PageDTO[CommentDTO]{}, err
	}

	if _, err := u.posts.FindByID(ctx, postID); err != nil {
		return PageDTO[CommentDTO]{}, mapRepoError(err)
	}

	comments, total, err := u.comments.ListByPostID(ctx, postID, q)
	if err != nil {
		return PageDTO[CommentDTO]{}, ErrInternal
	}

	items := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		items = append(items, toCommentDTO(&comments[i]))
	}
	return PageDTO[CommentDTO]{Items: items, Page: page, Size: size, Total: total}, nil
}

func (u *CommentUsecase) Update(ctx context.Context, commentID int64, req CommentWriteRequest) (CommentDTO, error) {
	if commentID <= 0 {
		return CommentDTO{}, ErrValidation
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return CommentDTO{}, ErrValidation
	}

	c, err := u.comments.FindByID(ctx, commentID)
	if err != nil {
		return CommentDTO{}, mapRepoError(err)
	}
	c.Content = content
	c.UpdatedAt = time.Now()

	if err := u.comments.Update(ctx, c); err != nil {
		return CommentDTO{}, mapRepoError(err)
	}
	return toCommentDTO(c), nil
}

func (u *CommentUsecase) Delete(ctx context.Context, commentID int64) error {
	if commentID <= 0 {
		return ErrValidation
	}
	if err := u.comments.Delete(ctx, commentID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func toCommentDTO(c *model.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
