package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"community/internal/domain/model"
	"community/internal/repository"
)

type PostDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PostWriteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// 投稿の作成・参照・更新・削除
// 更新・削除の持ち主チェックはルートのPermissionGuardで済ませてから呼ぶ
type PostUsecase struct {
	posts repository.PostRepository
}

func NewPostUsecase(posts repository.PostRepository) *PostUsecase {
	return &PostUsecase{posts: posts}
}

func (u *PostUsecase) Create(ctx context.Context, userID int64, req PostWriteRequest) (PostDTO, error) {
	if userID <= 0 {
		return PostDTO{}, ErrUnauthorized
	}

	//入力チェック
	title, content, ok := validatePost(req)
	if !ok {
		return PostDTO{}, ErrValidation
	}

	now := time.Now()
	p := &model.Post{
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.posts.Create(ctx, p); err != nil {
		return PostDTO{}, ErrInternal
	}
	return toPostDTO(p), nil
}

func (u *PostUsecase) Get(ctx context.Context, postID int64) (PostDTO, error) {
	if postID <= 0 {
		return PostDTO{}, ErrValidation
	}

	p, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return PostDTO{}, mapRepoError(err)
	}
	return toPostDTO(p), nil
}

// 全体の一覧（新しい順）
func (u *PostUsecase) List(ctx context.Context, page int, size int) (PageDTO[PostDTO], error) {
	q, size, err := pageQuery(page, size)
	if err != nil {
		return PageDTO[PostDTO]{}, err
	}

	posts, total, err := u.posts.List(ctx, q)
	if err != nil {
		return PageDTO[PostDTO]{}, ErrInternal
	}
	return toPostPage(posts, total, page, size), nil
}

// 自分の投稿一覧
func (u *PostUsecase) ListMine(ctx context.Context, userID int64, page int, size int) (PageDTO[PostDTO], error) {
	if userID <= 0 {
		return PageDTO[PostDTO]{}, ErrUnauthorized
	}
	q, size, err := pageQuery(page, size)
	if err != nil {
		return PageDTO[PostDTO]{}, err
	}

	posts, total, err := u.posts.ListByUserID(ctx, userID, q)
	if err != nil {
		return PageDTO[PostDTO]{}, ErrInternal
	}
	return toPostPage(posts, total, page, size), nil
}

func (u *PostUsecase) Update(ctx context.Context, postID int64, req PostWriteRequest) (PostDTO, error) {
	if postID <= 0 {
		return PostDTO{}, ErrValidation
	}
	title, content, ok := validatePost(req)
	if !ok {
		return PostDTO{}, ErrValidation
	}

	p, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return PostDTO{}, mapRepoError(err)
	}

	p.Title = title
	p.Content = content
	p.UpdatedAt = time.Now()

	if err := u.posts.Update(ctx, p); err != nil {
		return PostDTO{}, mapRepoError(err)
	}
	return toPostDTO(p), nil
}

func (u *PostUsecase) Delete(ctx context.Context, postID int64) error {
	if postID <= 0 {
		return ErrValidation
	}
	if err := u.posts.Delete(ctx, postID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func validatePost(req PostWriteRequest) (string, string, bool) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" || utf8.RuneCountInString(title) > 255 {
		return "", "", false
	}
	return title, content, true
}

// repositoryの「無い」はErrNotFoundに、それ以外は500に寄せる
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrPostNotFound), errors.Is(err, repository.ErrCommentNotFound):
		return ErrNotFound
	default:
		return ErrInternal
	}
}

func toPostDTO(p *model.Post) PostDTO {
	return PostDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func toPostPage(posts []model.Post, total int64, page int, size int) PageDTO[PostDTO] {
	items := make([]PostDTO, 0, len(posts))
	for i := range posts {
		items = append(items, toPostDTO(&posts[i]))
	}
	return PageDTO[PostDTO]{Items: items, Page: page, Size: size, Total: total}
}
