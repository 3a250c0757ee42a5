package repository

import (
	"context"
	"errors"

	"community/internal/domain/model"
	domainrepo "community/internal/repository"

	"gorm.io/gorm"
)

type postGormRepository struct {
	db *gorm.DB
}

func NewPostGormRepository(db *gorm.DB) domainrepo.PostRepository {
	return &postGormRepository{db: db}
}

func (r *postGormRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postGormRepository) FindByID(ctx context.Context, postID int64) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Where("id = ?", postID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

// タイトルと本文だけ。持ち主は変えない。
func (r *postGormRepository) Update(ctx context.Context, post *model.Post) error {
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":      post.Title,
			"content":    post.Content,
			"updated_at": post.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrPostNotFound
	}
	return nil
}

// コメントも一緒に消すのでトランザクションで
func (r *postGormRepository) Delete(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", postID).Delete(&model.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainrepo.ErrPostNotFound
		}
		return nil
	})
}

// 新しい順
func (r *postGormRepository) List(ctx context.Context, q domainrepo.PageQuery) ([]model.Post, int64, error) {
	return listPosts(r.db.WithContext(ctx).Model(&model.Post{}), q)
}

func (r *postGormRepository) ListByUserID(ctx context.Context, userID int64, q domainrepo.PageQuery) ([]model.Post, int64, error) {
	return listPosts(r.db.WithContext(ctx).Model(&model.Post{}).Where("user_id = ?", userID), q)
}

func listPosts(base *gorm.DB, q domainrepo.PageQuery) ([]model.Post, int64, error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]model.Post, 0, q.Limit)
	if err := base.Session(&gorm.Session{}).
		Order("id DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
