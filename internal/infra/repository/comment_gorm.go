package repository

import (
	"context"
	"errors"

	"community/internal/domain/model"
	domainrepo "community/internal/repository"

	"gorm.io/gorm"
)

type commentGormRepository struct {
	db *gorm.DB
}

func NewCommentGormRepository(db *gorm.DB) domainrepo.CommentRepository {
	return &commentGormRepository{db: db}
}

func (r *commentGormRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentGormRepository) FindByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// 投稿の下のコメントは古い順
func (r *commentGormRepository) ListByPostID(ctx context.Context, postID int64, q domainrepo.PageQuery) ([]model.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]model.Comment, 0, q.Limit)
	if err := base.Session(&gorm.Session{}).
		Order("id ASC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentGormRepository) Update(ctx context.Context, comment *model.Comment) error {
	res := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]any{
			"content":    comment.Content,
			"updated_at": comment.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrCommentNotFound
	}
	return nil
}

func (r *commentGormRepository) Delete(ctx context.Context, commentID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Delete(&model.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrCommentNotFound
	}
	return nil
}
