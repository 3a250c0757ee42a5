package repository

import (
	"context"
	"errors"
	"time"

	"community/internal/domain/model"
	repo "community/internal/repository"

	"gorm.io/gorm"
)

type refreshTokenGormRepository struct {
	db  *gorm.DB //DB接続（GORM）
	now func() time.Time
}

// GORM実装
func NewRefreshTokenRepository(db *gorm.DB) repo.RefreshTokenRepository {
	return &refreshTokenGormRepository{db: db, now: time.Now}
}

// リフレッシュトークンを保存する。同じ値なら上書き。
func (r *refreshTokenGormRepository) Save(ctx context.Context, token model.RefreshToken) error {
	//タイムアウトやキャンセルをDB処理に伝える
	if err := r.db.WithContext(ctx).Save(&token).Error; err != nil {
		return err
	}
	return nil
}

// トークン文字列で1件検索します。期限切れの行は無いものとして扱う。
func (r *refreshTokenGormRepository) Find(ctx context.Context, token string) (model.RefreshToken, error) {
	var row model.RefreshToken

	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, r.now()).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.RefreshToken{}, repo.ErrRefreshTokenNotFound
		}
		return model.RefreshToken{}, err
	}

	return row, nil
}

// 期限内の行を1件消す。削除件数が0なら、すでに使用済み/失効/存在しない。
// DELETEは行ロックを取るので、同じ値を同時に渡しても1件になるのは片方だけ。
func (r *refreshTokenGormRepository) Consume(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, r.now()).
		Delete(&model.RefreshToken{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrRefreshTokenNotFound
	}
	return nil
}

// 指定のリフレッシュトークンを削除。0件でもエラーにしない。
func (r *refreshTokenGormRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.RefreshToken{}).Error; err != nil {
		return err
	}
	return nil
}

// 指定ユーザーのリフレッシュトークンを全削除します。
func (r *refreshTokenGormRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RefreshToken{}).Error; err != nil {
		return err
	}
	return nil
}
