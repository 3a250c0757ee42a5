package model

import "time"

// 掲示板の投稿
type Post struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//タイトル
	Title string `gorm:"type:varchar(255);not null" json:"title"`

	//本文
	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
