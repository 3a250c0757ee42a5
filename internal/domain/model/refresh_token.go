package model

import "time"

// トークン文字列そのものが主キー（推測できない値なので検索キーを兼ねる）
type RefreshToken struct {
	Token     string    `json:"-" gorm:"type:text;primaryKey"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
