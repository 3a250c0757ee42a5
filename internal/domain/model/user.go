package model

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Nickname     string `gorm:"type:varchar(50);uniqueIndex;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
