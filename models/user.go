package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`
}

// UserLog est le petit journal libre de l'utilisateur (notes, jalons).
type UserLog struct {
	ID              int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Message         string `json:"message"`
	CreatedAtMillis int64  `gorm:"index" json:"created_at_millis"`
}
