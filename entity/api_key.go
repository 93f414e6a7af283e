package entity

import (
	"time"

	"gorm.io/gorm"
)

type APIKey struct {
	Token    string `gorm:"primarykey"`
	Username string
	Role     string

	CreatedAt time.Time
}

func (k *APIKey) Delete(db *gorm.DB) error {
	return db.Where("token = ?", k.Token).Delete(k).Error
}
