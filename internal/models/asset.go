package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset is an uploaded image blob served back by id.
type Asset struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	ContentType string    `gorm:"not null" json:"contentType"`
	Size        int64     `gorm:"not null" json:"size"`
	Data        []byte    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a *Asset) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
