package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Location      string    `gorm:"not null" json:"location"`
	ImageURL      string    `gorm:"not null;default:''" json:"imageUrl"`
	StartDateTime time.Time `gorm:"not null" json:"startDateTime"`
	EndDateTime   time.Time `gorm:"not null" json:"endDateTime"`
	CategoryID    string    `gorm:"type:varchar(36);index" json:"categoryId"`
	Price         string    `gorm:"not null;default:''" json:"price"`
	IsFree        bool      `gorm:"not null;default:false" json:"isFree"`
	URL           string    `gorm:"not null" json:"url"`
	OrganizerID   string    `gorm:"not null;index" json:"organizerId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
