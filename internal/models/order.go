package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is written once per successful payment. StripeID is the payment intent id
// and is unique, so redelivered webhooks cannot create a second row.
type Order struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	StripeID    string    `gorm:"not null;uniqueIndex" json:"stripeId"`
	TotalAmount string    `gorm:"not null" json:"totalAmount"`
	EventID     string    `gorm:"type:varchar(36);not null;default:'';index" json:"eventId"`
	BuyerID     string    `gorm:"not null;default:'';index" json:"buyerId"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
