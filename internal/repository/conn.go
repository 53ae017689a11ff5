package repository

import (
	"context"

	"gorm.io/gorm"
)

// Conn yields the shared connection. database.Handle implements it.
type Conn interface {
	DB(ctx context.Context) (*gorm.DB, error)
}
