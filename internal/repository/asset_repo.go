package repository

import (
	"context"

	"github.com/Eursukkul/event-service/internal/models"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	FindByID(ctx context.Context, id string) (*models.Asset, error)
}

type assetRepository struct {
	conn Conn
}

func NewAssetRepository(conn Conn) AssetRepository {
	return &assetRepository{conn: conn}
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) FindByID(ctx context.Context, id string) (*models.Asset, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var asset models.Asset
	if err := db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}
