package repository

import (
	"context"

	"github.com/Eursukkul/event-service/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
}

type categoryRepository struct {
	conn Conn
}

func NewCategoryRepository(conn Conn) CategoryRepository {
	return &categoryRepository{conn: conn}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
