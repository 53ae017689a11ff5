package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryNameBlank = errors.New("category name is required")
)

type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameBlank
	}

	category := &models.Category{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}
