package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eursukkul/event-service/internal/dto"
	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_Handler_Success(t *testing.T) {
	svc := &mockCategoryService{
		createFn: func(ctx context.Context, name string) (*models.Category, error) {
			return &models.Category{ID: "cat-1", Name: name}, nil
		},
	}

	rec := httptest.NewRecorder()
	c := newContext(jsonRequest(http.MethodPost, "/api/v1/categories", `{"name":"Music"}`), rec, "user-1")

	require.NoError(t, NewCategoryHandler(svc).CreateCategory(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Music", resp.Name)
}

func TestCreateCategory_Handler_MissingName(t *testing.T) {
	c := newContext(jsonRequest(http.MethodPost, "/api/v1/categories", `{}`), httptest.NewRecorder(), "user-1")

	err := NewCategoryHandler(&mockCategoryService{}).CreateCategory(c)

	he := requireHTTPError(t, err, http.StatusBadRequest)
	resp := he.Message.(dto.ValidationErrorResponse)
	assert.Equal(t, []string{"is required"}, resp.Errors["name"])
}

func TestCreateCategory_Handler_Duplicate(t *testing.T) {
	svc := &mockCategoryService{
		createFn: func(ctx context.Context, name string) (*models.Category, error) {
			return nil, service.ErrCategoryExists
		},
	}
	c := newContext(jsonRequest(http.MethodPost, "/api/v1/categories", `{"name":"Music"}`), httptest.NewRecorder(), "user-1")

	requireHTTPError(t, NewCategoryHandler(svc).CreateCategory(c), http.StatusConflict)
}

func TestListCategories_Handler(t *testing.T) {
	svc := &mockCategoryService{
		listFn: func(ctx context.Context) ([]models.Category, error) {
			return []models.Category{{ID: "c1", Name: "Music"}, {ID: "c2", Name: "Tech"}}, nil
		},
	}

	rec := httptest.NewRecorder()
	c := newContext(httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil), rec, "")

	require.NoError(t, NewCategoryHandler(svc).ListCategories(c))

	var resp []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
