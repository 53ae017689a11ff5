package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/event-service/internal/dto"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/Eursukkul/event-service/internal/validation"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("", h.ListCategories)
	g.POST("", h.CreateCategory, auth)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		if errs, ok := validation.AsErrors(err); ok {
			return echo.NewHTTPError(http.StatusBadRequest, dto.ToValidationErrorResponse(errs))
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.svc.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrCategoryNameBlank):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = dto.ToCategoryResponse(&categories[i])
	}
	return c.JSON(http.StatusOK, resp)
}
