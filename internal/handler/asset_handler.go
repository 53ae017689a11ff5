package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/upload"
	"github.com/labstack/echo/v4"
)

// AssetStore accepts uploads and serves stored assets. *upload.Store implements it.
type AssetStore interface {
	upload.Uploader
	Open(ctx context.Context, id string) (*models.Asset, error)
}

type AssetHandler struct {
	store AssetStore
}

func NewAssetHandler(store AssetStore) *AssetHandler {
	return &AssetHandler{store: store}
}

func (h *AssetHandler) RegisterRoutes(api *echo.Group, auth echo.MiddlewareFunc) {
	api.POST("/uploads", h.Upload, auth)
	api.GET("/assets/:id", h.GetAsset)
}

func (h *AssetHandler) Upload(c echo.Context) error {
	files, err := readFiles(c)
	if err != nil {
		return err
	}

	uploaded, err := h.store.Upload(c.Request().Context(), files)
	if err != nil {
		if errors.Is(err, upload.ErrNoFiles) || errors.Is(err, upload.ErrNotImage) || errors.Is(err, upload.ErrTooLarge) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, uploaded)
}

func (h *AssetHandler) GetAsset(c echo.Context) error {
	asset, err := h.store.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, upload.ErrAssetNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Assets are immutable once stored.
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, asset.ContentType, asset.Data)
}
