package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Eursukkul/event-service/internal/cache"
	"github.com/labstack/echo/v4"
)

const headerViewCache = "X-View-Cache"

// cachedJSON serves path/variant from the view cache, or renders it with
// load and stores the body. Cache failures degrade to an uncached response.
func cachedJSON(c echo.Context, views cache.ViewCache, path, variant string, load func() (any, error)) error {
	ctx := c.Request().Context()

	if body, ok, err := views.Get(ctx, path, variant); err != nil {
		log.Printf("[ViewCache] get %s failed: %v", path, err)
	} else if ok {
		c.Response().Header().Set(headerViewCache, "hit")
		return c.JSONBlob(http.StatusOK, body)
	}

	value, err := load()
	if err != nil {
		return err
	}
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := views.Set(ctx, path, variant, body); err != nil {
		log.Printf("[ViewCache] set %s failed: %v", path, err)
	}

	c.Response().Header().Set(headerViewCache, "miss")
	return c.JSONBlob(http.StatusOK, body)
}
