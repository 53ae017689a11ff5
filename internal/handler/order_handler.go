package handler

import (
	"net/http"

	"github.com/Eursukkul/event-service/internal/dto"
	"github.com/Eursukkul/event-service/internal/middleware"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders service.OrderService
	events service.EventService
}

func NewOrderHandler(orders service.OrderService, events service.EventService) *OrderHandler {
	return &OrderHandler{orders: orders, events: events}
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, auth echo.MiddlewareFunc) {
	api.GET("/orders", h.ListMyOrders, auth)
	api.GET("/events/:id/orders", h.ListEventOrders, auth)
}

// ListMyOrders returns the caller's purchases.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	orders, err := h.orders.ListOrdersByBuyer(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// ListEventOrders returns the orders of an event to its organizer.
func (h *OrderHandler) ListEventOrders(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	event, err := h.events.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return eventError(err)
	}
	if event.OrganizerID != userID {
		return echo.NewHTTPError(http.StatusForbidden, service.ErrForbidden.Error())
	}

	orders, err := h.orders.ListOrdersByEvent(c.Request().Context(), event.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}
