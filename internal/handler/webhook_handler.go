package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Eursukkul/event-service/internal/dto"
	"github.com/Eursukkul/event-service/internal/webhook"
	"github.com/labstack/echo/v4"
)

// Larger bodies are refused outright; a truncated body can never verify.
const maxWebhookBytes = 512 << 10

const headerStripeSignature = "Stripe-Signature"

type WebhookProcessor interface {
	Process(ctx context.Context, body []byte, signature string) (webhook.Result, error)
}

type WebhookHandler struct {
	processor WebhookProcessor
}

func NewWebhookHandler(processor WebhookProcessor) *WebhookHandler {
	return &WebhookHandler{processor: processor}
}

func (h *WebhookHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/stripe", h.Stripe)
}

func (h *WebhookHandler) Stripe(c echo.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxWebhookBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "webhook payload too large")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	result, err := h.processor.Process(c.Request().Context(), body, c.Request().Header.Get(headerStripeSignature))
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			return c.JSON(http.StatusBadRequest, dto.WebhookErrorResponse{Message: "Webhook Error:", Error: err.Error()})
		}
		return err
	}

	if !result.Handled {
		return c.String(http.StatusOK, "")
	}
	return c.JSON(http.StatusOK, dto.WebhookResponse{
		Message: "Order created successfully",
		Order:   dto.ToOrderResponse(result.Order),
	})
}
