package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Eursukkul/event-service/internal/clock"
	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const EventPaymentIntentSucceeded = "payment_intent.succeeded"

var ErrInvalidSignature = errors.New("invalid webhook signature")

// OrderCreator is the subset of service.OrderService the processor writes through.
type OrderCreator interface {
	CreateOrder(ctx context.Context, params service.CreateOrderParams) (*models.Order, bool, error)
}

type Result struct {
	Handled   bool
	EventType string
	Order     *models.Order
	// Created is false when the payment intent already had an order.
	Created bool
}

type Processor struct {
	secret string
	orders OrderCreator
	clock  clock.Clock
	tracer trace.Tracer
}

func NewProcessor(secret string, orders OrderCreator, clk clock.Clock) *Processor {
	return &Processor{
		secret: secret,
		orders: orders,
		clock:  clk,
		tracer: otel.Tracer("github.com/Eursukkul/event-service/internal/webhook"),
	}
}

// Process verifies body against the Stripe-Signature header value and turns a
// succeeded payment intent into an order. body must be the request bytes as received.
func (p *Processor) Process(ctx context.Context, body []byte, signature string) (Result, error) {
	ctx, span := p.tracer.Start(ctx, "webhook.Process")
	defer span.End()

	event, err := stripewebhook.ConstructEventWithOptions(body, signature, p.secret,
		stripewebhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		span.SetStatus(codes.Error, "signature verification failed")
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	eventType := string(event.Type)
	span.SetAttributes(attribute.String("stripe.event_type", eventType))
	if eventType != EventPaymentIntentSucceeded {
		return Result{EventType: eventType}, nil
	}

	var intent stripe.PaymentIntent
	if event.Data == nil {
		return Result{}, fmt.Errorf("%s event %s has no data", eventType, event.ID)
	}
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return Result{}, fmt.Errorf("decode payment intent: %w", err)
	}
	span.SetAttributes(attribute.String("stripe.payment_intent", intent.ID))

	order, created, err := p.orders.CreateOrder(ctx, service.CreateOrderParams{
		StripeID:    intent.ID,
		TotalAmount: FormatMinorUnits(intent.Amount),
		EventID:     intent.Metadata["eventId"],
		BuyerID:     intent.Metadata["buyerId"],
		CreatedAt:   p.clock.Now(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("[Webhook] failed to create order for %s: %v", intent.ID, err)
		return Result{}, err
	}

	if created {
		log.Printf("[Webhook] created order %s for payment intent %s", order.ID, intent.ID)
	} else {
		log.Printf("[Webhook] payment intent %s already has order %s", intent.ID, order.ID)
	}
	return Result{Handled: true, EventType: eventType, Order: order, Created: created}, nil
}

// FormatMinorUnits renders an amount in minor units as major units with two
// decimals, e.g. 5000 -> "50.00".
func FormatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
