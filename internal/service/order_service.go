package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/repository"
)

var ErrStripeIDRequired = errors.New("stripe id is required")

type CreateOrderParams struct {
	StripeID    string
	TotalAmount string
	EventID     string
	BuyerID     string
	CreatedAt   time.Time
}

type OrderService interface {
	// CreateOrder is idempotent on StripeID. The bool reports whether a new order was written.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*models.Order, bool, error)
	ListOrdersByEvent(ctx context.Context, eventID string) ([]models.Order, error)
	ListOrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
}

type orderService struct {
	repo     repository.OrderRepository
	notifier Notifier
}

func NewOrderService(repo repository.OrderRepository, notifier Notifier) OrderService {
	return &orderService{repo: repo, notifier: notifier}
}

func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (*models.Order, bool, error) {
	if params.StripeID == "" {
		return nil, false, ErrStripeIDRequired
	}

	order := &models.Order{
		StripeID:    params.StripeID,
		TotalAmount: params.TotalAmount,
		EventID:     params.EventID,
		BuyerID:     params.BuyerID,
		CreatedAt:   params.CreatedAt,
	}

	created, err := s.repo.CreateIfAbsent(ctx, order)
	if err != nil {
		return nil, false, fmt.Errorf("create order: %w", err)
	}
	if !created {
		existing, err := s.repo.FindByStripeID(ctx, params.StripeID)
		if err != nil {
			return nil, false, fmt.Errorf("load existing order %s: %w", params.StripeID, err)
		}
		return existing, false, nil
	}

	notify(ctx, s.notifier, RouteOrderCreated, ChangeNotice{
		ID:    order.ID,
		Paths: []string{ProfilePath},
	})
	return order, true, nil
}

func (s *orderService) ListOrdersByEvent(ctx context.Context, eventID string) ([]models.Order, error) {
	return s.repo.FindByEventID(ctx, eventID)
}

func (s *orderService) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	return s.repo.FindByBuyerID(ctx, buyerID)
}
