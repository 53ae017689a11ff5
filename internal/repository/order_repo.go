package repository

import (
	"context"

	"github.com/Eursukkul/event-service/internal/models"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	CreateIfAbsent(ctx context.Context, order *models.Order) (bool, error)
	FindByStripeID(ctx context.Context, stripeID string) (*models.Order, error)
	FindByEventID(ctx context.Context, eventID string) ([]models.Order, error)
	FindByBuyerID(ctx context.Context, buyerID string) ([]models.Order, error)
}

type orderRepository struct {
	conn Conn
}

func NewOrderRepository(conn Conn) OrderRepository {
	return &orderRepository{conn: conn}
}

// CreateIfAbsent inserts the order unless one with the same stripe id exists.
// It reports whether a row was written.
func (r *orderRepository) CreateIfAbsent(ctx context.Context, order *models.Order) (bool, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return false, err
	}
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_id"}},
			DoNothing: true,
		}).
		Create(order)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) FindByStripeID(ctx context.Context, stripeID string) (*models.Order, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := db.WithContext(ctx).First(&order, "stripe_id = ?", stripeID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByEventID(ctx context.Context, eventID string) ([]models.Order, error) {
	return r.findWhere(ctx, "event_id = ?", eventID)
}

func (r *orderRepository) FindByBuyerID(ctx context.Context, buyerID string) ([]models.Order, error) {
	return r.findWhere(ctx, "buyer_id = ?", buyerID)
}

func (r *orderRepository) findWhere(ctx context.Context, query string, arg any) ([]models.Order, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := db.WithContext(ctx).Where(query, arg).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
