package service

import (
	"context"

	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/repository"
	"gorm.io/gorm"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn     func(ctx context.Context, event *models.Event) error
	findByIDFn   func(ctx context.Context, id string) (*models.Event, error)
	findAllFn    func(ctx context.Context, filter repository.EventFilter) (repository.EventPage, error)
	forUpdateFn  func(ctx context.Context, id string) (*models.Event, error)
	updateFn     func(ctx context.Context, event *models.Event) error
	transactions int
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindAll(ctx context.Context, filter repository.EventFilter) (repository.EventPage, error) {
	return m.findAllFn(ctx, filter)
}
func (m *mockEventRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.transactions++
	return fn(nil)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error) {
	return m.forUpdateFn(ctx, id)
}
func (m *mockEventRepo) Update(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return m.updateFn(ctx, event)
}

// --- Mock CategoryRepository ---

type mockCategoryRepo struct {
	createFn   func(ctx context.Context, category *models.Category) error
	findByIDFn func(ctx context.Context, id string) (*models.Category, error)
	findAllFn  func(ctx context.Context) ([]models.Category, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	return m.createFn(ctx, category)
}
func (m *mockCategoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	return m.findAllFn(ctx)
}

// --- Mock OrderRepository ---

type mockOrderRepo struct {
	createFn       func(ctx context.Context, order *models.Order) (bool, error)
	findByStripeFn func(ctx context.Context, stripeID string) (*models.Order, error)
	findByEventFn  func(ctx context.Context, eventID string) ([]models.Order, error)
	findByBuyerFn  func(ctx context.Context, buyerID string) ([]models.Order, error)
}

func (m *mockOrderRepo) CreateIfAbsent(ctx context.Context, order *models.Order) (bool, error) {
	return m.createFn(ctx, order)
}
func (m *mockOrderRepo) FindByStripeID(ctx context.Context, stripeID string) (*models.Order, error) {
	return m.findByStripeFn(ctx, stripeID)
}
func (m *mockOrderRepo) FindByEventID(ctx context.Context, eventID string) ([]models.Order, error) {
	return m.findByEventFn(ctx, eventID)
}
func (m *mockOrderRepo) FindByBuyerID(ctx context.Context, buyerID string) ([]models.Order, error) {
	return m.findByBuyerFn(ctx, buyerID)
}

// --- Recording Notifier ---

type published struct {
	routingKey string
	notice     ChangeNotice
}

type recordingNotifier struct {
	sent []published
	err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, routingKey string, notice ChangeNotice) error {
	n.sent = append(n.sent, published{routingKey: routingKey, notice: notice})
	return n.err
}
