package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/Eursukkul/event-service/internal/middleware"
	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/repository"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/Eursukkul/event-service/internal/submission"
	"github.com/Eursukkul/event-service/internal/upload"
	"github.com/Eursukkul/event-service/internal/validation"
	"github.com/labstack/echo/v4"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn func(ctx context.Context, params service.CreateEventParams) (*models.Event, error)
	updateFn func(ctx context.Context, params service.UpdateEventParams) (*models.Event, error)
	getFn    func(ctx context.Context, id string) (*models.Event, error)
	listFn   func(ctx context.Context, filter repository.EventFilter) (repository.EventPage, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, params service.CreateEventParams) (*models.Event, error) {
	return m.createFn(ctx, params)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, params service.UpdateEventParams) (*models.Event, error) {
	return m.updateFn(ctx, params)
}
func (m *mockEventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventService) ListEvents(ctx context.Context, filter repository.EventFilter) (repository.EventPage, error) {
	return m.listFn(ctx, filter)
}

// --- Mock Submitter ---

type mockSubmitter struct {
	submitFn func(ctx context.Context, in submission.Input) (submission.Outcome, error)
	inputs   []submission.Input
}

func (m *mockSubmitter) Submit(ctx context.Context, in submission.Input) (submission.Outcome, error) {
	m.inputs = append(m.inputs, in)
	return m.submitFn(ctx, in)
}

// --- Mock OrderService ---

type mockOrderService struct {
	byEventFn func(ctx context.Context, eventID string) ([]models.Order, error)
	byBuyerFn func(ctx context.Context, buyerID string) ([]models.Order, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, params service.CreateOrderParams) (*models.Order, bool, error) {
	panic("not used")
}
func (m *mockOrderService) ListOrdersByEvent(ctx context.Context, eventID string) ([]models.Order, error) {
	return m.byEventFn(ctx, eventID)
}
func (m *mockOrderService) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	return m.byBuyerFn(ctx, buyerID)
}

// --- Mock CategoryService ---

type mockCategoryService struct {
	createFn func(ctx context.Context, name string) (*models.Category, error)
	listFn   func(ctx context.Context) ([]models.Category, error)
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	return m.createFn(ctx, name)
}
func (m *mockCategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return m.listFn(ctx)
}

// --- Mock AssetStore ---

type mockAssetStore struct {
	uploadFn func(ctx context.Context, files []upload.File) ([]upload.Uploaded, error)
	openFn   func(ctx context.Context, id string) (*models.Asset, error)
}

func (m *mockAssetStore) Upload(ctx context.Context, files []upload.File) ([]upload.Uploaded, error) {
	return m.uploadFn(ctx, files)
}
func (m *mockAssetStore) Open(ctx context.Context, id string) (*models.Asset, error) {
	return m.openFn(ctx, id)
}

// --- In-memory ViewCache ---

type memoryViews struct {
	entries map[string][]byte
}

func newMemoryViews() *memoryViews {
	return &memoryViews{entries: map[string][]byte{}}
}

func (m *memoryViews) Get(ctx context.Context, path, variant string) ([]byte, bool, error) {
	body, ok := m.entries[path+"|"+variant]
	return body, ok, nil
}
func (m *memoryViews) Set(ctx context.Context, path, variant string, body []byte) error {
	m.entries[path+"|"+variant] = body
	return nil
}
func (m *memoryViews) Invalidate(ctx context.Context, paths ...string) error {
	return nil
}

// newContext builds an echo context with the validator installed and, when
// userID is set, an authenticated caller.
func newContext(req *http.Request, rec *httptest.ResponseRecorder, userID string) echo.Context {
	e := echo.New()
	e.Validator = validation.NewEchoValidator()
	c := e.NewContext(req, rec)
	if userID != "" {
		middleware.SetUserID(c, userID)
	}
	return c
}
