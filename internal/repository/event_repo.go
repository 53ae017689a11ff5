package repository

import (
	"context"

	"github.com/Eursukkul/event-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 50
)

type EventFilter struct {
	Query       string
	CategoryID  string
	OrganizerID string
	Page        int
	Limit       int
}

// Normalize fills in paging defaults and clamps the limit.
func (f EventFilter) Normalize() EventFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

type EventPage struct {
	Events     []models.Event
	TotalPages int
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindAll(ctx context.Context, filter EventFilter) (EventPage, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error)
	Update(ctx context.Context, tx *gorm.DB, event *models.Event) error
}

type eventRepository struct {
	conn Conn
}

func NewEventRepository(conn Conn) EventRepository {
	return &eventRepository{conn: conn}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var event models.Event
	if err := db.WithContext(ctx).Preload("Category").First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, filter EventFilter) (EventPage, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return EventPage{}, err
	}
	filter = filter.Normalize()

	scoped := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&models.Event{})
		if filter.Query != "" {
			q = q.Where("title ILIKE ?", "%"+filter.Query+"%")
		}
		if filter.CategoryID != "" {
			q = q.Where("category_id = ?", filter.CategoryID)
		}
		if filter.OrganizerID != "" {
			q = q.Where("organizer_id = ?", filter.OrganizerID)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return EventPage{}, err
	}

	var events []models.Event
	err = scoped().
		Preload("Category").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&events).Error
	if err != nil {
		return EventPage{}, err
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return EventPage{Events: events, TotalPages: pages}, nil
}

func (r *eventRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Transaction(fn)
}

// FindByIDForUpdate acquires a row-level lock on the event within the given transaction.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update writes every editable column, including zero values such as isFree=false.
func (r *eventRepository) Update(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", event.ID).
		Select("title", "description", "location", "image_url", "start_date_time", "end_date_time",
			"category_id", "price", "is_free", "url", "updated_at").
		Updates(event).Error
}
