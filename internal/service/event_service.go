package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrForbidden        = errors.New("only the organizer can change this event")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOwnerRequired    = errors.New("owner id is required")
)

// View paths invalidated after writes.
const (
	HomePath    = "/"
	ProfilePath = "/profile"
)

func EventPath(id string) string {
	return "/events/" + id
}

type CreateEventParams struct {
	Event  models.Event
	UserID string
	Path   string
}

type UpdateEventParams struct {
	UserID  string
	EventID string
	Event   models.Event
	Path    string
}

type EventService interface {
	CreateEvent(ctx context.Context, params CreateEventParams) (*models.Event, error)
	UpdateEvent(ctx context.Context, params UpdateEventParams) (*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, filter repository.EventFilter) (repository.EventPage, error)
}

type eventService struct {
	repo       repository.EventRepository
	categories repository.CategoryRepository
	notifier   Notifier
}

func NewEventService(repo repository.EventRepository, categories repository.CategoryRepository, notifier Notifier) EventService {
	return &eventService{repo: repo, categories: categories, notifier: notifier}
}

func (s *eventService) CreateEvent(ctx context.Context, params CreateEventParams) (*models.Event, error) {
	if params.UserID == "" {
		return nil, ErrOwnerRequired
	}
	if err := s.checkCategory(ctx, params.Event.CategoryID); err != nil {
		return nil, err
	}

	event := params.Event
	event.ID = ""
	event.OrganizerID = params.UserID
	event.Category = nil

	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	notify(ctx, s.notifier, RouteEventCreated, ChangeNotice{
		ID:    event.ID,
		Paths: uniquePaths(params.Path, HomePath),
	})
	return &event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, params UpdateEventParams) (*models.Event, error) {
	if params.UserID == "" {
		return nil, ErrOwnerRequired
	}
	if err := s.checkCategory(ctx, params.Event.CategoryID); err != nil {
		return nil, err
	}

	var result *models.Event
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		// Lock the row so the ownership check and the write see the same organizer.
		existing, err := s.repo.FindByIDForUpdate(ctx, tx, params.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if existing.OrganizerID != params.UserID {
			return ErrForbidden
		}

		updated := params.Event
		updated.ID = existing.ID
		updated.OrganizerID = existing.OrganizerID
		updated.CreatedAt = existing.CreatedAt
		updated.Category = nil

		if err := s.repo.Update(ctx, tx, &updated); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.notifier, RouteEventUpdated, ChangeNotice{
		ID:    result.ID,
		Paths: uniquePaths(params.Path, EventPath(result.ID), ProfilePath, HomePath),
	})
	return result, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter repository.EventFilter) (repository.EventPage, error) {
	return s.repo.FindAll(ctx, filter.Normalize())
}

func (s *eventService) checkCategory(ctx context.Context, id string) error {
	if id == "" || s.categories == nil {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}
	return nil
}
