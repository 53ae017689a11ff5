package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/event-service/internal/cache"
	"github.com/Eursukkul/event-service/internal/clock"
	"github.com/Eursukkul/event-service/internal/dto"
	"github.com/Eursukkul/event-service/internal/middleware"
	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/repository"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/Eursukkul/event-service/internal/submission"
	"github.com/Eursukkul/event-service/internal/upload"
	"github.com/Eursukkul/event-service/internal/validation"
	"github.com/labstack/echo/v4"
)

// Submitter runs the event submission workflow.
type Submitter interface {
	Submit(ctx context.Context, in submission.Input) (submission.Outcome, error)
}

type EventHandler struct {
	events   service.EventService
	workflow Submitter
	views    cache.ViewCache
	clock    clock.Clock
}

func NewEventHandler(events service.EventService, workflow Submitter, views cache.ViewCache, clk clock.Clock) *EventHandler {
	if views == nil {
		views = cache.Noop{}
	}
	return &EventHandler{events: events, workflow: workflow, views: views, clock: clk}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("", h.ListEvents)
	g.GET("/defaults", h.GetDefaults)
	g.GET("/:id", h.GetEvent)
	g.GET("/:id/form", h.GetEventForm, auth)
	g.POST("", h.CreateEvent, auth)
	g.PUT("", h.UpdateEvent, auth)
	g.PUT("/:id", h.UpdateEvent, auth)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	form, files, err := bindEventForm(c)
	if err != nil {
		return err
	}

	outcome, err := h.workflow.Submit(c.Request().Context(), submission.Input{
		Mode:   submission.Create,
		Form:   form,
		Files:  files,
		UserID: userID,
	})
	if err != nil {
		return submissionError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToSubmissionResponse(outcome))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	form, files, err := bindEventForm(c)
	if err != nil {
		return err
	}

	in := submission.Input{
		Mode:    submission.Update,
		Form:    form,
		Files:   files,
		UserID:  userID,
		EventID: c.Param("id"),
	}
	if in.EventID != "" {
		existing, err := h.ownedEvent(c.Request().Context(), in.EventID, userID)
		if err != nil {
			return err
		}
		baseline := submission.FormFromEvent(*existing)
		in.Baseline = &baseline
	}

	outcome, err := h.workflow.Submit(c.Request().Context(), in)
	if err != nil {
		return submissionError(err)
	}
	if outcome.Navigation.Kind == submission.NavigateBack {
		return c.Redirect(http.StatusSeeOther, backTarget(c))
	}

	return c.JSON(http.StatusOK, dto.ToSubmissionResponse(outcome))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id := c.Param("id")
	return cachedJSON(c, h.views, service.EventPath(id), "", func() (any, error) {
		event, err := h.events.GetEvent(c.Request().Context(), id)
		if err != nil {
			return nil, eventError(err)
		}
		return dto.ToEventResponse(event), nil
	})
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	filter := repository.EventFilter{
		Query:       c.QueryParam("query"),
		CategoryID:  c.QueryParam("category"),
		OrganizerID: c.QueryParam("organizer"),
		Page:        queryInt(c, "page"),
		Limit:       queryInt(c, "limit"),
	}

	path := service.HomePath
	if filter.OrganizerID != "" {
		path = service.ProfilePath
	}

	return cachedJSON(c, h.views, path, c.QueryString(), func() (any, error) {
		page, err := h.events.ListEvents(c.Request().Context(), filter)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return dto.ToEventListResponse(page.Events, page.TotalPages), nil
	})
}

// GetDefaults returns the starting values of a new event form.
func (h *EventHandler) GetDefaults(c echo.Context) error {
	return c.JSON(http.StatusOK, submission.DefaultForm(h.clock.Now()))
}

// GetEventForm returns the stored event as form values for editing.
func (h *EventHandler) GetEventForm(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	event, err := h.ownedEvent(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, submission.FormFromEvent(*event))
}

func (h *EventHandler) ownedEvent(ctx context.Context, id, userID string) (*models.Event, error) {
	event, err := h.events.GetEvent(ctx, id)
	if err != nil {
		return nil, eventError(err)
	}
	if event.OrganizerID != userID {
		return nil, echo.NewHTTPError(http.StatusForbidden, service.ErrForbidden.Error())
	}
	return event, nil
}

func bindEventForm(c echo.Context) (validation.EventForm, []upload.File, error) {
	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return validation.EventForm{}, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	form, err := req.Form()
	if err != nil {
		return validation.EventForm{}, nil, submissionError(err)
	}
	files, err := readFiles(c)
	if err != nil {
		return validation.EventForm{}, nil, err
	}
	return form, files, nil
}

func submissionError(err error) error {
	if errs, ok := validation.AsErrors(err); ok {
		return echo.NewHTTPError(http.StatusBadRequest, dto.ToValidationErrorResponse(errs))
	}
	switch {
	case errors.Is(err, submission.ErrPristine):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCategoryNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, dto.ToValidationErrorResponse(validation.Errors{
			{Field: validation.FieldCategoryID, Message: "Category not found"},
		}))
	case errors.Is(err, service.ErrOwnerRequired):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return eventError(err)
}

func eventError(err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, service.ErrForbidden.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func backTarget(c echo.Context) string {
	if ref := c.Request().Referer(); ref != "" {
		return ref
	}
	return service.HomePath
}

// queryInt returns 0 for a missing or malformed value; the filter applies defaults.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
