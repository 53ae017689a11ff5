package dto

import (
	"time"

	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/submission"
	"github.com/Eursukkul/event-service/internal/validation"
)

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EventResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Location      string            `json:"location"`
	ImageURL      string            `json:"imageUrl"`
	StartDateTime time.Time         `json:"startDateTime"`
	EndDateTime   time.Time         `json:"endDateTime"`
	CategoryID    string            `json:"categoryId"`
	Category      *CategoryResponse `json:"category,omitempty"`
	Price         string            `json:"price"`
	IsFree        bool              `json:"isFree"`
	URL           string            `json:"url"`
	OrganizerID   string            `json:"organizerId"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type EventListResponse struct {
	Data       []EventResponse `json:"data"`
	TotalPages int             `json:"totalPages"`
}

type ImageResponse struct {
	Status string `json:"status"`
	URL    string `json:"url"`
	Reason string `json:"reason,omitempty"`
}

type SubmissionResponse struct {
	Event    EventResponse `json:"event"`
	Image    ImageResponse `json:"image"`
	Redirect string        `json:"redirect"`
}

type OrderResponse struct {
	ID          string    `json:"id"`
	StripeID    string    `json:"stripeId"`
	TotalAmount string    `json:"totalAmount"`
	EventID     string    `json:"eventId"`
	BuyerID     string    `json:"buyerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type WebhookResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

type WebhookErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func ToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func ToEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		ImageURL:      e.ImageURL,
		StartDateTime: e.StartDateTime,
		EndDateTime:   e.EndDateTime,
		CategoryID:    e.CategoryID,
		Price:         e.Price,
		IsFree:        e.IsFree,
		URL:           e.URL,
		OrganizerID:   e.OrganizerID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.Category != nil {
		category := ToCategoryResponse(e.Category)
		resp.Category = &category
	}
	return resp
}

func ToEventListResponse(events []models.Event, totalPages int) EventListResponse {
	data := make([]EventResponse, len(events))
	for i := range events {
		data[i] = ToEventResponse(&events[i])
	}
	return EventListResponse{Data: data, TotalPages: totalPages}
}

func ToSubmissionResponse(o submission.Outcome) SubmissionResponse {
	return SubmissionResponse{
		Event: ToEventResponse(o.Event),
		Image: ImageResponse{
			Status: string(o.Image.Status),
			URL:    o.Image.URL,
			Reason: o.Image.Reason,
		},
		Redirect: o.Navigation.Path,
	}
}

func ToOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		StripeID:    o.StripeID,
		TotalAmount: o.TotalAmount,
		EventID:     o.EventID,
		BuyerID:     o.BuyerID,
		CreatedAt:   o.CreatedAt,
	}
}

func ToOrderResponses(orders []models.Order) []OrderResponse {
	resp := make([]OrderResponse, len(orders))
	for i := range orders {
		resp[i] = ToOrderResponse(&orders[i])
	}
	return resp
}

func ToValidationErrorResponse(errs validation.Errors) ValidationErrorResponse {
	return ValidationErrorResponse{Message: "validation failed", Errors: errs.ByField()}
}
