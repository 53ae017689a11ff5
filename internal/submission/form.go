package submission

import (
	"time"

	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/validation"
)

// DefaultForm is the create-mode starting point: empty text, not free,
// starting now and ending an hour later.
func DefaultForm(now time.Time) validation.EventForm {
	return validation.EventForm{
		StartDateTime: now,
		EndDateTime:   now.Add(time.Hour),
	}
}

// FormFromEvent rehydrates a stored event for update mode. The category
// reference is flattened to its id.
func FormFromEvent(e models.Event) validation.EventForm {
	categoryID := e.CategoryID
	if categoryID == "" && e.Category != nil {
		categoryID = e.Category.ID
	}
	return validation.EventForm{
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		ImageURL:      e.ImageURL,
		StartDateTime: e.StartDateTime.UTC(),
		EndDateTime:   e.EndDateTime.UTC(),
		CategoryID:    categoryID,
		Price:         e.Price,
		IsFree:        e.IsFree,
		URL:           e.URL,
	}
}

func eventFromForm(f validation.EventForm) models.Event {
	return models.Event{
		Title:         f.Title,
		Description:   f.Description,
		Location:      f.Location,
		ImageURL:      f.ImageURL,
		StartDateTime: f.StartDateTime,
		EndDateTime:   f.EndDateTime,
		CategoryID:    f.CategoryID,
		Price:         f.Price,
		IsFree:        f.IsFree,
		URL:           f.URL,
	}
}
