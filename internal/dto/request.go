package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/Eursukkul/event-service/internal/validation"
)

// Accepted date layouts. The second is what an HTML datetime-local input sends; it is read as UTC.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// EventRequest binds from JSON or multipart form fields. Dates stay strings
// here so a malformed value becomes a field error instead of a bind error.
type EventRequest struct {
	Title         string   `json:"title" form:"title"`
	Description   string   `json:"description" form:"description"`
	Location      string   `json:"location" form:"location"`
	ImageURL      string   `json:"imageUrl" form:"imageUrl"`
	StartDateTime string   `json:"startDateTime" form:"startDateTime"`
	EndDateTime   string   `json:"endDateTime" form:"endDateTime"`
	CategoryID    string   `json:"categoryId" form:"categoryId"`
	Price         string   `json:"price" form:"price"`
	IsFree        Checkbox `json:"isFree" form:"isFree"`
	URL           string   `json:"url" form:"url"`
}

func (r EventRequest) Form() (validation.EventForm, error) {
	var errs validation.Errors

	start, ok := parseDate(r.StartDateTime)
	if !ok {
		errs = append(errs, validation.FieldError{Field: validation.FieldStartDateTime, Message: "Invalid date"})
	}
	end, ok := parseDate(r.EndDateTime)
	if !ok {
		errs = append(errs, validation.FieldError{Field: validation.FieldEndDateTime, Message: "Invalid date"})
	}
	isFree, ok := r.IsFree.Bool()
	if !ok {
		errs = append(errs, validation.FieldError{Field: validation.FieldIsFree, Message: "Invalid value"})
	}
	if len(errs) > 0 {
		return validation.EventForm{}, errs
	}

	return validation.EventForm{
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		ImageURL:      r.ImageURL,
		StartDateTime: start,
		EndDateTime:   end,
		CategoryID:    r.CategoryID,
		Price:         r.Price,
		IsFree:        isFree,
		URL:           r.URL,
	}, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Checkbox is a boolean as sent by JSON clients or by an HTML checkbox
// ("on", or absent). Unknown values surface from Bool instead of failing the bind.
type Checkbox string

func (c *Checkbox) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Checkbox(s)
		return nil
	}
	*c = Checkbox(data)
	return nil
}

func (c Checkbox) Bool() (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(string(c))) {
	case "", "false", "off", "0":
		return false, true
	case "true", "on", "1":
		return true, true
	}
	return false, false
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
