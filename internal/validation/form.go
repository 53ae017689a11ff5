package validation

import "time"

// Field names as the client sees them. Errors are keyed by these.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldLocation      = "location"
	FieldImageURL      = "imageUrl"
	FieldStartDateTime = "startDateTime"
	FieldEndDateTime   = "endDateTime"
	FieldCategoryID    = "categoryId"
	FieldPrice         = "price"
	FieldIsFree        = "isFree"
	FieldURL           = "url"
)

// EventForm holds the editable fields of an event before validation.
type EventForm struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	ImageURL      string    `json:"imageUrl"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	CategoryID    string    `json:"categoryId"`
	Price         string    `json:"price"`
	IsFree        bool      `json:"isFree"`
	URL           string    `json:"url"`
}

// Equal reports whether two forms carry the same values. Times compare by instant.
func (f EventForm) Equal(o EventForm) bool {
	return f.Title == o.Title &&
		f.Description == o.Description &&
		f.Location == o.Location &&
		f.ImageURL == o.ImageURL &&
		f.StartDateTime.Equal(o.StartDateTime) &&
		f.EndDateTime.Equal(o.EndDateTime) &&
		f.CategoryID == o.CategoryID &&
		f.Price == o.Price &&
		f.IsFree == o.IsFree &&
		f.URL == o.URL
}

// ValidEvent is a form that passed a Schema. It can only be obtained from Schema.Validate.
type ValidEvent struct {
	form EventForm
}

func (v ValidEvent) Form() EventForm {
	return v.form
}

// WithImageURL returns a copy with the image replaced. The image URL carries no rule,
// so the copy stays valid.
func (v ValidEvent) WithImageURL(url string) ValidEvent {
	v.form.ImageURL = url
	return v
}
