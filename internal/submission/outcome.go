package submission

import "github.com/Eursukkul/event-service/internal/models"

type Mode int

const (
	Create Mode = iota
	Update
)

func (m Mode) String() string {
	if m == Update {
		return "update"
	}
	return "create"
}

type ImageStatus string

const (
	ImageUploaded ImageStatus = "uploaded"
	ImageSkipped  ImageStatus = "skipped"
	ImageFailed   ImageStatus = "failed"
)

// ImageResult records what happened to the pending image. A failed upload
// keeps the original URL and does not fail the submission.
type ImageResult struct {
	Status ImageStatus
	URL    string
	Reason string
	Err    error
}

type NavigationKind string

const (
	NavigateTo   NavigationKind = "to"
	NavigateBack NavigationKind = "back"
)

type Navigation struct {
	Kind  NavigationKind
	Path  string
	Reset bool
}

// Outcome of a submission that reached a navigation decision.
// Event is nil when the workflow navigated back without writing.
type Outcome struct {
	Event      *models.Event
	Image      ImageResult
	Navigation Navigation
}

// FormState gates the submit control. Submission is allowed only when the
// form is valid, has unsaved changes, and no submission is in flight.
type FormState struct {
	Submitting bool
	Valid      bool
	Dirty      bool
}

func (s FormState) CanSubmit() bool {
	return !s.Submitting && s.Valid && s.Dirty
}
