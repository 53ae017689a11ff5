package submission

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Eursukkul/event-service/internal/clock"
	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/Eursukkul/event-service/internal/upload"
	"github.com/Eursukkul/event-service/internal/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrPristine rejects a submission that changes nothing.
var ErrPristine = errors.New("form has no changes")

const tracerName = "github.com/Eursukkul/event-service/internal/submission"

// EventPersister is the subset of service.EventService the workflow writes through.
type EventPersister interface {
	CreateEvent(ctx context.Context, params service.CreateEventParams) (*models.Event, error)
	UpdateEvent(ctx context.Context, params service.UpdateEventParams) (*models.Event, error)
}

type Input struct {
	Mode Mode
	Form validation.EventForm
	// Baseline is the rehydrated stored event in update mode. Nil means every
	// submission counts as a change.
	Baseline *validation.EventForm
	Files    []upload.File
	UserID   string
	EventID  string
}

func (in Input) state(valid bool) FormState {
	dirty := in.Baseline == nil || len(in.Files) > 0 || !in.Form.Equal(*in.Baseline)
	return FormState{Valid: valid, Dirty: dirty}
}

type Workflow struct {
	clock    clock.Clock
	schema   *validation.Schema
	uploader upload.Uploader
	events   EventPersister
	tracer   trace.Tracer
}

func NewWorkflow(clk clock.Clock, schema *validation.Schema, uploader upload.Uploader, events EventPersister) *Workflow {
	return &Workflow{
		clock:    clk,
		schema:   schema,
		uploader: uploader,
		events:   events,
		tracer:   otel.Tracer(tracerName),
	}
}

// Submit validates the form, uploads any pending image, then creates or
// updates the event. Validation failures come back as validation.Errors and
// nothing is uploaded or written.
func (w *Workflow) Submit(ctx context.Context, in Input) (Outcome, error) {
	ctx, span := w.tracer.Start(ctx, "submission.Submit", trace.WithAttributes(
		attribute.String("submission.mode", in.Mode.String()),
		attribute.String("event.id", in.EventID),
		attribute.Int("submission.files", len(in.Files)),
	))
	defer span.End()

	outcome, err := w.submit(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Outcome{}, err
	}
	span.SetAttributes(
		attribute.String("submission.image", string(outcome.Image.Status)),
		attribute.String("submission.navigation", string(outcome.Navigation.Kind)),
	)
	return outcome, nil
}

func (w *Workflow) submit(ctx context.Context, in Input) (Outcome, error) {
	valid, err := w.schema.Validate(in.Form, w.clock.Now())
	if err != nil {
		return Outcome{}, err
	}

	if !in.state(true).CanSubmit() {
		return Outcome{}, ErrPristine
	}

	if in.Mode == Update && in.EventID == "" {
		log.Println("[Submission] update without event id, navigating back")
		return Outcome{Navigation: Navigation{Kind: NavigateBack}}, nil
	}

	image := w.uploadImage(ctx, in.Files, in.Form.ImageURL)
	event := eventFromForm(valid.WithImageURL(image.URL).Form())

	var saved *models.Event
	switch in.Mode {
	case Update:
		saved, err = w.events.UpdateEvent(ctx, service.UpdateEventParams{
			UserID:  in.UserID,
			EventID: in.EventID,
			Event:   event,
			Path:    service.EventPath(in.EventID),
		})
	default:
		saved, err = w.events.CreateEvent(ctx, service.CreateEventParams{
			Event:  event,
			UserID: in.UserID,
			Path:   service.ProfilePath,
		})
	}
	if err != nil {
		log.Printf("[Submission] %s event failed: %v", in.Mode, err)
		return Outcome{}, fmt.Errorf("%s event: %w", in.Mode, err)
	}

	return Outcome{
		Event: saved,
		Image: image,
		Navigation: Navigation{
			Kind:  NavigateTo,
			Path:  service.EventPath(saved.ID),
			Reset: true,
		},
	}, nil
}

func (w *Workflow) uploadImage(ctx context.Context, files []upload.File, current string) ImageResult {
	if len(files) == 0 {
		return ImageResult{Status: ImageSkipped, URL: current, Reason: "no files"}
	}
	if w.uploader == nil {
		return ImageResult{Status: ImageFailed, URL: current, Reason: "uploads not configured"}
	}

	uploaded, err := w.uploader.Upload(ctx, files)
	if err != nil {
		log.Printf("[Submission] image upload failed, keeping %q: %v", current, err)
		return ImageResult{Status: ImageFailed, URL: current, Reason: err.Error(), Err: err}
	}
	if len(uploaded) == 0 || uploaded[0].URL == "" {
		log.Printf("[Submission] image upload returned no url, keeping %q", current)
		return ImageResult{Status: ImageFailed, URL: current, Reason: "upload returned no url"}
	}
	return ImageResult{Status: ImageUploaded, URL: uploaded[0].URL}
}
