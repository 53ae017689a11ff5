package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Eursukkul/event-service/internal/clock"
	"github.com/Eursukkul/event-service/internal/models"
	"github.com/Eursukkul/event-service/internal/service"
	"github.com/Eursukkul/event-service/internal/upload"
	"github.com/Eursukkul/event-service/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

// --- Mock EventPersister ---

type mockPersister struct {
	createFn func(ctx context.Context, params service.CreateEventParams) (*models.Event, error)
	updateFn func(ctx context.Context, params service.UpdateEventParams) (*models.Event, error)
	creates  []service.CreateEventParams
	updates  []service.UpdateEventParams
}

func (m *mockPersister) CreateEvent(ctx context.Context, params service.CreateEventParams) (*models.Event, error) {
	m.creates = append(m.creates, params)
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	event := params.Event
	event.ID = "evt-new"
	event.OrganizerID = params.UserID
	return &event, nil
}
func (m *mockPersister) UpdateEvent(ctx context.Context, params service.UpdateEventParams) (*models.Event, error) {
	m.updates = append(m.updates, params)
	if m.updateFn != nil {
		return m.updateFn(ctx, params)
	}
	event := params.Event
	event.ID = params.EventID
	event.OrganizerID = params.UserID
	return &event, nil
}

// --- Mock Uploader ---

type mockUploader struct {
	uploadFn func(ctx context.Context, files []upload.File) ([]upload.Uploaded, error)
	calls    int
}

func (m *mockUploader) Upload(ctx context.Context, files []upload.File) ([]upload.Uploaded, error) {
	m.calls++
	return m.uploadFn(ctx, files)
}

func validForm() validation.EventForm {
	return validation.EventForm{
		Title:         "Golang Workshop Bangkok",
		Description:   "Hands-on concurrency patterns",
		Location:      "True Digital Park",
		ImageURL:      "https://cdn.example.com/old.png",
		StartDateTime: now.Add(24 * time.Hour),
		EndDateTime:   now.Add(27 * time.Hour),
		CategoryID:    "cat-1",
		Price:         "2500",
		URL:           "https://example.com/workshop",
	}
}

func pendingFiles() []upload.File {
	return []upload.File{{Name: "cover.png", Data: []byte("png")}}
}

func newWorkflow(uploader upload.Uploader, persister EventPersister) *Workflow {
	return NewWorkflow(clock.NewFixed(now), validation.EventSchema(), uploader, persister)
}

func TestSubmit_CreateWithoutFiles(t *testing.T) {
	persister := &mockPersister{}
	uploader := &mockUploader{}

	outcome, err := newWorkflow(uploader, persister).Submit(context.Background(), Input{
		Mode:   Create,
		Form:   validForm(),
		UserID: "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, uploader.calls)
	assert.Equal(t, ImageSkipped, outcome.Image.Status)
	assert.Equal(t, "no files", outcome.Image.Reason)
	require.Len(t, persister.creates, 1)
	assert.Equal(t, service.ProfilePath, persister.creates[0].Path)
	assert.Equal(t, "user-1", persister.creates[0].UserID)
	assert.Equal(t, "https://cdn.example.com/old.png", persister.creates[0].Event.ImageURL)
	assert.Equal(t, Navigation{Kind: NavigateTo, Path: "/events/evt-new", Reset: true}, outcome.Navigation)
	assert.Equal(t, "evt-new", outcome.Event.ID)
}

func TestSubmit_UploadReplacesImage(t *testing.T) {
	persister := &mockPersister{}
	uploader := &mockUploader{
		uploadFn: func(ctx context.Context, files []upload.File) ([]upload.Uploaded, error) {
			return []upload.Uploaded{{ID: "a1", URL: "https://events.example.com/api/v1/assets/a1"}}, nil
		},
	}

	outcome, err := newWorkflow(uploader, persister).Submit(context.Background(), Input{
		Mode:   Create,
		Form:   validForm(),
		Files:  pendingFiles(),
		UserID: "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, ImageUploaded, outcome.Image.Status)
	assert.Equal(t, "https://events.example.com/api/v1/assets/a1", persister.creates[0].Event.ImageURL)
}

func TestSubmit_UploadFailureKeepsOriginalImage(t *testing.T) {
	for _, mode := range []Mode{Create, Update} {
		t.Run(mode.String(), func(t *testing.T) {
			persister := &mockPersister{}
			uploader := &mockUploader{
				uploadFn: func(ctx context.Context, files []upload.File) ([]upload.Uploaded, error) {
					return nil, errors.New("storage unavailable")
				},
			}

			outcome, err := newWorkflow(uploader, persister).Submit(context.Background(), Input{
				Mode:    mode,
				Form:    validForm(),
				Files:   pendingFiles(),
				UserID:  "user-1",
				EventID: "evt-1",
			})

			require.NoError(t, err)
			assert.Equal(t, ImageFailed, outcome.Image.Status)
			assert.EqualError(t, outcome.Image.Err, "storage unavailable")
			assert.Equal(t, "https://cdn.example.com/old.png", outcome.Event.ImageURL)
			assert.Equal(t, 1, len(persister.creates)+len(persister.updates))
		})
	}
}

func TestSubmit_EmptyUploadResultCountsAsFailure(t *testing.T) {
	uploader := &mockUploader{
		uploadFn: func(ctx context.Context, files []upload.File) ([]upload.Uploaded, error) {
			return nil, nil
		},
	}

	outcome, err := newWorkflow(uploader, &mockPersister{}).Submit(context.Background(), Input{
		Mode:   Create,
		Form:   validForm(),
		Files:  pendingFiles(),
		UserID: "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, ImageFailed, outcome.Image.Status)
	assert.Equal(t, "https://cdn.example.com/old.png", outcome.Image.URL)
}

func TestSubmit_ValidationFailureWritesNothing(t *testing.T) {
	persister := &mockPersister{}
	uploader := &mockUploader{}

	form := validForm()
	form.Title = "Go"
	form.EndDateTime = form.StartDateTime

	_, err := newWorkflow(uploader, persister).Submit(context.Background(), Input{
		Mode:   Create,
		Form:   form,
		Files:  pendingFiles(),
		UserID: "user-1",
	})

	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has(validation.FieldTitle))
	assert.True(t, errs.Has(validation.FieldEndDateTime))
	assert.Equal(t, 0, uploader.calls)
	assert.Empty(t, persister.creates)
}

func TestSubmit_StartDateCheckedAtSubmitTime(t *testing.T) {
	form := validForm()
	form.StartDateTime = now.Add(time.Minute)
	form.EndDateTime = now.Add(time.Hour)

	// Valid when the form was rendered, stale by the time it is submitted.
	later := NewWorkflow(clock.NewFixed(now.Add(2*time.Minute)), validation.EventSchema(), nil, &mockPersister{})
	_, err := later.Submit(context.Background(), Input{Mode: Create, Form: form, UserID: "user-1"})

	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Start date can only be in the future"}, errs.ByField()[validation.FieldStartDateTime])
}

func TestSubmit_UpdateWithoutEventIDNavigatesBack(t *testing.T) {
	persister := &mockPersister{}
	uploader := &mockUploader{}

	outcome, err := newWorkflow(uploader, persister).Submit(context.Background(), Input{
		Mode:   Update,
		Form:   validForm(),
		Files:  pendingFiles(),
		UserID: "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, NavigateBack, outcome.Navigation.Kind)
	assert.Nil(t, outcome.Event)
	assert.Equal(t, 0, uploader.calls)
	assert.Empty(t, persister.updates)
}

func TestSubmit_Update(t *testing.T) {
	persister := &mockPersister{}
	baseline := validForm()
	form := validForm()
	form.Title = "Golang Workshop Chiang Mai"

	outcome, err := newWorkflow(nil, persister).Submit(context.Background(), Input{
		Mode:     Update,
		Form:     form,
		Baseline: &baseline,
		UserID:   "user-1",
		EventID:  "evt-1",
	})

	require.NoError(t, err)
	require.Len(t, persister.updates, 1)
	assert.Equal(t, "evt-1", persister.updates[0].EventID)
	assert.Equal(t, "/events/evt-1", persister.updates[0].Path)
	assert.Equal(t, "Golang Workshop Chiang Mai", persister.updates[0].Event.Title)
	assert.Equal(t, "/events/evt-1", outcome.Navigation.Path)
}

func TestSubmit_PristineRejected(t *testing.T) {
	persister := &mockPersister{}
	baseline := validForm()

	_, err := newWorkflow(nil, persister).Submit(context.Background(), Input{
		Mode:     Update,
		Form:     validForm(),
		Baseline: &baseline,
		UserID:   "user-1",
		EventID:  "evt-1",
	})

	assert.ErrorIs(t, err, ErrPristine)
	assert.Empty(t, persister.updates)
}

func TestSubmit_PendingFilesMakeFormDirty(t *testing.T) {
	persister := &mockPersister{}
	baseline := validForm()
	uploader := &mockUploader{
		uploadFn: func(ctx context.Context, files []upload.File) ([]upload.Uploaded, error) {
			return []upload.Uploaded{{URL: "https://events.example.com/api/v1/assets/a2"}}, nil
		},
	}

	_, err := newWorkflow(uploader, persister).Submit(context.Background(), Input{
		Mode:     Update,
		Form:     validForm(),
		Baseline: &baseline,
		Files:    pendingFiles(),
		UserID:   "user-1",
		EventID:  "evt-1",
	})

	require.NoError(t, err)
	assert.Len(t, persister.updates, 1)
}

func TestSubmit_PersistenceErrorStaysOnForm(t *testing.T) {
	persister := &mockPersister{
		updateFn: func(ctx context.Context, params service.UpdateEventParams) (*models.Event, error) {
			return nil, service.ErrForbidden
		},
	}

	outcome, err := newWorkflow(nil, persister).Submit(context.Background(), Input{
		Mode:    Update,
		Form:    validForm(),
		UserID:  "user-2",
		EventID: "evt-1",
	})

	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.Equal(t, Outcome{}, outcome)
}

func TestFormState_CanSubmit(t *testing.T) {
	tests := []struct {
		name  string
		state FormState
		want  bool
	}{
		{"ready", FormState{Valid: true, Dirty: true}, true},
		{"in flight", FormState{Submitting: true, Valid: true, Dirty: true}, false},
		{"invalid", FormState{Valid: false, Dirty: true}, false},
		{"pristine", FormState{Valid: true, Dirty: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.CanSubmit())
		})
	}
}
