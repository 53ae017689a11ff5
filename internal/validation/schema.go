package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Rule is one predicate over a form, reported against Field when it fails.
// Cross-field rules pick the field the client should highlight.
type Rule struct {
	Field   string
	Message string
	Check   func(form EventForm, now time.Time) bool
}

type Schema struct {
	rules []Rule
}

func NewSchema(rules ...Rule) *Schema {
	return &Schema{rules: rules}
}

// Tag builds a rule from a validator tag applied to a single field value.
func Tag(v *validator.Validate, field, tag, message string, value func(EventForm) any) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(form EventForm, _ time.Time) bool {
			return v.Var(value(form), tag) == nil
		},
	}
}

// EventSchema returns the rules every submitted event must pass.
func EventSchema() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())

	title := func(f EventForm) any { return f.Title }
	description := func(f EventForm) any { return f.Description }
	location := func(f EventForm) any { return f.Location }
	url := func(f EventForm) any { return f.URL }

	return NewSchema(
		Tag(v, FieldTitle, "min=3", "Title must be at least 3 characters", title),
		Tag(v, FieldDescription, "min=3", "Description must be at least 3 characters", description),
		Tag(v, FieldDescription, "max=400", "Description must be less than 400 characters", description),
		Tag(v, FieldLocation, "min=3", "Location must be at least 3 characters", location),
		Tag(v, FieldLocation, "max=200", "Location must be less than 200 characters", location),
		Rule{
			Field:   FieldStartDateTime,
			Message: "Start date can only be in the future",
			Check: func(f EventForm, now time.Time) bool {
				return f.StartDateTime.After(now)
			},
		},
		Rule{
			Field:   FieldEndDateTime,
			Message: "End date must be after start date",
			Check: func(f EventForm, _ time.Time) bool {
				return f.EndDateTime.After(f.StartDateTime)
			},
		},
		Tag(v, FieldURL, "url", "Invalid url", url),
	)
}

// Validate runs every rule against form. now is the instant of this submission attempt;
// a start date that was in the future when the form loaded can still fail here.
func (s *Schema) Validate(form EventForm, now time.Time) (ValidEvent, error) {
	var errs Errors
	for _, r := range s.rules {
		if !r.Check(form, now) {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	if len(errs) > 0 {
		return ValidEvent{}, errs
	}
	return ValidEvent{form: form}, nil
}
