package view

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DateInputLayout is the value format of a datetime-local input.
const DateInputLayout = "2006-01-02T15:04"

type FormAPI interface {
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	CreateEvent(ctx context.Context, in model.EventInput) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, in model.EventInput) (*model.Event, error)
}

// FormValues are the raw field values of the event form. The checks mirror
// the form's required attributes and nothing more.
type FormValues struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Type        string `form:"type" validate:"required,oneof=workshop seminar club"`
	Date        string `form:"date" validate:"required"`
	Location    string `form:"location" validate:"required"`
	Capacity    string `form:"capacity" validate:"required"`
}

func DefaultFormValues() FormValues {
	return FormValues{Type: string(model.Workshop), Capacity: "0"}
}

type FormState struct {
	// ID is set in edit mode.
	ID       string
	Values   FormValues
	Notices  []model.Flash
	Redirect string
}

func (s FormState) Edit() bool {
	return s.ID != ""
}

type EventForm struct {
	api      FormAPI
	loc      *time.Location
	log      *zap.Logger
	validate *validator.Validate
}

func NewEventForm(api FormAPI, loc *time.Location, log *zap.Logger) *EventForm {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	return &EventForm{api: api, loc: loc, log: log, validate: v}
}

// Open prepares the form. In edit mode the event is loaded first; if that
// fails the defaults stay in place and the form remains usable.
func (f *EventForm) Open(ctx context.Context, id string) FormState {
	st := FormState{ID: id, Values: DefaultFormValues()}
	if id == "" {
		return st
	}

	event, err := f.api.GetEvent(ctx, id)
	if err != nil {
		f.log.Warn("fetch event for edit", zap.String("event_id", id), zap.Error(err))
		st.Notices = []model.Flash{model.Failure(msgFetchDetails)}
		return st
	}

	st.Values = f.valuesOf(event)
	return st
}

// Submit creates the event, or updates it in edit mode, and points back to
// the dashboard on success.
func (f *EventForm) Submit(ctx context.Context, id string, values FormValues) FormState {
	st := FormState{ID: id, Values: values}

	in, err := f.input(values)
	if err != nil {
		st.Notices = []model.Flash{model.Failure(err.Error())}
		return st
	}

	if id == "" {
		_, err = f.api.CreateEvent(ctx, in)
	} else {
		_, err = f.api.UpdateEvent(ctx, id, in)
	}
	if err != nil {
		f.log.Warn("failed to save event", zap.String("event_id", id), zap.Error(err))
		st.Notices = []model.Flash{model.Failure(msgSaveFailed)}
		return st
	}

	msg := msgCreated
	if id != "" {
		msg = msgUpdated
	}
	st.Notices = []model.Flash{model.Success(msg)}
	st.Redirect = "/admin/dashboard"
	return st
}

func (f *EventForm) valuesOf(e *model.Event) FormValues {
	v := FormValues{
		Name:        e.Name,
		Description: e.Description,
		Type:        string(e.Type),
		Location:    e.Location,
		Capacity:    strconv.Itoa(e.Capacity),
	}
	if !e.Date.IsZero() {
		v.Date = e.Date.In(f.loc).Format(DateInputLayout)
	}
	return v
}

func (f *EventForm) input(v FormValues) (model.EventInput, error) {
	if err := f.check(v); err != nil {
		return model.EventInput{}, err
	}

	date, err := time.ParseInLocation(DateInputLayout, v.Date, f.loc)
	if err != nil {
		return model.EventInput{}, errors.New("date must be a date and time")
	}

	capacity, err := strconv.Atoi(strings.TrimSpace(v.Capacity))
	if err != nil {
		return model.EventInput{}, errors.New("capacity must be a whole number")
	}

	return model.EventInput{
		Name:        v.Name,
		Description: v.Description,
		Type:        model.EventType(v.Type),
		Date:        date,
		Location:    v.Location,
		Capacity:    capacity,
	}, nil
}

func (f *EventForm) check(v FormValues) error {
	err := f.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Errorf("%s is invalid", fe.Field())
}
