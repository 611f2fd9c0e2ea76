package view

import (
	"context"

	"github.com/afianhyira/Campus-Event-Frontend/internal/api"
	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"go.uber.org/zap"
)

type DetailAPI interface {
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	IsRegistered(ctx context.Context, id string) (bool, error)
	RegisterForEvent(ctx context.Context, id string) error
	CancelRegistration(ctx context.Context, id string) error
}

type DetailState struct {
	Event         *model.Event
	Registered    bool
	Authenticated bool
	Notices       []model.Flash
	// Redirect is set when the event could not be shown at all.
	Redirect string
}

// CanRegister is false exactly when the event reports no seats left. The
// backend still has the final word on capacity.
func (s DetailState) CanRegister() bool {
	return s.Event != nil && s.Event.AvailableSeats != 0
}

type EventDetail struct {
	api DetailAPI
	log *zap.Logger
}

func NewEventDetail(api DetailAPI, log *zap.Logger) *EventDetail {
	return &EventDetail{api: api, log: log}
}

// Load fetches the event and, for a signed-in user, whether they hold a seat.
func (d *EventDetail) Load(ctx context.Context, id string, user *model.User) DetailState {
	st := DetailState{Authenticated: user != nil}

	event, err := d.api.GetEvent(ctx, id)
	if err != nil {
		return d.unavailable(st, id, err)
	}
	st.Event = event

	if user != nil {
		registered, err := d.api.IsRegistered(ctx, id)
		if err != nil {
			return d.unavailable(st, id, err)
		}
		st.Registered = registered
	}
	return st
}

func (d *EventDetail) unavailable(st DetailState, id string, err error) DetailState {
	d.log.Warn("fetch event details", zap.String("event_id", id), zap.Error(err))
	st.Event = nil
	st.Notices = append(st.Notices, model.Failure(msgFetchDetails))
	st.Redirect = "/events"
	return st
}

func (d *EventDetail) Register(ctx context.Context, id string, user *model.User) DetailState {
	if err := d.api.RegisterForEvent(ctx, id); err != nil {
		d.log.Info("registration rejected", zap.String("event_id", id), zap.Error(err))
		return d.reload(ctx, id, user, model.Failure(api.Message(err, msgRegisterFailed)), nil)
	}

	registered := true
	return d.reload(ctx, id, user, model.Success(msgRegistered), &registered)
}

func (d *EventDetail) Cancel(ctx context.Context, id string, user *model.User) DetailState {
	if err := d.api.CancelRegistration(ctx, id); err != nil {
		d.log.Info("cancellation rejected", zap.String("event_id", id), zap.Error(err))
		return d.reload(ctx, id, user, model.Failure(api.Message(err, msgCancelFailed)), nil)
	}

	registered := false
	return d.reload(ctx, id, user, model.Success(msgCancelled), &registered)
}

// reload re-fetches the event so seat counts come from the backend, puts
// notice first and, when given, pins the registered flag to the outcome.
func (d *EventDetail) reload(ctx context.Context, id string, user *model.User, notice model.Flash, registered *bool) DetailState {
	st := d.Load(ctx, id, user)
	st.Notices = append([]model.Flash{notice}, st.Notices...)
	if registered != nil && st.Event != nil {
		st.Registered = *registered
	}
	return st
}
