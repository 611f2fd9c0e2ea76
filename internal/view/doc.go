// Package view holds one controller per screen of the portal.
//
// A controller issues the backend calls a screen needs and returns a plain
// state value: the data to render, failure flags, the notifications to show
// and, where a screen navigates away, the redirect target. Controllers know
// nothing about HTTP, so handlers stay thin and screens are testable against
// fakes of the small interfaces declared here.
//
// Mutations are never applied optimistically. After a successful change the
// affected data is fetched again and the fresh copy is what gets rendered.
package view

import (
	"context"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
)

const (
	msgFetchEvents    = "Failed to fetch events"
	msgFetchDetails   = "Failed to fetch event details"
	msgRegistered     = "Successfully registered for the event!"
	msgRegisterFailed = "Failed to register for event"
	msgCancelled      = "Registration cancelled successfully"
	msgCancelFailed   = "Failed to cancel registration"
	msgFetchDashboard = "Failed to fetch dashboard data"
	msgDeleted        = "Event deleted successfully"
	msgDeleteFailed   = "Failed to delete event"
	msgCreated        = "Event created successfully!"
	msgUpdated        = "Event updated successfully!"
	msgSaveFailed     = "Failed to save event"
)

// EventLister fetches the event collection; an empty type means unfiltered.
type EventLister interface {
	ListEvents(ctx context.Context, eventType model.EventType) ([]model.Event, error)
}
