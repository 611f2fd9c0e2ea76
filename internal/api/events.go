package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
)

// ListEvents fetches the event collection. An empty eventType means no
// filter; otherwise the backend filters by the type query parameter.
func (c *Client) ListEvents(ctx context.Context, eventType model.EventType) ([]model.Event, error) {
	var query url.Values
	if eventType != "" {
		query = url.Values{"type": {string(eventType)}}
	}

	events := []model.Event{}
	if err := c.do(ctx, http.MethodGet, c.url(query, "events"), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodGet, c.url(nil, "events", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) CreateEvent(ctx context.Context, in model.EventInput) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodPost, c.url(nil, "events"), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in model.EventInput) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodPut, c.url(nil, "events", id), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.url(nil, "events", id), nil, nil)
}

// IsRegistered reports whether the session's user holds a seat at the event.
func (c *Client) IsRegistered(ctx context.Context, id string) (bool, error) {
	var registered bool
	if err := c.do(ctx, http.MethodGet, c.url(nil, "events", id, "check-registration"), nil, &registered); err != nil {
		return false, err
	}
	return registered, nil
}

func (c *Client) RegisterForEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, c.url(nil, "events", id, "register"), nil, nil)
}

func (c *Client) CancelRegistration(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.url(nil, "events", id, "register"), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	if err := c.do(ctx, http.MethodGet, c.url(nil, "admin", "stats"), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
