package view

import (
	"context"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardAPI interface {
	EventLister
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	Stats(ctx context.Context) (*model.Stats, error)
	DeleteEvent(ctx context.Context, id string) error
}

type DashboardState struct {
	Stats   *model.Stats
	Events  []model.Event
	Failed  bool
	Notices []model.Flash
}

type Dashboard struct {
	api DashboardAPI
	log *zap.Logger
}

func NewDashboard(api DashboardAPI, log *zap.Logger) *Dashboard {
	return &Dashboard{api: api, log: log}
}

// Load fetches statistics and the event list concurrently. Both must succeed;
// a single failure fails the whole dashboard.
func (d *Dashboard) Load(ctx context.Context) DashboardState {
	var (
		stats  *model.Stats
		events []model.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = d.api.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = d.api.ListEvents(gctx, "")
		return err
	})

	if err := g.Wait(); err != nil {
		d.log.Warn("failed to fetch dashboard data", zap.Error(err))
		return DashboardState{Failed: true, Notices: []model.Flash{model.Failure(msgFetchDashboard)}}
	}

	return DashboardState{Stats: stats, Events: events}
}

// DeleteTarget loads the event an admin is about to confirm the deletion of.
func (d *Dashboard) DeleteTarget(ctx context.Context, id string) (*model.Event, []model.Flash) {
	event, err := d.api.GetEvent(ctx, id)
	if err != nil {
		d.log.Warn("fetch event for delete", zap.String("event_id", id), zap.Error(err))
		return nil, []model.Flash{model.Failure(msgFetchDetails)}
	}
	return event, nil
}

// Delete removes the event once the admin has confirmed. Without confirmation
// nothing is sent. Callers reload the dashboard afterwards.
func (d *Dashboard) Delete(ctx context.Context, id string, confirmed bool) []model.Flash {
	if !confirmed {
		return nil
	}

	if err := d.api.DeleteEvent(ctx, id); err != nil {
		d.log.Warn("failed to delete event", zap.String("event_id", id), zap.Error(err))
		return []model.Flash{model.Failure(msgDeleteFailed)}
	}

	d.log.Info("event deleted", zap.String("event_id", id))
	return []model.Flash{model.Success(msgDeleted)}
}
