package view

import (
	"context"
	"sort"
	"testing"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dashboardAPI() *fakeAPI {
	return &fakeAPI{
		statsFunc: func(context.Context) (*model.Stats, error) {
			return &model.Stats{TotalEvents: 2, TotalRegistrations: 7, UpcomingEvents: 1}, nil
		},
		listFunc: func(context.Context, model.EventType) ([]model.Event, error) {
			return []model.Event{{ID: "1"}, {ID: "2"}}, nil
		},
		deleteFunc: func(context.Context, string) error { return nil },
	}
}

func TestDashboardLoad(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	fake := dashboardAPI()
	st := NewDashboard(fake, zap.NewNop()).Load(context.Background())

	assert.False(st.Failed)
	assert.Empty(st.Notices)
	require.NotNil(st.Stats)
	assert.Equal(7, st.Stats.TotalRegistrations)
	assert.Len(st.Events, 2)

	calls := fake.Calls()
	sort.Strings(calls)
	assert.Equal([]string{"list ", "stats"}, calls)
}

func TestDashboardLoadEitherFailure(t *testing.T) {
	for name, breakIt := range map[string]func(*fakeAPI){
		"stats":  func(f *fakeAPI) { f.statsFunc = nil },
		"events": func(f *fakeAPI) { f.listFunc = nil },
	} {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)

			fake := dashboardAPI()
			breakIt(fake)

			st := NewDashboard(fake, zap.NewNop()).Load(context.Background())

			assert.True(st.Failed)
			assert.Nil(st.Stats)
			assert.Nil(st.Events)
			require.Len(st.Notices, 1)
			assert.Equal(model.Failure("Failed to fetch dashboard data"), st.Notices[0])
		})
	}
}

func TestDashboardDelete(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	fake := dashboardAPI()
	d := NewDashboard(fake, zap.NewNop())

	assert.Nil(d.Delete(context.Background(), "1", false))
	assert.Empty(fake.Calls())

	flashes := d.Delete(context.Background(), "1", true)
	require.Len(flashes, 1)
	assert.Equal(model.Success("Event deleted successfully"), flashes[0])
	assert.Equal([]string{"delete 1"}, fake.Calls())

	fake.deleteFunc = nil
	flashes = d.Delete(context.Background(), "2", true)
	require.Len(flashes, 1)
	assert.Equal(model.Failure("Failed to delete event"), flashes[0])
}

func TestDashboardDeleteTarget(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	fake := dashboardAPI()
	d := NewDashboard(fake, zap.NewNop())

	event, flashes := d.DeleteTarget(context.Background(), "1")
	assert.Nil(event)
	require.Len(flashes, 1)
	assert.Equal(model.Failure("Failed to fetch event details"), flashes[0])

	fake.getFunc = func(_ context.Context, id string) (*model.Event, error) {
		return &model.Event{ID: id, Name: "Doomed"}, nil
	}
	event, flashes = d.DeleteTarget(context.Background(), "1")
	require.NotNil(event)
	assert.Equal("Doomed", event.Name)
	assert.Empty(flashes)
}
