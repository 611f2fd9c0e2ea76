package view

import (
	"context"
	"sync"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"go.uber.org/zap"
)

// Filter selects the event type shown by the list; FilterAll disables it.
type Filter string

const FilterAll Filter = "all"

var Filters = []Filter{FilterAll, Filter(model.Workshop), Filter(model.Seminar), Filter(model.Club)}

// ParseFilter maps anything that is not an event type to FilterAll.
func ParseFilter(s string) Filter {
	if model.EventType(s).Valid() {
		return Filter(s)
	}
	return FilterAll
}

func (f Filter) EventType() model.EventType {
	if f == FilterAll {
		return ""
	}
	return model.EventType(f)
}

func (f Filter) Label() string {
	switch model.EventType(f) {
	case model.Workshop:
		return "Workshops"
	case model.Seminar:
		return "Seminars"
	case model.Club:
		return "Club Activities"
	}
	return "All Events"
}

type EventListState struct {
	Filter  Filter
	Events  []model.Event
	Loading bool
	Notices []model.Flash
}

// EventList is the filterable event list. Loads may overlap; only the most
// recently started one is applied.
type EventList struct {
	api EventLister
	log *zap.Logger

	mu    sync.Mutex
	seq   uint64
	state EventListState
}

func NewEventList(api EventLister, log *zap.Logger) *EventList {
	return &EventList{
		api:   api,
		log:   log,
		state: EventListState{Filter: FilterAll, Loading: true},
	}
}

func (l *EventList) State() EventListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load fetches the list for filter and replaces the whole list with the
// result. A response that is overtaken by a later Load is dropped.
func (l *EventList) Load(ctx context.Context, filter Filter) EventListState {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.state.Filter = filter
	l.state.Loading = true
	l.mu.Unlock()

	events, err := l.api.ListEvents(ctx, filter.EventType())

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		l.log.Debug("dropping stale event list", zap.String("filter", string(filter)), zap.Uint64("seq", seq))
		return l.state
	}

	l.state.Loading = false
	l.state.Notices = nil
	if err != nil {
		l.log.Warn("failed to fetch events", zap.String("filter", string(filter)), zap.Error(err))
		l.state.Notices = []model.Flash{model.Failure(msgFetchEvents)}
		return l.state
	}
	l.state.Events = events
	return l.state
}
