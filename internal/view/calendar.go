package view

import (
	"context"
	"time"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"go.uber.org/zap"
)

const DayLayout = "2006-01-02"

type Day struct {
	Date      time.Time
	InMonth   bool
	Selected  bool
	Today     bool
	HasEvents bool
}

type CalendarState struct {
	Selected time.Time
	Month    time.Time
	Prev     time.Time
	Next     time.Time
	Weeks    [][]Day
	// Events are those falling on the selected day.
	Events  []model.Event
	Notices []model.Flash
}

// Calendar renders a month grid. It always fetches the full event set and
// matches days locally.
type Calendar struct {
	api EventLister
	loc *time.Location
	log *zap.Logger
	now func() time.Time
}

func NewCalendar(api EventLister, loc *time.Location, log *zap.Logger) *Calendar {
	return &Calendar{api: api, loc: loc, log: log, now: time.Now}
}

func (c *Calendar) Today() time.Time {
	return startOfDay(c.now(), c.loc)
}

// ParseDay reads a YYYY-MM-DD day, falling back to today.
func (c *Calendar) ParseDay(s string) time.Time {
	if d, err := time.ParseInLocation(DayLayout, s, c.loc); err == nil {
		return d
	}
	return c.Today()
}

func (c *Calendar) Load(ctx context.Context, selected time.Time) CalendarState {
	selected = startOfDay(selected, c.loc)
	month := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, c.loc)

	st := CalendarState{
		Selected: selected,
		Month:    month,
		Prev:     month.AddDate(0, -1, 0),
		Next:     month.AddDate(0, 1, 0),
	}

	events, err := c.api.ListEvents(ctx, "")
	if err != nil {
		c.log.Warn("failed to fetch events", zap.Error(err))
		st.Notices = []model.Flash{model.Failure(msgFetchEvents)}
	}

	busy := make(map[string]bool, len(events))
	for _, e := range events {
		busy[dayKey(e.Date, c.loc)] = true
	}

	st.Weeks = monthGrid(month, selected, c.Today(), busy, c.loc)
	st.Events = EventsOn(events, selected, c.loc)
	return st
}

// SameDay reports whether a and b fall on the same calendar day in loc,
// whatever their time of day.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return dayKey(a, loc) == dayKey(b, loc)
}

func EventsOn(events []model.Event, day time.Time, loc *time.Location) []model.Event {
	var out []model.Event
	for _, e := range events {
		if SameDay(e.Date, day, loc) {
			out = append(out, e)
		}
	}
	return out
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// monthGrid lays the month out in Sunday-first weeks, padded with the days
// of the neighbouring months.
func monthGrid(month, selected, today time.Time, busy map[string]bool, loc *time.Location) [][]Day {
	day := month.AddDate(0, 0, -int(month.Weekday()))

	var weeks [][]Day
	for len(weeks) == 0 || day.Month() == month.Month() {
		week := make([]Day, 7)
		for i := range week {
			week[i] = Day{
				Date:      day,
				InMonth:   day.Month() == month.Month(),
				Selected:  SameDay(day, selected, loc),
				Today:     SameDay(day, today, loc),
				HasEvents: busy[dayKey(day, loc)],
			}
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
