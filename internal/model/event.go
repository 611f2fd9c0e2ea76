package model

import (
	"strings"
	"time"
)

type EventType string

const (
	Workshop EventType = "workshop"
	Seminar  EventType = "seminar"
	Club     EventType = "club"
)

var EventTypes = []EventType{Workshop, Seminar, Club}

func (t EventType) Valid() bool {
	switch t {
	case Workshop, Seminar, Club:
		return true
	}
	return false
}

// Title is the display form, e.g. "Workshop".
func (t EventType) Title() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

type Event struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Type           EventType `json:"type"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	Capacity       int       `json:"capacity"`
	AvailableSeats int       `json:"availableSeats"`
}

// Registered is the number of claimed seats.
func (e *Event) Registered() int {
	return e.Capacity - e.AvailableSeats
}

// IsFull reports whether the backend reports no seats left.
func (e *Event) IsFull() bool {
	return e.AvailableSeats == 0
}

// EventInput is the body of create and update calls.
type EventInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
}

type Stats struct {
	TotalEvents        int `json:"totalEvents"`
	TotalRegistrations int `json:"totalRegistrations"`
	UpcomingEvents     int `json:"upcomingEvents"`
}
