package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventType(t *testing.T) {
	assert := assert.New(t)

	for _, et := range EventTypes {
		assert.True(et.Valid(), et)
	}
	assert.False(EventType("all").Valid())
	assert.False(EventType("").Valid())

	assert.Equal("Workshop", Workshop.Title())
	assert.Equal("Club", Club.Title())
	assert.Equal("", EventType("").Title())
}

func TestEvent_Seats(t *testing.T) {
	assert := assert.New(t)

	e := Event{Capacity: 40, AvailableSeats: 15}
	assert.Equal(25, e.Registered())
	assert.False(e.IsFull())

	e.AvailableSeats = 0
	assert.True(e.IsFull())
}

func TestUser_IsAdmin(t *testing.T) {
	var nobody *User
	assert.False(t, nobody.IsAdmin())
	assert.False(t, (&User{Role: "student"}).IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}
