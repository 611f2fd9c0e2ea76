package fakebackend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
)

var errFixtureIsDir = errors.New("fixture file is dir")

type FixtureUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Fixture is the JSON seed format of the fake backend.
type Fixture struct {
	Users  []FixtureUser `json:"users"`
	Events []model.Event `json:"events"`
}

// Seed loads users and events from the JSON file at path. Events without
// availableSeats start with every seat free.
func (b *Backend) Seed(path string) error {
	finfo, err := os.Stat(path)
	if err != nil {
		return err
	}
	if finfo.IsDir() {
		return errFixtureIsDir
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var seed Fixture
	if err := json.NewDecoder(f).Decode(&seed); err != nil {
		return fmt.Errorf("decode fixture %s: %w", path, err)
	}

	for _, u := range seed.Users {
		b.AddUser(u.Name, u.Email, u.Password, u.Role)
	}
	for _, e := range seed.Events {
		if e.AvailableSeats == 0 {
			e.AvailableSeats = e.Capacity
		}
		b.AddEvent(e)
	}
	return nil
}
