// Package fakebackend serves an in-memory version of the campus REST backend
// for tests. It keeps users, tokens, events and registrations, records every
// request it sees and can be told to fail selected requests.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"github.com/go-chi/chi/v5"
)

// Prefix is where the API is mounted; clients use server URL + Prefix as
// their base URL.
const Prefix = "/api"

type account struct {
	user     model.User
	password string
}

type failure struct {
	status  int
	message string
}

type Backend struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]*account
	tokens   map[string]string
	events   map[string]*model.Event
	regs     map[string]map[string]bool
	failures map[string]failure
	requests []string
	now      func() time.Time
}

func New() *Backend {
	return &Backend{
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		events:   map[string]*model.Event{},
		regs:     map[string]map[string]bool{},
		failures: map[string]failure{},
		now:      time.Now,
	}
}

func (b *Backend) Handler() http.Handler {
	root := chi.NewRouter()
	root.Route(Prefix, func(r chi.Router) {
		r.Use(b.intercept)

		r.Post("/auth/register", b.register)
		r.Post("/auth/login", b.login)
		r.Get("/auth/me", b.me)

		r.Get("/events", b.listEvents)
		r.Get("/events/{id}", b.getEvent)
		r.Get("/events/{id}/check-registration", b.checkRegistration)
		r.Post("/events/{id}/register", b.registerForEvent)
		r.Delete("/events/{id}/register", b.cancelRegistration)

		r.Group(func(r chi.Router) {
			r.Use(b.requireAdmin)
			r.Post("/events", b.createEvent)
			r.Put("/events/{id}", b.updateEvent)
			r.Delete("/events/{id}", b.deleteEvent)
			r.Get("/admin/stats", b.stats)
		})
	})
	return root
}

// AddUser creates an account and returns it together with a valid token.
func (b *Backend) AddUser(name, email, password, role string) (model.User, string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc := b.addAccount(name, email, password, role)
	return acc.user, b.issueToken(acc.user.ID)
}

// AddEvent stores e under a fresh id.
func (b *Backend) AddEvent(e model.Event) model.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	e.ID = b.nextID("evt")
	b.events[e.ID] = &e
	return e
}

func (b *Backend) Event(id string) (model.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.events[id]
	if !ok {
		return model.Event{}, false
	}
	return *e, true
}

func (b *Backend) Registered(eventID, userID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[eventID][userID]
}

// Fail makes requests matching "METHOD /path" (path below Prefix, query
// included when the request has one) answer status with message.
func (b *Backend) Fail(request string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[request] = failure{status: status, message: message}
}

func (b *Backend) Recover(request string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, request)
}

// Requests lists the requests served so far as "METHOD /path".
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

func (b *Backend) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, Prefix)
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}

		b.mu.Lock()
		b.requests = append(b.requests, key)
		f, failing := b.failures[key]
		b.mu.Unlock()

		if failing {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := b.caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Email == "" || c.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.accounts[c.Email]; exists {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	acc := b.addAccount(c.Name, c.Email, c.Password, "student")
	writeJSON(w, http.StatusCreated, authResult{Token: b.issueToken(acc.user.ID), User: acc.user})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.accounts[c.Email]
	if !ok || acc.password != c.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, authResult{Token: b.issueToken(acc.user.ID), User: acc.user})
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	user, ok := b.caller(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (b *Backend) listEvents(w http.ResponseWriter, r *http.Request) {
	eventType := model.EventType(r.URL.Query().Get("type"))

	b.mu.Lock()
	events := make([]model.Event, 0, len(b.events))
	for _, e := range b.events {
		if eventType == "" || e.Type == eventType {
			events = append(events, *e)
		}
	}
	b.mu.Unlock()

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	writeJSON(w, http.StatusOK, events)
}

func (b *Backend) getEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := b.Event(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (b *Backend) createEvent(w http.ResponseWriter, r *http.Request) {
	var in model.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	e := b.AddEvent(model.Event{
		Name:           in.Name,
		Description:    in.Description,
		Type:           in.Type,
		Date:           in.Date,
		Location:       in.Location,
		Capacity:       in.Capacity,
		AvailableSeats: in.Capacity,
	})
	writeJSON(w, http.StatusCreated, e)
}

func (b *Backend) updateEvent(w http.ResponseWriter, r *http.Request) {
	var in model.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.events[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	e.Name = in.Name
	e.Description = in.Description
	e.Type = in.Type
	e.Date = in.Date
	e.Location = in.Location
	e.Capacity = in.Capacity
	e.AvailableSeats = max(in.Capacity-len(b.regs[id]), 0)
	writeJSON(w, http.StatusOK, e)
}

func (b *Backend) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.events[id]; !ok {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	delete(b.events, id)
	delete(b.regs, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

func (b *Backend) checkRegistration(w http.ResponseWriter, r *http.Request) {
	user, ok := b.caller(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, b.Registered(chi.URLParam(r, "id"), user.ID))
}

func (b *Backend) registerForEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := b.caller(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.events[id]
	switch {
	case !ok:
		writeError(w, http.StatusNotFound, "Event not found")
		return
	case b.regs[id][user.ID]:
		writeError(w, http.StatusBadRequest, "Already registered for this event")
		return
	case e.AvailableSeats <= 0:
		writeError(w, http.StatusBadRequest, "Event is full")
		return
	}

	if b.regs[id] == nil {
		b.regs[id] = map[string]bool{}
	}
	b.regs[id][user.ID] = true
	e.AvailableSeats--
	writeJSON(w, http.StatusOK, map[string]string{"message": "Registered successfully"})
}

func (b *Backend) cancelRegistration(w http.ResponseWriter, r *http.Request) {
	user, ok := b.caller(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.events[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if !b.regs[id][user.ID] {
		writeError(w, http.StatusBadRequest, "Not registered for this event")
		return
	}
	delete(b.regs[id], user.ID)
	e.AvailableSeats++
	writeJSON(w, http.StatusOK, map[string]string{"message": "Registration cancelled"})
}

func (b *Backend) stats(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := model.Stats{TotalEvents: len(b.events)}
	now := b.now()
	for id, e := range b.events {
		s.TotalRegistrations += len(b.regs[id])
		if e.Date.After(now) {
			s.UpcomingEvents++
		}
	}
	writeJSON(w, http.StatusOK, s)
}

// caller resolves the bearer token of r.
func (b *Backend) caller(r *http.Request) (model.User, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return model.User{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	userID, ok := b.tokens[token]
	if !ok {
		return model.User{}, false
	}
	for _, acc := range b.accounts {
		if acc.user.ID == userID {
			return acc.user, true
		}
	}
	return model.User{}, false
}

// addAccount and issueToken expect b.mu to be held.
func (b *Backend) addAccount(name, email, password, role string) *account {
	acc := &account{
		user:     model.User{ID: b.nextID("usr"), Name: name, Email: email, Role: role},
		password: password,
	}
	b.accounts[email] = acc
	return acc
}

func (b *Backend) issueToken(userID string) string {
	token := b.nextID("tok")
	b.tokens[token] = userID
	return token
}

func (b *Backend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s%d", prefix, b.seq)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
