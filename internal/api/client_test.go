package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/afianhyira/Campus-Event-Frontend/internal/config"
	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken string

func (s staticToken) Token(context.Context) string {
	return string(s)
}

func newTestClient(t *testing.T, h http.Handler, tokens TokenSource) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg, err := config.New()
	require.NoError(t, err)
	cfg.Backend.BaseURL = srv.URL + "/api"
	cfg.Backend.Timeout = 5 * time.Second

	c, err := New(Params{Config: cfg, Log: zap.NewNop(), Tokens: tokens})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_ListEvents_TypeQuery(t *testing.T) {
	var got []string
	r := chi.NewRouter()
	r.Get("/api/events", func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.RequestURI())
		writeJSON(w, http.StatusOK, []model.Event{{ID: "e1", Name: "Go Workshop", Type: model.Workshop}})
	})

	c := newTestClient(t, r, nil)

	events, err := c.ListEvents(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)

	_, err = c.ListEvents(context.Background(), model.Seminar)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/events", "/api/events?type=seminar"}, got)
}

func TestClient_AttachesHeaders(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	var hdr http.Header
	r := chi.NewRouter()
	r.Get("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		hdr = r.Header.Clone()
		writeJSON(w, http.StatusOK, model.User{ID: "u1", Name: "Ada", Role: "student"})
	})

	c := newTestClient(t, r, staticToken("tok-123"))

	u, err := c.Me(context.Background())
	require.NoError(err)
	assert.Equal("u1", u.ID)
	assert.Equal("Ada", u.Name)

	assert.Equal("Bearer tok-123", hdr.Get("Authorization"))
	assert.Equal("application/json", hdr.Get("Accept"))
	assert.NotEmpty(hdr.Get("X-Request-ID"))
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	var hdr http.Header
	r := chi.NewRouter()
	r.Get("/api/events", func(w http.ResponseWriter, r *http.Request) {
		hdr = r.Header.Clone()
		writeJSON(w, http.StatusOK, []model.Event{})
	})

	c := newTestClient(t, r, staticToken(""))

	events, err := c.ListEvents(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, hdr.Get("Authorization"))
}

func TestClient_ErrorMessage(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	r := chi.NewRouter()
	r.Post("/api/events/{id}/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Event is full"})
	})
	r.Delete("/api/events/{id}/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})
	r.Get("/api/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Event not found"})
	})

	c := newTestClient(t, r, staticToken("tok"))

	err := c.RegisterForEvent(context.Background(), "e1")
	require.Error(err)
	var apiErr *Error
	require.True(errors.As(err, &apiErr))
	assert.Equal(http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal("Event is full", Message(err, "Failed to register for event"))

	err = c.CancelRegistration(context.Background(), "e1")
	require.Error(err)
	assert.Equal("Failed to cancel registration", Message(err, "Failed to cancel registration"))

	_, err = c.GetEvent(context.Background(), "missing")
	assert.ErrorIs(err, ErrNotFound)
	assert.NotErrorIs(err, ErrUnauthorized)
}

func TestClient_TransportFailure(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)
	cfg.Backend.BaseURL = "http://127.0.0.1:1/api"
	cfg.Backend.Timeout = time.Second

	c, err := New(Params{Config: cfg, Log: zap.NewNop()})
	require.NoError(t, err)

	_, err = c.Stats(context.Background())
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to fetch dashboard data", Message(err, "Failed to fetch dashboard data"))
}

func TestClient_EventCRUD(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	date := time.Date(2026, 11, 3, 14, 0, 0, 0, time.UTC)
	var created, updated model.EventInput
	var deleted string

	r := chi.NewRouter()
	r.Post("/api/events", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&created)
		writeJSON(w, http.StatusCreated, model.Event{ID: "new", Name: created.Name})
	})
	r.Put("/api/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&updated)
		writeJSON(w, http.StatusOK, model.Event{ID: chi.URLParam(r, "id"), Name: updated.Name})
	})
	r.Delete("/api/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = chi.URLParam(r, "id")
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/api/events/{id}/check-registration", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, true)
	})
	r.Get("/api/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.Stats{TotalEvents: 4, TotalRegistrations: 9, UpcomingEvents: 2})
	})

	c := newTestClient(t, r, staticToken("admin"))
	ctx := context.Background()

	in := model.EventInput{Name: "Intro to Go", Type: model.Workshop, Date: date, Location: "Lab 3", Capacity: 30}
	e, err := c.CreateEvent(ctx, in)
	require.NoError(err)
	assert.Equal("new", e.ID)
	assert.Equal(in.Name, created.Name)
	assert.Equal(model.Workshop, created.Type)
	assert.Equal(30, created.Capacity)
	assert.True(date.Equal(created.Date))

	in.Capacity = 45
	e, err = c.UpdateEvent(ctx, "abc", in)
	require.NoError(err)
	assert.Equal("abc", e.ID)
	assert.Equal(45, updated.Capacity)

	require.NoError(c.DeleteEvent(ctx, "abc"))
	assert.Equal("abc", deleted)

	registered, err := c.IsRegistered(ctx, "abc")
	require.NoError(err)
	assert.True(registered)

	s, err := c.Stats(ctx)
	require.NoError(err)
	assert.Equal(model.Stats{TotalEvents: 4, TotalRegistrations: 9, UpcomingEvents: 2}, *s)
}

func TestClient_LoginRequiresToken(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": model.User{ID: "u1"}})
	})

	c := newTestClient(t, r, nil)

	_, err := c.Login(context.Background(), model.Credentials{Email: "a@campus.edu", Password: "pw"})
	assert.ErrorIs(t, err, errNoToken)
}
