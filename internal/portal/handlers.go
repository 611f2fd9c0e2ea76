package portal

import (
	"encoding/json"
	"net/http"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"github.com/afianhyira/Campus-Event-Frontend/internal/template"
	"github.com/afianhyira/Campus-Event-Frontend/internal/view"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type eventsPage struct {
	State   view.EventListState
	Filters []view.Filter
}

type formPage struct {
	State view.FormState
	Types []model.EventType
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Portal) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "home.html", "Home", nil)
}

func (s *Portal) events(w http.ResponseWriter, r *http.Request) {
	list := view.NewEventList(s.api, s.log)
	st := list.Load(r.Context(), view.ParseFilter(r.URL.Query().Get("type")))

	s.render(w, r, "events.html", "Events", eventsPage{State: st, Filters: view.Filters}, st.Notices...)
}

func (s *Portal) event(w http.ResponseWriter, r *http.Request) {
	st := s.detail.Load(r.Context(), chi.URLParam(r, "id"), s.user(r))
	s.renderDetail(w, r, st)
}

func (s *Portal) registerForEvent(w http.ResponseWriter, r *http.Request) {
	st := s.detail.Register(r.Context(), chi.URLParam(r, "id"), s.user(r))
	s.renderDetail(w, r, st)
}

func (s *Portal) cancelRegistration(w http.ResponseWriter, r *http.Request) {
	st := s.detail.Cancel(r.Context(), chi.URLParam(r, "id"), s.user(r))
	s.renderDetail(w, r, st)
}

func (s *Portal) renderDetail(w http.ResponseWriter, r *http.Request, st view.DetailState) {
	if st.Redirect != "" {
		s.redirect(w, r, st.Redirect, st.Notices...)
		return
	}
	s.render(w, r, "event.html", st.Event.Name, st, st.Notices...)
}

func (s *Portal) calendarPage(w http.ResponseWriter, r *http.Request) {
	st := s.calendar.Load(r.Context(), s.calendar.ParseDay(r.URL.Query().Get("date")))
	s.render(w, r, "calendar.html", "Calendar", st, st.Notices...)
}

func (s *Portal) dashboardPage(w http.ResponseWriter, r *http.Request) {
	st := s.dashboard.Load(r.Context())
	s.render(w, r, "dashboard.html", "Admin Dashboard", st, st.Notices...)
}

func (s *Portal) confirmDelete(w http.ResponseWriter, r *http.Request) {
	event, notices := s.dashboard.DeleteTarget(r.Context(), chi.URLParam(r, "id"))
	if event == nil {
		s.redirect(w, r, "/admin/dashboard", notices...)
		return
	}
	s.render(w, r, "confirm_delete.html", "Delete Event", event)
}

func (s *Portal) deleteEvent(w http.ResponseWriter, r *http.Request) {
	confirmed := r.PostFormValue("confirm") == "yes"
	notices := s.dashboard.Delete(r.Context(), chi.URLParam(r, "id"), confirmed)
	s.redirect(w, r, "/admin/dashboard", notices...)
}

func (s *Portal) createForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, s.form.Open(r.Context(), ""))
}

func (s *Portal) editForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, s.form.Open(r.Context(), chi.URLParam(r, "id")))
}

func (s *Portal) createEvent(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, s.form.Submit(r.Context(), "", formValues(r)))
}

func (s *Portal) updateEvent(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, s.form.Submit(r.Context(), chi.URLParam(r, "id"), formValues(r)))
}

func (s *Portal) renderForm(w http.ResponseWriter, r *http.Request, st view.FormState) {
	if st.Redirect != "" {
		s.redirect(w, r, st.Redirect, st.Notices...)
		return
	}

	title := "Create Event"
	if st.Edit() {
		title = "Edit Event"
	}
	s.render(w, r, "event_form.html", title, formPage{State: st, Types: model.EventTypes}, st.Notices...)
}

func formValues(r *http.Request) view.FormValues {
	return view.FormValues{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Type:        r.PostFormValue("type"),
		Date:        r.PostFormValue("date"),
		Location:    r.PostFormValue("location"),
		Capacity:    r.PostFormValue("capacity"),
	}
}

func (s *Portal) user(r *http.Request) *model.User {
	return s.store.Snapshot(r.Context()).User
}

// render shows tmpl with the pending flashes followed by notices.
func (s *Portal) render(w http.ResponseWriter, r *http.Request, tmpl, title string, page any, notices ...model.Flash) {
	ctx := r.Context()

	data := &template.Data{
		PageTitle: title,
		User:      s.user(r),
		Flashes:   append(s.sessions.PopFlashes(ctx), notices...),
		Page:      page,
	}

	if err := s.renderer.Render(w, r, tmpl, data); err != nil {
		s.log.Error("render template", zap.String("template", tmpl), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// redirect carries notices over to the next page.
func (s *Portal) redirect(w http.ResponseWriter, r *http.Request, target string, notices ...model.Flash) {
	for _, n := range notices {
		s.sessions.Flash(r.Context(), n)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
