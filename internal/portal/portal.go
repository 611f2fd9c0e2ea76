package portal

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/afianhyira/Campus-Event-Frontend/internal/api"
	"github.com/afianhyira/Campus-Event-Frontend/internal/config"
	"github.com/afianhyira/Campus-Event-Frontend/internal/middleware"
	"github.com/afianhyira/Campus-Event-Frontend/internal/session"
	"github.com/afianhyira/Campus-Event-Frontend/internal/template"
	"github.com/afianhyira/Campus-Event-Frontend/internal/view"
	"github.com/afianhyira/Campus-Event-Frontend/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Portal is the browser facing server of the campus event system.
type Portal struct {
	log      *zap.Logger
	server   *http.Server
	sessions *middleware.SessionManager
	store    *session.Store
	renderer *template.Renderer

	api       *api.Client
	calendar  *view.Calendar
	detail    *view.EventDetail
	dashboard *view.Dashboard
	form      *view.EventForm
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Config   *config.Config
	Sessions *middleware.SessionManager
	Store    *session.Store
	API      *api.Client
	Renderer *template.Renderer
}

func New(p Params) (*Portal, error) {
	loc, err := p.Config.Portal.Location()
	if err != nil {
		return nil, err
	}

	s := &Portal{
		log:       p.Log,
		sessions:  p.Sessions,
		store:     p.Store,
		renderer:  p.Renderer,
		api:       p.API,
		calendar:  view.NewCalendar(p.API, loc, p.Log),
		detail:    view.NewEventDetail(p.API, p.Log),
		dashboard: view.NewDashboard(p.API, p.Log),
		form:      view.NewEventForm(p.API, loc, p.Log),
	}

	handler, err := s.routes()
	if err != nil {
		return nil, err
	}

	s.server = &http.Server{
		Addr:    p.Config.Portal.Addr(),
		Handler: handler,
	}
	return s, nil
}

func (s *Portal) Handler() http.Handler {
	return s.server.Handler
}

func (s *Portal) routes() (http.Handler, error) {
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}

	root := chi.NewRouter()
	root.Use(chimiddleware.RequestID)
	root.Use(chimiddleware.RealIP)
	root.Use(middleware.Logger(s.log))
	root.Use(chimiddleware.Recoverer)

	root.Get("/health", health)
	root.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.FS(static))))

	root.Group(func(r chi.Router) {
		r.Use(s.sessions.Wrap)
		r.Use(s.store.Resolve)

		// No Auth
		r.Get("/", s.home)
		r.Get("/login", s.loginForm)
		r.Post("/login", s.login)
		r.Get("/register", s.registerForm)
		r.Post("/register", s.register)
		r.Post("/logout", s.logout)
		r.Get("/events", s.events)
		r.Get("/events/{id}", s.event)
		r.Get("/calendar", s.calendarPage)

		// Auth
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/events/{id}/register", s.registerForEvent)
			r.Post("/events/{id}/cancel", s.cancelRegistration)
		})

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/dashboard", s.dashboardPage)
			r.Get("/events/create", s.createForm)
			r.Post("/events", s.createEvent)
			r.Get("/events/edit/{id}", s.editForm)
			r.Post("/events/{id}", s.updateEvent)
			r.Get("/events/{id}/delete", s.confirmDelete)
			r.Post("/events/{id}/delete", s.deleteEvent)
		})
	})

	return root, nil
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, s *Portal) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Portal) Start(_ context.Context) error {
	s.log.Info("portal listening", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error shutting down server", zap.Error(err))
		}
	}()
	return nil
}
