package portal

import (
	"net/http"

	"github.com/afianhyira/Campus-Event-Frontend/internal/api"
	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"go.uber.org/zap"
)

type authPage struct {
	Name  string
	Email string
}

// requireAuth sends anonymous visitors to the login page.
func (s *Portal) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.store.Snapshot(r.Context()).Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin guards the admin screens. The backend checks the role again
// on every admin call.
func (s *Portal) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.user(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !user.IsAdmin() {
			s.redirect(w, r, "/", model.Failure("Admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Portal) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", "Login", authPage{})
}

func (s *Portal) login(w http.ResponseWriter, r *http.Request) {
	creds := model.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := s.store.Login(r.Context(), creds); err != nil {
		s.log.Info("login failed", zap.String("email", creds.Email), zap.Error(err))
		s.render(w, r, "login.html", "Login", authPage{Email: creds.Email},
			model.Failure(api.Message(err, "Failed to login")))
		return
	}

	s.redirect(w, r, "/events", model.Success("Logged in successfully"))
}

func (s *Portal) registerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", "Register", authPage{})
}

func (s *Portal) register(w http.ResponseWriter, r *http.Request) {
	creds := model.Credentials{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := s.store.Register(r.Context(), creds); err != nil {
		s.log.Info("registration failed", zap.String("email", creds.Email), zap.Error(err))
		s.render(w, r, "register.html", "Register", authPage{Name: creds.Name, Email: creds.Email},
			model.Failure(api.Message(err, "Failed to register")))
		return
	}

	s.redirect(w, r, "/events", model.Success("Registered successfully"))
}

func (s *Portal) logout(w http.ResponseWriter, r *http.Request) {
	s.store.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
