// Package session owns the authentication state of a browser session: who is
// using the portal right now, and whether that is still being resolved.
//
// Views never change the state directly. They read a State snapshot and call
// Initialize, Register, Login or Logout.
package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// AuthAPI is the slice of the backend the store talks to.
type AuthAPI interface {
	Me(ctx context.Context) (*model.User, error)
	Register(ctx context.Context, creds model.Credentials) (*model.AuthResult, error)
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResult, error)
}

// Backend persists the state of the browser session bound to a context.
type Backend interface {
	Token(ctx context.Context) string
	PutToken(ctx context.Context, token string) error
	RemoveToken(ctx context.Context)
	State(ctx context.Context) model.Session
	PutState(ctx context.Context, state model.Session)
	Flash(ctx context.Context, flash model.Flash)
}

// State is a read-only snapshot of the session.
type State struct {
	User      *model.User
	Resolving bool
}

func (s State) Authenticated() bool {
	return s.User != nil
}

type Store struct {
	api     AuthAPI
	backend Backend
	log     *zap.Logger
}

type Params struct {
	fx.In

	API     AuthAPI
	Backend Backend
	Log     *zap.Logger
}

func New(p Params) *Store {
	return &Store{
		api:     p.API,
		backend: p.Backend,
		log:     p.Log,
	}
}

func (s *Store) Snapshot(ctx context.Context) State {
	st := s.backend.State(ctx)
	return State{User: st.User, Resolving: !st.Resolved}
}

// Initialize resolves the current user from the persisted credential once per
// browser session. A failed identity check leaves the session anonymous.
func (s *Store) Initialize(ctx context.Context) {
	st := s.backend.State(ctx)
	if st.Resolved {
		return
	}
	defer func() {
		st.Resolved = true
		s.backend.PutState(ctx, st)
	}()

	if s.backend.Token(ctx) == "" {
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.Warn("failed to fetch user", zap.Error(err))
		return
	}
	st.User = user
}

func (s *Store) Register(ctx context.Context, creds model.Credentials) error {
	res, err := s.api.Register(ctx, creds)
	if err != nil {
		return err
	}
	return s.authenticate(ctx, res)
}

func (s *Store) Login(ctx context.Context, creds model.Credentials) error {
	res, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}
	return s.authenticate(ctx, res)
}

func (s *Store) authenticate(ctx context.Context, res *model.AuthResult) error {
	if err := s.backend.PutToken(ctx, res.Token); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	s.backend.PutState(ctx, model.Session{User: res.User, Resolved: true})
	return nil
}

func (s *Store) Logout(ctx context.Context) {
	s.backend.RemoveToken(ctx)
	s.backend.PutState(ctx, model.Session{Resolved: true})
	s.backend.Flash(ctx, model.Success("Logged out successfully"))
}

// Resolve runs Initialize before handing the request on. It must sit inside
// the session load/save middleware.
func (s *Store) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Initialize(r.Context())
		next.ServeHTTP(w, r)
	})
}
