package middleware

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/afianhyira/Campus-Event-Frontend/internal/config"
	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sessionKey = "session_key"
	tokenKey   = "token"
	flashKey   = "flashes"

	cleanupInterval = 10 * time.Minute
)

// SessionManager keeps the per-browser state: the persisted credential under
// tokenKey, the resolved user under sessionKey and pending flashes.
type SessionManager struct {
	impl *scs.SessionManager
	log  *zap.Logger
}

type SessionParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
	Pool   *pgxpool.Pool `optional:"true"`
}

func NewSessionManager(p SessionParams) (*SessionManager, error) {
	gob.Register(&model.Session{})
	gob.Register([]model.Flash{})

	sm := &SessionManager{log: p.Log}
	sm.impl = scs.New()
	sm.impl.Lifetime = p.Config.Session.Lifetime
	sm.impl.Cookie.Name = p.Config.Session.CookieName
	sm.impl.Cookie.HttpOnly = true
	sm.impl.Cookie.SameSite = http.SameSiteLaxMode
	sm.impl.ErrorFunc = sm.serveError

	if p.Pool != nil {
		store := pgxstore.NewWithCleanupInterval(p.Pool, cleanupInterval)
		sm.impl.Store = store
		p.LC.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				store.StopCleanup()
				return nil
			},
		})
	}

	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) serveError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("session load/save failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *SessionManager) Token(ctx context.Context) string {
	return s.impl.GetString(ctx, tokenKey)
}

// PutToken stores the credential under a fresh session token so a session id
// issued before login cannot be reused after it.
func (s *SessionManager) PutToken(ctx context.Context, token string) error {
	if err := s.impl.RenewToken(ctx); err != nil {
		return err
	}
	s.impl.Put(ctx, tokenKey, token)
	return nil
}

func (s *SessionManager) RemoveToken(ctx context.Context) {
	s.impl.Remove(ctx, tokenKey)
}

func (s *SessionManager) State(ctx context.Context) model.Session {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok || session == nil {
		return model.Session{}
	}
	return *session
}

func (s *SessionManager) PutState(ctx context.Context, state model.Session) {
	s.impl.Put(ctx, sessionKey, &state)
}

func (s *SessionManager) Flash(ctx context.Context, flash model.Flash) {
	flashes, _ := s.impl.Get(ctx, flashKey).([]model.Flash)
	s.impl.Put(ctx, flashKey, append(flashes, flash))
}

// PopFlashes returns and clears the pending flashes.
func (s *SessionManager) PopFlashes(ctx context.Context) []model.Flash {
	flashes, _ := s.impl.Pop(ctx, flashKey).([]model.Flash)
	return flashes
}
