package main

import (
	"flag"

	"github.com/afianhyira/Campus-Event-Frontend/internal/api"
	"github.com/afianhyira/Campus-Event-Frontend/internal/config"
	"github.com/afianhyira/Campus-Event-Frontend/internal/database"
	"github.com/afianhyira/Campus-Event-Frontend/internal/middleware"
	"github.com/afianhyira/Campus-Event-Frontend/internal/portal"
	"github.com/afianhyira/Campus-Event-Frontend/internal/session"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	var path = flag.String("config", "./config/config.yaml", "path to the portal config file")
	flag.Parse()

	loadConfig := func() (*config.Config, error) {
		return config.Load(*path)
	}

	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Provide(
			loadConfig,
			newLogger,
			database.NewPool,
			middleware.NewSessionManager,
			api.New,
			session.New,
			// The session manager holds the credential and the per-browser
			// state; the api client is the store's view of the backend.
			func(s *middleware.SessionManager) api.TokenSource { return s },
			func(s *middleware.SessionManager) session.Backend { return s },
			func(c *api.Client) session.AuthAPI { return c },
		),
		portal.Module,
		fx.Invoke(portal.RegisterHooks),
	)

	app.Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
