// Package database provides the optional PostgreSQL pool backing durable
// browser sessions.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/afianhyira/Campus-Event-Frontend/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// schema is the table layout scs/pgxstore reads and writes.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	token  TEXT PRIMARY KEY,
	data   BYTEA NOT NULL,
	expiry TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry);
`

type Params struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

// NewPool connects to PostgreSQL when the session store is configured as
// postgres and returns a nil pool otherwise.
func NewPool(p Params) (*pgxpool.Pool, error) {
	if p.Config.Session.Store != config.StorePostgres {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectAttempts*(connectBackoff+5*time.Second))
	defer cancel()

	pool, err := connect(ctx, p.Config.Session.PostgresDSN, p.Log)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	p.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			pool.Close()
			return nil
		},
	})

	p.Log.Info("connected to session database")
	return pool, nil
}

func connect(ctx context.Context, dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse session db config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	for attempt := 1; ; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		if attempt == connectAttempts {
			return nil, fmt.Errorf("connect to session db: %w", err)
		}

		log.Warn("session db connect failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", connectAttempts),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to session db: %w", ctx.Err())
		case <-time.After(connectBackoff):
		}
	}
}
