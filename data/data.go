// Package data wires persistence for the task tracker.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdesk/taskdesk/config"
	"github.com/taskdesk/taskdesk/data/repository"
	"github.com/taskdesk/taskdesk/logger"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// schema bootstraps the single-table model. Title and description lengths
// match the validation rules; version drives optimistic concurrency.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id SERIAL PRIMARY KEY,
	title VARCHAR(50) NOT NULL,
	description VARCHAR(200) NOT NULL DEFAULT '',
	due_date DATE NOT NULL,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	version INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// Data encapsulates all data layer dependencies.
type Data struct {
	db  *sql.DB
	rdb *redis.Client

	TaskRepo  repository.TaskRepository
	TaskCache repository.TaskCache // nil when redis is not configured
	CacheTTL  time.Duration
}

// NewData opens the database, bootstraps the schema and initializes the
// repositories. The returned cleanup closes all connections.
func NewData(cfg *config.Data, log *logger.Logger) (*Data, func(), error) {
	if cfg == nil || cfg.Database == nil || cfg.Database.Source == "" {
		return nil, nil, errors.New("database configuration is missing")
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create schema: %w", err)
	}
	log.Info(ctx, "database schema ready")

	d := &Data{
		db:       db,
		TaskRepo: repository.NewTaskRepository(db, log),
	}

	if cfg.Redis != nil && cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Cache is an optimization; run without it rather than fail boot.
			log.Warn(ctx, "redis unavailable, caching disabled", "error", err)
			_ = rdb.Close()
		} else {
			d.rdb = rdb
			d.TaskCache = repository.NewRedisTaskCache(rdb)
			d.CacheTTL = cfg.Redis.CacheTTL
			log.Info(ctx, "task cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL.String())
		}
	}

	cleanup := func() {
		if d.rdb != nil {
			_ = d.rdb.Close()
		}
		_ = d.db.Close()
	}

	return d, cleanup, nil
}
