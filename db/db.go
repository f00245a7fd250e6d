// Package db owns the PostgreSQL connection pool and schema migrations.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/eventpulse/feedback-backend/config"
	"github.com/eventpulse/feedback-backend/logger"
)

// NewPool builds a pgx connection pool from the database configuration.
// When QueryLog is enabled every statement is traced through the zap logger,
// mirroring the QUERY_LOG switch of the original deployment.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MinIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MinIdleConns)
	}

	if cfg.QueryLog {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   tracelog.LoggerFunc(logQuery),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func logQuery(_ context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
	log := logger.GetLogger()

	fields := make([]interface{}, 0, len(data)*2)
	for k, v := range data {
		fields = append(fields, k, v)
	}

	switch level {
	case tracelog.LogLevelError:
		log.Errorw(msg, fields...)
	case tracelog.LogLevelWarn:
		log.Warnw(msg, fields...)
	default:
		log.Debugw(msg, fields...)
	}
}
