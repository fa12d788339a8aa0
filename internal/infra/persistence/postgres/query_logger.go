package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nexus/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// queryLogger routes gorm output into the service's slog logger.
// SQL text is only attached at debug level or when a query fails or is slow.
type queryLogger struct {
	log *slog.Logger
	cfg logger.Config
}

func newQueryLogger(log *slog.Logger, cfg *config.Config) logger.Interface {
	gormCfg := logger.Config{
		SlowThreshold:             defaultSlowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	}
	if cfg != nil {
		if cfg.Env.Debug {
			gormCfg.LogLevel = logger.Info
		}
		if cfg.Postgres != nil && cfg.Postgres.SlowQueryThreshold > 0 {
			gormCfg.SlowThreshold = cfg.Postgres.SlowQueryThreshold
		}
	}
	if log == nil {
		gormCfg.LogLevel = logger.Silent
	}

	return &queryLogger{log: log, cfg: gormCfg}
}

func (q *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	next := *q
	next.cfg.LogLevel = level

	return &next
}

func (q *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (q *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (q *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	q.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (q *queryLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if q.cfg.LogLevel < threshold {
		return
	}

	q.log.LogAttrs(ctx, level, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
}

func (q *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if q.cfg.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && q.cfg.LogLevel >= logger.Error && !q.ignored(err):
		q.log.LogAttrs(ctx, slog.LevelError, "Query failed", append(queryAttrs(fc, elapsed), slog.String("error", err.Error()))...)
	case q.cfg.SlowThreshold > 0 && elapsed > q.cfg.SlowThreshold && q.cfg.LogLevel >= logger.Warn:
		q.log.LogAttrs(ctx, slog.LevelWarn, "Slow query", append(queryAttrs(fc, elapsed), slog.Duration("threshold", q.cfg.SlowThreshold))...)
	case q.cfg.LogLevel >= logger.Info:
		q.log.LogAttrs(ctx, slog.LevelDebug, "Query", queryAttrs(fc, elapsed)...)
	}
}

// ignored reports errors that are part of normal lookups rather than failures.
func (q *queryLogger) ignored(err error) bool {
	return q.cfg.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)
}

func queryAttrs(fc func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := fc()

	return []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
}
