package middleware

import (
	"context"
	"log/slog"
	"time"

	"roomrates/internal/app/commands"
	"roomrates/internal/app/queries"
)

func Logging(logger *slog.Logger) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			start := time.Now()
			res, err := nextFn(ctx, cmd)
			logOutcome(ctx, logger, "command", cmd.Key(), start, err)
			return res, err
		})
	}
}

func QueryLogging(logger *slog.Logger) QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			start := time.Now()
			res, err := nextFn(ctx, q)
			logOutcome(ctx, logger, "query", q.Key(), start, err)
			return res, err
		})
	}
}

func logOutcome(ctx context.Context, logger *slog.Logger, kind, key string, start time.Time, err error) {
	if logger == nil {
		return
	}
	attrs := []any{"kind", kind, "key", key, "duration", time.Since(start)}
	if err != nil {
		logger.WarnContext(ctx, "bus message failed", append(attrs, "error", err)...)
		return
	}
	logger.DebugContext(ctx, "bus message handled", attrs...)
}
