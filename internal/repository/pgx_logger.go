package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
// Query arguments carry submitter names and emails, so only their count is logged.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	l := logger.With().Str("component", "pgx").Logger()
	return &pgxLogger{logger: l}
}

// Log implements tracelog.Logger.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelNone:
		return
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}

	for k, v := range data {
		switch k {
		case "args":
			if args, ok := v.([]any); ok {
				event = event.Int("args_count", len(args))
			}
		case "sql":
			if s, ok := v.(string); ok {
				event = event.Str("sql", s)
			} else {
				event = event.Interface("sql", v)
			}
		case "err":
			if err, ok := v.(error); ok {
				event = event.Err(err)
			} else {
				event = event.Interface("err", v)
			}
		default:
			event = event.Interface(k, v)
		}
	}
	event.Msg(msg)
}
