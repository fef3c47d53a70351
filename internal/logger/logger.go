package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var globalLogger zerolog.Logger

var once sync.Once

// InitLogging configures the global zerolog logger. Output always goes to
// stdout; when logFilePath is non-empty the same stream is appended to the
// file as well.
func InitLogging(logFilePath, level string) {
	once.Do(func() {
		writers := []io.Writer{os.Stdout}

		if logFilePath != "" {
			file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
			if err != nil {
				// The logger is not usable yet, report on stderr and continue
				// with stdout only.
				os.Stderr.WriteString("failed to open log file: " + err.Error() + "\n")
			} else {
				writers = append(writers, file)
			}
		}

		lvl, err := zerolog.ParseLevel(level)
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}

		multi := zerolog.MultiLevelWriter(writers...)
		globalLogger = zerolog.New(multi).With().Timestamp().Logger().Level(lvl)
		log.Logger = globalLogger
	})
}

// WithFields returns a context carrying a child logger with the given fields
// attached. The log helpers below pick it up automatically.
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	l := globalLogger.With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

func fromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &globalLogger
	}
	return l
}

func DebugLog(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Debug().Msgf(msg, args...)
}

func InfoLog(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Info().Msgf(msg, args...)
}

func WarnLog(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Warn().Msgf(msg, args...)
}

// ErrorLog attaches err as a structured field rather than formatting it into
// the message. A nil err logs the message alone.
func ErrorLog(ctx context.Context, msg string, err error) {
	fromContext(ctx).Error().Err(err).Msg(msg)
}
