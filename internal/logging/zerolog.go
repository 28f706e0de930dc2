package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog.Logger.
func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

// NewConsoleLogger builds a human-readable logger writing to w at the given
// level ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func NewConsoleLogger(w io.Writer, level string) *ZerologLogger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("| %-5s|", strings.ToUpper(fmt.Sprint(i)))
		},
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldInteger = true

	l := zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
	return &ZerologLogger{l: l}
}

// ParseLevel maps a config string to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.event(ctx, z.l.Debug(), msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.event(ctx, z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.event(ctx, z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.event(ctx, z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(pairs(args)).Logger()}
}

func (z *ZerologLogger) event(ctx context.Context, e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	e.Ctx(ctx).Fields(pairs(args)).Msg(msg)
}

// pairs turns key–value args into a field map. A dangling key is reported
// under "!BADKEY" so nothing is silently dropped.
func pairs(args []any) map[string]any {
	fields := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, isErr := args[i+1].(error); isErr {
			fields[key] = err.Error()
			continue
		}
		fields[key] = args[i+1]
	}
	return fields
}
