package logging

import (
	"log/slog"
	"os"

	"airtable-shopify-sync/internal/config"
)

type LoggerService interface {
	Log(value string)
	LogError(value string, err error)
	LogWarning(value string)
	LogSuccess(value string)
}

// Logger writes structured JSON lines to stdout and mirrors
// warning/error/success messages to Telegram when credentials are
// configured.
type Logger struct {
	slog     *slog.Logger
	notifier *Notifier
}

func NewLogger(cfg config.TelegramBotConfig) *Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Logger{
		slog:     slog.New(h),
		notifier: NewNotifier(cfg),
	}
}

// Slog exposes the underlying structured logger for packages that want
// key/value logging (the HTTP access log middleware does).
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

func (l *Logger) Log(value string) {
	l.slog.Info(value)
}

func (l *Logger) LogError(value string, err error) {
	if err != nil {
		l.slog.Error(value, "error", err)
		l.notify(iconError, "ERROR", value+": "+err.Error())
		return
	}
	l.slog.Error(value)
	l.notify(iconError, "ERROR", value)
}

func (l *Logger) LogWarning(value string) {
	l.slog.Warn(value)
	l.notify(iconWarning, "WARNING", value)
}

func (l *Logger) LogSuccess(value string) {
	l.slog.Info(value, "result", "success")
	l.notify(iconSuccess, "SUCCESS", value)
}

func (l *Logger) notify(icon, level, value string) {
	if l.notifier == nil {
		return
	}
	if err := l.notifier.Send(formatMessage(icon, level, value)); err != nil {
		l.slog.Warn("telegram notify failed", "error", err)
	}
}
