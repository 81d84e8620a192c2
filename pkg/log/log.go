package log

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger expõe apenas o que a API usa do logrus
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
}

type contextKey string

// CorrelationIDKey guarda o ID de correlação da requisição no contexto
const CorrelationIDKey contextKey = "correlation_id"
const correlationIDField = "correlation_id"

type logger struct {
	entry *logrus.Entry
}

// L é o logger base usado por ForContext
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// Campos mantidos mesmo no modo de desenvolvimento
var devFields = map[string]bool{
	correlationIDField: true,
	"method":           true,
	"path":             true,
	"status_code":      true,
	"duration_ms":      true,
	"error":            true,
	"provider":         true,
	"account":          true,
	"kind":             true,
	"run_id":           true,
}

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

func keepInDevelopment(key string) bool {
	return devFields[key] || strings.HasPrefix(key, "cache_")
}

func (l *logger) WithField(key string, value interface{}) Logger {
	if IsDevelopment() && !keepInDevelopment(key) {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

// WithFields descarta em desenvolvimento os campos fora de devFields
func (l *logger) WithFields(fields Fields) Logger {
	kept := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if !IsDevelopment() || keepInDevelopment(k) {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return l
	}

	return &logger{entry: l.entry.WithFields(kept)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *logger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *logger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *logger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// WithCorrelationID gera um ID de correlação e o guarda no contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// ForContext cria um logger com o ID de correlação do contexto, se houver
func ForContext(ctx context.Context) Logger {
	if ctx == nil {
		return L
	}
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return L.WithField(correlationIDField, correlationID)
	}
	return L
}

// ForAccount cria um logger identificando provedor e conta
func ForAccount(ctx context.Context, provider, account string) Logger {
	return ForContext(ctx).WithFields(Fields{
		"provider": provider,
		"account":  account,
	})
}
