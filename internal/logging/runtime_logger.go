package logging

import (
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/rs/zerolog"
)

// RuntimeLogger implements runtime.Logger on top of zerolog.
type RuntimeLogger struct {
	zl     zerolog.Logger
	fields map[string]interface{}
}

var _ runtime.Logger = (*RuntimeLogger)(nil)

// NewRuntimeLogger wraps zl.
func NewRuntimeLogger(zl zerolog.Logger) *RuntimeLogger {
	return &RuntimeLogger{zl: zl, fields: map[string]interface{}{}}
}

func (l *RuntimeLogger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, v...))
}

func (l *RuntimeLogger) Info(format string, v ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, v...))
}

func (l *RuntimeLogger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, v...))
}

func (l *RuntimeLogger) Error(format string, v ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, v...))
}

func (l *RuntimeLogger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}

func (l *RuntimeLogger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &RuntimeLogger{zl: l.zl.With().Fields(fields).Logger(), fields: merged}
}

func (l *RuntimeLogger) Fields() map[string]interface{} {
	return l.fields
}
