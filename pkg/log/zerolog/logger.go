// SPDX-License-Identifier: Apache-2.0

package zerolog

import (
	"time"

	"github.com/rs/zerolog"

	loglib "github.com/xataio/clinnorm/pkg/log"
)

// Logger adapts a zerolog logger to the loglib.Logger interface.
type Logger struct {
	zerologger *zerolog.Logger
	fields     loglib.Fields
}

// values longer than this are truncated, a full clinical row rarely is
const logMaxStringLen = 2048

func NewLogger(zl *zerolog.Logger) *Logger {
	return &Logger{
		zerologger: zl,
	}
}

func (l *Logger) Trace(msg string, fields ...loglib.Fields) {
	withFields(l.zerologger.Trace(), append(fields, l.fields)...).Msg(msg)
}

func (l *Logger) Debug(msg string, fields ...loglib.Fields) {
	withFields(l.zerologger.Debug(), append(fields, l.fields)...).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...loglib.Fields) {
	withFields(l.zerologger.Info(), append(fields, l.fields)...).Msg(msg)
}

func (l *Logger) Warn(err error, msg string, fields ...loglib.Fields) {
	withFields(l.zerologger.Warn().Err(err), append(fields, l.fields)...).Msg(msg)
}

func (l *Logger) Error(err error, msg string, fields ...loglib.Fields) {
	withFields(l.zerologger.Error().Err(err), append(fields, l.fields)...).Msg(msg)
}

func (l *Logger) Panic(msg string, fields ...loglib.Fields) {
	withFields(l.zerologger.Panic(), append(fields, l.fields)...).Msg(msg)
}

func (l *Logger) WithFields(fields loglib.Fields) loglib.Logger {
	return &Logger{
		zerologger: l.zerologger,
		fields:     loglib.MergeFields(l.fields, fields),
	}
}

func withFields(event *zerolog.Event, fieldMaps ...loglib.Fields) *zerolog.Event {
	for _, m := range fieldMaps {
		for key, value := range m {
			switch v := value.(type) {
			case string:
				event = event.Str(key, truncate(v))
			case int:
				event = event.Int(key, v)
			case int64:
				event = event.Int64(key, v)
			case uint:
				event = event.Uint(key, v)
			case bool:
				event = event.Bool(key, v)
			case time.Duration:
				event = event.Dur(key, v)
			case []string:
				event = event.Strs(key, v)
			case error:
				event = event.AnErr(key, v)
			default:
				event = event.Any(key, v)
			}
		}
	}
	return event
}

func truncate(s string) string {
	if len(s) > logMaxStringLen {
		return s[:logMaxStringLen]
	}
	return s
}
