package events

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/assr-bot/assr/internal/logger"
)

// loggerAdapter routes Watermill's logs into internal/logger.
// Trace is dropped; Debug only shows with LOG_LEVEL=debug.
type loggerAdapter struct {
	fields watermill.LogFields
}

func NewLoggerAdapter() watermill.LoggerAdapter {
	return &loggerAdapter{}
}

func (l *loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	logger.Error("watermill: %s: %v%s", msg, err, l.format(fields))
}

func (l *loggerAdapter) Info(msg string, fields watermill.LogFields) {
	logger.Info("watermill: %s%s", msg, l.format(fields))
}

func (l *loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	logger.Debug("watermill: %s%s", msg, l.format(fields))
}

func (l *loggerAdapter) Trace(msg string, fields watermill.LogFields) {}

func (l *loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &loggerAdapter{fields: l.fields.Add(fields)}
}

func (l *loggerAdapter) format(fields watermill.LogFields) string {
	all := l.fields.Add(fields)
	if len(all) == 0 {
		return ""
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, all[k])
	}
	return b.String()
}
