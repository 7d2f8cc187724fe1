package http

import (
	"fmt"

	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
)

// leveledLogger adapts paymentrails.Logger to retryablehttp.LeveledLogger.
// Only warnings and errors are forwarded; per-attempt debug chatter is dropped.
type leveledLogger struct {
	logger paymentrails.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l leveledLogger) Info(string, ...interface{}) {}

func (l leveledLogger) Debug(string, ...interface{}) {}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	if len(keysAndValues)%2 == 1 {
		fields["extra"] = keysAndValues[len(keysAndValues)-1]
	}

	return fields
}
