package agent

import "github.com/hashicorp/go-hclog"

// EventLogger is the interface for logging structured events during execution
type EventLogger interface {
	LogEvent(eventType string, data map[string]any)
}

// hclogEventLogger emits events through an hclog.Logger at Info level.
type hclogEventLogger struct {
	logger hclog.Logger
}

func NewHclogEventLogger(logger hclog.Logger) EventLogger {
	return &hclogEventLogger{logger: logger}
}

func (l *hclogEventLogger) LogEvent(eventType string, data map[string]any) {
	args := make([]any, 0, len(data)*2)
	for k, v := range data {
		args = append(args, k, v)
	}
	l.logger.Info(eventType, args...)
}
