package config

import "time"

// LimitsConfig bounds a single turn and the in-memory history window.
type LimitsConfig struct {
	TurnTimeoutSeconds int `hcl:"turn_timeout_seconds,optional"`
	HistoryLimit       int `hcl:"history_limit,optional"`
}

func (l *LimitsConfig) Defaults() {
	if l.TurnTimeoutSeconds == 0 {
		l.TurnTimeoutSeconds = 120
	}
	if l.HistoryLimit == 0 {
		l.HistoryLimit = 40
	}
}

func (l *LimitsConfig) TurnTimeout() time.Duration {
	return time.Duration(l.TurnTimeoutSeconds) * time.Second
}
