// Package logging builds the process-wide zap logger and provides
// helpers for keeping model prompts and credentials out of log output.
package logging

import (
	"go.uber.org/zap"
)

// New creates a zap logger appropriate for the given environment.
// Local and dev environments get the human-readable development config
// at debug level; everything else gets production JSON output.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "local", "dev", "development":
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	default:
		return zap.NewProduction()
	}
}
