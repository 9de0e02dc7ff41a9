// Package observability provides the client's logging, metrics, and tracing
// plumbing. Everything here is optional for callers embedding the SDK; the
// zero-config path yields a development logger, an isolated metrics registry,
// and no exported traces.
package observability

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a zap logger for the given environment.
func NewLogger(environment string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	switch environment {
	case "production":
		logger, err = zap.NewProduction()
	case "development":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
