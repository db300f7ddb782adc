// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a zap logger appropriate for the environment: human-readable
// development output locally, JSON production output everywhere else.
func New(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
