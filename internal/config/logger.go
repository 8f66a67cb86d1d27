package config

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Set LOG_MODE=development for
// human-readable console output.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("LOG_MODE") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
