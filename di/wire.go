//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"grocidish-client/infrastructure/config"
)

// InitializeApp assembles the full client from configuration.
func InitializeApp() (*App, error) {
	wire.Build(
		config.LoadConfig,
		ApplicationSet,
	)
	return nil, nil
}
