package di

import (
	"conference/config"
	"conference/helper"
	"conference/transport/http/middleware"
)

const pathHealth = "/health"

// ProvideSchema migrates lazily on the first request when auto migration is on.
func ProvideSchema(cfg *config.Config) middleware.SchemaGuard {
	if !cfg.DB.Postgres.AutoMigrate {
		return middleware.Schema(nil)
	}

	return middleware.Schema(helper.NewSchema(cfg), pathHealth)
}

func ProvideCSRF(cfg *config.Config) middleware.CSRFGuard {
	return middleware.CSRF(cfg)
}
