// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads .env (when present) and populates App from the environment.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found, using system environment variables")
		}
	} else {
		for _, path := range envFiles {
			if err := godotenv.Load(path); err != nil {
				logger.Debug("Environment file not loaded", "path", path, "error", err)
			}
		}
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"server_port", cfg.Server.Port,
		"db", maskValue(cfg.DB.Url),
		"redis", maskValue(cfg.Redis.URL),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

func maskValue(v string) string {
	if len(v) <= 6 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-4:]
}
