package main

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/coreledger/banking/infra/initializer"
	"github.com/coreledger/banking/pkg/config"
	"github.com/coreledger/banking/webapi"
)

// @title Banking API
// @version 1.0.0
// @description Core banking back-end: accounts, transactions, and loans
// @host localhost:3000
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	fiberApp := webapi.SetupApp(deps, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("Starting server", "env", cfg.Env, "address", addr)

	return fiberApp.Listen(addr)
}
