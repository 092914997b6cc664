// Package initializer wires the application dependencies: logger, database,
// unit of work, snapshot cache, and the domain services.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/coreledger/banking/infra"
	infracache "github.com/coreledger/banking/infra/cache"
	infrarepo "github.com/coreledger/banking/infra/repository"
	"github.com/coreledger/banking/pkg/cache"
	"github.com/coreledger/banking/pkg/config"
	"github.com/coreledger/banking/pkg/repository"
	accountsvc "github.com/coreledger/banking/pkg/service/account"
	loansvc "github.com/coreledger/banking/pkg/service/loan"
	transactionsvc "github.com/coreledger/banking/pkg/service/transaction"
	"github.com/redis/go-redis/v9"
)

// Deps holds everything the HTTP layer and the CLI need.
type Deps struct {
	Logger             *slog.Logger
	Uow                repository.UnitOfWork
	AccountCache       cache.AccountCache
	AccountService     *accountsvc.Service
	TransactionService *transactionsvc.Service
	LoanService        *loansvc.Service
}

// InitializeDependencies builds the full dependency graph from configuration.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	deps := &Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := db.AutoMigrate(infrarepo.Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	deps.Uow = infrarepo.NewUoW(db)

	deps.AccountCache, err = initAccountCache(cfg, logger)
	if err != nil {
		return nil, err
	}

	deps.AccountService = accountsvc.NewService(deps.Uow, deps.AccountCache, logger)
	deps.TransactionService = transactionsvc.NewService(deps.Uow, deps.AccountCache, logger)
	deps.LoanService = loansvc.NewService(deps.Uow, logger)

	return deps, nil
}

// initAccountCache picks Redis when a URL is configured, otherwise the
// in-process cache.
func initAccountCache(cfg *config.App, logger *slog.Logger) (cache.AccountCache, error) {
	if cfg.Redis.URL == "" {
		logger.Info("Using in-memory account snapshot cache")
		return infracache.NewMemoryCache(cfg.Redis.TTL), nil
	}
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	logger.Info("Using Redis account snapshot cache", "addr", opt.Addr)
	return infracache.NewRedisCache(opt, cfg.Redis.KeyPrefix, cfg.Redis.TTL, logger), nil
}
