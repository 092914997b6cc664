// Package webapi provides the HTTP surface of the banking service. It is
// organized into sub-packages per domain:
//   - account: account lifecycle endpoints
//   - transaction: deposit, withdraw, transfer, and history endpoints
//   - loan: loan origination, repayment, and listing endpoints
package webapi

import (
	"errors"
	"strings"

	"github.com/coreledger/banking/infra/initializer"
	"github.com/coreledger/banking/pkg/config"
	accountweb "github.com/coreledger/banking/webapi/account"
	"github.com/coreledger/banking/webapi/common"
	loanweb "github.com/coreledger/banking/webapi/loan"
	transactionweb "github.com/coreledger/banking/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp initializes Fiber with the rate limiter, panic recovery, and all
// domain routes.
func SetupApp(deps *initializer.Deps, cfg *config.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	// Uses X-Forwarded-For when behind a proxy, falling back to X-Real-IP
	// and then the direct peer address.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Banking API is running! 🚀")
	})

	accountweb.Routes(fiberApp, deps.AccountService)
	transactionweb.Routes(fiberApp, deps.TransactionService)
	loanweb.Routes(fiberApp, deps.LoanService)

	return fiberApp
}
