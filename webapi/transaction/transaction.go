// Package transaction provides the HTTP endpoints for deposits,
// withdrawals, transfers, and ledger history.
package transaction

import (
	transactionsvc "github.com/coreledger/banking/pkg/service/transaction"
	"github.com/coreledger/banking/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the transaction endpoints.
//
//   - POST /transaction/deposit  : Add funds.
//   - POST /transaction/withdraw : Remove funds.
//   - POST /transaction/transfer : Move funds between two accounts.
//   - GET  /transaction/history  : List ledger entries touching an account.
//
// Transfer is a POST: it mutates two balances and must never be a cacheable
// or prefetchable request.
func Routes(app *fiber.App, svc *transactionsvc.Service) {
	app.Post("/transaction/deposit", Deposit(svc))
	app.Post("/transaction/withdraw", Withdraw(svc))
	app.Post("/transaction/transfer", Transfer(svc))
	app.Get("/transaction/history", History(svc))
}

// Deposit returns the handler for adding funds.
// @Summary Deposit funds
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body DepositRequest true "Deposit details"
// @Success 200 {object} common.Response "New balance"
// @Failure 400 {object} common.ProblemDetails "Invalid amount or closed account"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /transaction/deposit [post]
func Deposit(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		read, err := svc.Deposit(c.UserContext(), input.AccountNumber, input.Pin, input.Amount)
		if err != nil {
			log.Errorf("Failed to deposit: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", read)
	}
}

// Withdraw returns the handler for removing funds.
// @Summary Withdraw funds
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body WithdrawRequest true "Withdrawal details"
// @Success 200 {object} common.Response "New balance"
// @Failure 400 {object} common.ProblemDetails "Insufficient balance or closed account"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /transaction/withdraw [post]
func Withdraw(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err
		}
		read, err := svc.Withdraw(c.UserContext(), input.AccountNumber, input.Pin, input.Amount)
		if err != nil {
			log.Errorf("Failed to withdraw: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", read)
	}
}

// Transfer returns the handler for moving funds between two accounts.
// @Summary Transfer funds
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer details"
// @Success 200 {object} common.Response "Transfer successful"
// @Failure 400 {object} common.ProblemDetails "Insufficient balance, closed account, or same-account transfer"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /transaction/transfer [post]
func Transfer(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		err = svc.Transfer(c.UserContext(), input.FromAccount, input.Pin, input.ToAccount, input.Amount)
		if err != nil {
			log.Errorf("Failed to transfer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", nil)
	}
}

// History returns the handler for listing ledger entries touching an
// account, including transfers received from other accounts.
// @Summary List transaction history
// @Tags transactions
// @Produce json
// @Param account_number query string true "Account number"
// @Param pin query string true "PIN"
// @Success 200 {object} common.Response "Ledger entries"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /transaction/history [get]
func History(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindQueryAndValidate[HistoryQuery](c)
		if input == nil {
			return err
		}
		entries, err := svc.History(c.UserContext(), input.AccountNumber, input.Pin)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch history", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History fetched", entries)
	}
}
