// Package account provides the HTTP endpoints for account lifecycle
// operations.
package account

import (
	"github.com/coreledger/banking/pkg/dto"
	accountsvc "github.com/coreledger/banking/pkg/service/account"
	"github.com/coreledger/banking/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Routes registers the account endpoints.
//
//   - POST   /account/create        : Open a new account.
//   - GET    /account/balance       : Check the balance.
//   - PUT    /account/change_pin    : Replace the PIN.
//   - PUT    /account/kyc_update    : Overwrite the KYC record.
//   - DELETE /account/close_account : Flag the account closed.
func Routes(app *fiber.App, svc *accountsvc.Service) {
	app.Post("/account/create", CreateAccount(svc))
	app.Get("/account/balance", GetBalance(svc))
	app.Put("/account/change_pin", ChangePin(svc))
	app.Put("/account/kyc_update", UpdateKYC(svc))
	app.Delete("/account/close_account", CloseAccount(svc))
}

// CreateAccount returns the handler for opening an account.
// @Summary Open a new account
// @Description Opens an account with a zero balance. The PIN is stored only as a bcrypt hash. KYC details are optional.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 200 {object} common.Response "Account created"
// @Failure 400 {object} common.ProblemDetails "Invalid request or account number taken"
// @Router /account/create [post]
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		read, err := svc.Create(c.UserContext(), dto.AccountCreate{
			Number:  input.AccountNumber,
			Name:    input.Name,
			Pin:     input.Pin,
			Aadhaar: input.Aadhaar,
			PAN:     input.PAN,
			Address: input.Address,
		})
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account created", read)
	}
}

// GetBalance returns the handler for balance queries. Balance queries work
// on closed accounts.
// @Summary Check account balance
// @Tags accounts
// @Produce json
// @Param account_number query string true "Account number"
// @Param pin query string true "PIN"
// @Success 200 {object} common.Response "Balance"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /account/balance [get]
func GetBalance(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindQueryAndValidate[BalanceQuery](c)
		if input == nil {
			return err
		}
		read, err := svc.GetBalance(c.UserContext(), input.AccountNumber, input.Pin)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance fetched", read)
	}
}

// ChangePin returns the handler for replacing the PIN.
// @Summary Change the account PIN
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body ChangePinRequest true "Old and new PIN"
// @Success 200 {object} common.Response "PIN updated"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /account/change_pin [put]
func ChangePin(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ChangePinRequest](c)
		if input == nil {
			return err
		}
		err = svc.ChangePin(c.UserContext(), input.AccountNumber, input.OldPin, input.NewPin)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to change PIN", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "PIN updated", nil)
	}
}

// UpdateKYC returns the handler for overwriting the KYC record.
// @Summary Update KYC details
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body UpdateKYCRequest true "KYC details"
// @Success 200 {object} common.Response "KYC updated"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /account/kyc_update [put]
func UpdateKYC(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateKYCRequest](c)
		if input == nil {
			return err
		}
		err = svc.UpdateKYC(
			c.UserContext(),
			input.AccountNumber, input.Pin,
			input.Aadhaar, input.PAN, input.Address,
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update KYC", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "KYC updated", nil)
	}
}

// CloseAccount returns the handler for flagging an account closed. The
// record is kept and balance queries keep working.
// @Summary Close an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CloseAccountRequest true "Account credentials"
// @Success 200 {object} common.Response "Account closed"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /account/close_account [delete]
func CloseAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CloseAccountRequest](c)
		if input == nil {
			return err
		}
		if err := svc.Close(c.UserContext(), input.AccountNumber, input.Pin); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to close account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account closed", nil)
	}
}
