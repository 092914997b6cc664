// Package loan provides the HTTP endpoints for loan origination,
// repayment, and listing.
package loan

import (
	"github.com/coreledger/banking/pkg/dto"
	loansvc "github.com/coreledger/banking/pkg/service/loan"
	"github.com/coreledger/banking/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers the loan endpoints.
//
//   - POST /loan/apply : Originate a loan.
//   - PUT  /loan/repay : Repay against a loan.
//   - GET  /loan/list  : List an account's loans.
func Routes(app *fiber.App, svc *loansvc.Service) {
	app.Post("/loan/apply", ApplyLoan(svc))
	app.Put("/loan/repay", RepayLoan(svc))
	app.Get("/loan/list", ListLoans(svc))
}

// ApplyLoan returns the handler for loan origination. The remaining due is
// loan_amount * (1 + interest_rate/100); origination does not credit the
// account balance.
// @Summary Apply for a loan
// @Tags loans
// @Accept json
// @Produce json
// @Param request body ApplyLoanRequest true "Loan details"
// @Success 200 {object} common.Response "Loan ID"
// @Failure 400 {object} common.ProblemDetails "Invalid amount or closed account"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /loan/apply [post]
func ApplyLoan(svc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ApplyLoanRequest](c)
		if input == nil {
			return err
		}
		loanID, err := svc.Apply(c.UserContext(), dto.LoanApply{
			AccountNumber: input.AccountNumber,
			Pin:           input.Pin,
			LoanAmount:    input.LoanAmount,
			InterestRate:  input.InterestRate,
			TenureMonths:  input.TenureMonths,
		})
		if err != nil {
			log.Errorf("Failed to apply for loan: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to apply for loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loan approved", fiber.Map{
			"loan_id": loanID,
		})
	}
}

// RepayLoan returns the handler for repaying against a loan. Repayment is
// allowed on a closed account; debt outlives the account flag.
// @Summary Repay a loan
// @Tags loans
// @Accept json
// @Produce json
// @Param request body RepayLoanRequest true "Repayment details"
// @Success 200 {object} common.Response "Remaining due"
// @Failure 400 {object} common.ProblemDetails "Over-repayment"
// @Failure 404 {object} common.ProblemDetails "Invalid account, PIN, or loan"
// @Router /loan/repay [put]
func RepayLoan(svc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RepayLoanRequest](c)
		if input == nil {
			return err
		}
		loanID, err := uuid.Parse(input.LoanID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid loan ID", err, fiber.StatusBadRequest)
		}
		remaining, err := svc.Repay(c.UserContext(), input.AccountNumber, loanID, input.Pin, input.Amount)
		if err != nil {
			log.Errorf("Failed to repay loan: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to repay loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Repayment successful", fiber.Map{
			"loan_id":       loanID,
			"remaining_due": remaining,
		})
	}
}

// ListLoans returns the handler for listing an account's loans, newest
// first.
// @Summary List loans
// @Tags loans
// @Produce json
// @Param account_number query string true "Account number"
// @Param pin query string true "PIN"
// @Success 200 {object} common.Response "Loans"
// @Failure 404 {object} common.ProblemDetails "Invalid account or PIN"
// @Router /loan/list [get]
func ListLoans(svc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindQueryAndValidate[ListLoansQuery](c)
		if input == nil {
			return err
		}
		loans, err := svc.List(c.UserContext(), input.AccountNumber, input.Pin)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list loans", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loans fetched", loans)
	}
}
