package webapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infracache "github.com/coreledger/banking/infra/cache"
	"github.com/coreledger/banking/infra/initializer"
	"github.com/coreledger/banking/internal/fixtures/mocks"
	"github.com/coreledger/banking/pkg/config"
	accountsvc "github.com/coreledger/banking/pkg/service/account"
	loansvc "github.com/coreledger/banking/pkg/service/loan"
	transactionsvc "github.com/coreledger/banking/pkg/service/transaction"
	"github.com/coreledger/banking/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log/slog"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	uow := mocks.NewFakeUnitOfWork()
	accCache := infracache.NewMemoryCache(0)
	logger := slog.Default()
	deps := &initializer.Deps{
		Logger:             logger,
		Uow:                uow,
		AccountCache:       accCache,
		AccountService:     accountsvc.NewService(uow, accCache, logger),
		TransactionService: transactionsvc.NewService(uow, accCache, logger),
		LoanService:        loansvc.NewService(uow, logger),
	}
	cfg := &config.App{
		RateLimit: config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	return webapi.SetupApp(deps, cfg)
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func createAccount(t *testing.T, app *fiber.App, number, name, pin string) {
	t.Helper()
	resp, _ := doRequest(t, app, fiber.MethodPost, "/account/create", fiber.Map{
		"account_number": number,
		"name":           name,
		"pin":            pin,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func dataField(t *testing.T, payload map[string]any, key string) any {
	t.Helper()
	data, ok := payload["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", payload)
	return data[key]
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)
	resp, _ := doRequest(t, app, fiber.MethodGet, "/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateAccount_Returns200WithMessage(t *testing.T) {
	app := newTestApp(t)

	resp, payload := doRequest(t, app, fiber.MethodPost, "/account/create", fiber.Map{
		"account_number": "A1",
		"name":           "Asha",
		"pin":            "1234",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Account created", payload["message"])
}

func TestCreateAccount_DuplicateNumber(t *testing.T) {
	app := newTestApp(t)
	createAccount(t, app, "A1", "Asha", "1234")

	resp, payload := doRequest(t, app, fiber.MethodPost, "/account/create", fiber.Map{
		"account_number": "A1",
		"name":           "Ravi",
		"pin":            "9999",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Failed to create account", payload["title"])
}

func TestCreateAccount_ValidationFailure(t *testing.T) {
	app := newTestApp(t)
	resp, payload := doRequest(t, app, fiber.MethodPost, "/account/create", fiber.Map{
		"account_number": "A1",
		"name":           "Asha",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", payload["title"])
}

func TestGetBalance_WrongPinIs404ProblemJSON(t *testing.T) {
	app := newTestApp(t)
	createAccount(t, app, "A1", "Asha", "1234")

	req := httptest.NewRequest(fiber.MethodGet, "/account/balance?account_number=A1&pin=0000", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/problem+json")
}

func TestAccountLifecycleFlow(t *testing.T) {
	app := newTestApp(t)
	createAccount(t, app, "A1", "Asha", "1234")
	createAccount(t, app, "A2", "Ravi", "5678")

	// Deposit 100.
	resp, payload := doRequest(t, app, fiber.MethodPost, "/transaction/deposit", fiber.Map{
		"account_number": "A1", "pin": "1234", "amount": 100,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.InDelta(t, 100.0, dataField(t, payload, "balance"), 0.001)

	// Withdraw 30.
	resp, payload = doRequest(t, app, fiber.MethodPost, "/transaction/withdraw", fiber.Map{
		"account_number": "A1", "pin": "1234", "amount": 30,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.InDelta(t, 70.0, dataField(t, payload, "balance"), 0.001)

	// Transfer 20 to A2.
	resp, _ = doRequest(t, app, fiber.MethodPost, "/transaction/transfer", fiber.Map{
		"from_account": "A1", "pin": "1234", "to_account": "A2", "amount": 20,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/account/balance?account_number=A1&pin=1234", nil)
	httpResp, err := app.Test(req, -1)
	require.NoError(t, err)
	var balancePayload map[string]any
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(&balancePayload))
	httpResp.Body.Close()
	assert.InDelta(t, 50.0, dataField(t, balancePayload, "balance"), 0.001)

	// A2 received the funds and sees the transfer in its history.
	req = httptest.NewRequest(fiber.MethodGet, "/transaction/history?account_number=A2&pin=5678", nil)
	httpResp, err = app.Test(req, -1)
	require.NoError(t, err)
	var historyPayload map[string]any
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(&historyPayload))
	httpResp.Body.Close()
	entries, ok := historyPayload["data"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
}

func TestLoanFlow(t *testing.T) {
	app := newTestApp(t)
	createAccount(t, app, "A1", "Asha", "1234")

	// Apply: 1000 at 10% over 12 months means 1100 due.
	resp, payload := doRequest(t, app, fiber.MethodPost, "/loan/apply", fiber.Map{
		"account_number": "A1", "pin": "1234",
		"loan_amount": 1000, "interest_rate": 10, "tenure_months": 12,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	loanID, ok := dataField(t, payload, "loan_id").(string)
	require.True(t, ok)

	resp, payload = doRequest(t, app, fiber.MethodPut, "/loan/repay", fiber.Map{
		"account_number": "A1", "loan_id": loanID, "pin": "1234", "amount": 1100,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, dataField(t, payload, "remaining_due"))

	// Fully repaid: any further repayment is an over-repayment.
	resp, payload = doRequest(t, app, fiber.MethodPut, "/loan/repay", fiber.Map{
		"account_number": "A1", "loan_id": loanID, "pin": "1234", "amount": 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Failed to repay loan", payload["title"])

	req := httptest.NewRequest(fiber.MethodGet, "/loan/list?account_number=A1&pin=1234", nil)
	httpResp, err := app.Test(req, -1)
	require.NoError(t, err)
	var listPayload map[string]any
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(&listPayload))
	httpResp.Body.Close()
	loans, ok := listPayload["data"].([]any)
	require.True(t, ok)
	require.Len(t, loans, 1)
	assert.Equal(t, "closed", loans[0].(map[string]any)["status"])
}

func TestWithdraw_InsufficientBalanceIs400(t *testing.T) {
	app := newTestApp(t)
	createAccount(t, app, "A1", "Asha", "1234")

	resp, _ := doRequest(t, app, fiber.MethodPost, "/transaction/withdraw", fiber.Map{
		"account_number": "A1", "pin": "1234", "amount": 10,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTransfer_SameAccountRejected(t *testing.T) {
	app := newTestApp(t)
	createAccount(t, app, "A1", "Asha", "1234")

	resp, _ := doRequest(t, app, fiber.MethodPost, "/transaction/transfer", fiber.Map{
		"from_account": "A1", "pin": "1234", "to_account": "A1", "amount": 10,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCloseAccount_ThenDepositRejected(t *testing.T) {
	app := newTestApp(t)
	createAccount(t, app, "A1", "Asha", "1234")

	resp, _ := doRequest(t, app, fiber.MethodDelete, "/account/close_account", fiber.Map{
		"account_number": "A1", "pin": "1234",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, fiber.MethodPost, "/transaction/deposit", fiber.Map{
		"account_number": "A1", "pin": "1234", "amount": 10,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Balance stays readable on a closed account.
	req := httptest.NewRequest(fiber.MethodGet, "/account/balance?account_number=A1&pin=1234", nil)
	httpResp, err := app.Test(req, -1)
	require.NoError(t, err)
	httpResp.Body.Close()
	assert.Equal(t, fiber.StatusOK, httpResp.StatusCode)
}

func TestChangePin_OldPinStopsWorking(t *testing.T) {
	app := newTestApp(t)
	createAccount(t, app, "A1", "Asha", "1234")

	resp, _ := doRequest(t, app, fiber.MethodPut, "/account/change_pin", fiber.Map{
		"account_number": "A1", "old_pin": "1234", "new_pin": "5678",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/account/balance?account_number=A1&pin=1234", nil)
	httpResp, err := app.Test(req, -1)
	require.NoError(t, err)
	httpResp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, httpResp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/account/balance?account_number=A1&pin=5678", nil)
	httpResp, err = app.Test(req, -1)
	require.NoError(t, err)
	httpResp.Body.Close()
	assert.Equal(t, fiber.StatusOK, httpResp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	uow := mocks.NewFakeUnitOfWork()
	accCache := infracache.NewMemoryCache(0)
	logger := slog.Default()
	deps := &initializer.Deps{
		Logger:             logger,
		Uow:                uow,
		AccountCache:       accCache,
		AccountService:     accountsvc.NewService(uow, accCache, logger),
		TransactionService: transactionsvc.NewService(uow, accCache, logger),
		LoanService:        loansvc.NewService(uow, logger),
	}
	cfg := &config.App{
		RateLimit: config.RateLimit{MaxRequests: 3, Window: time.Minute},
	}
	app := webapi.SetupApp(deps, cfg)

	for i := 0; i < 3; i++ {
		resp, _ := doRequest(t, app, fiber.MethodGet, "/", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "request %d", i+1)
	}
	resp, _ := doRequest(t, app, fiber.MethodGet, "/", nil)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
