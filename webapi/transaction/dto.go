package transaction

//revive:disable

// DepositRequest represents the request body for depositing funds.
type DepositRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	Pin           string  `json:"pin" validate:"required,min=4,max=12"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

// WithdrawRequest represents the request body for withdrawing funds.
type WithdrawRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	Pin           string  `json:"pin" validate:"required,min=4,max=12"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

// TransferRequest represents the request body for moving funds between two
// accounts. The PIN authenticates the source account only.
type TransferRequest struct {
	FromAccount string  `json:"from_account" validate:"required"`
	Pin         string  `json:"pin" validate:"required,min=4,max=12"`
	ToAccount   string  `json:"to_account" validate:"required,nefield=FromAccount"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

// HistoryQuery represents the query parameters of a ledger history listing.
type HistoryQuery struct {
	AccountNumber string `query:"account_number" validate:"required"`
	Pin           string `query:"pin" validate:"required,min=4,max=12"`
}
