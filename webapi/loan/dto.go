package loan

//revive:disable

// ApplyLoanRequest represents the request body for loan origination.
type ApplyLoanRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	Pin           string  `json:"pin" validate:"required,min=4,max=12"`
	LoanAmount    float64 `json:"loan_amount" validate:"required,gt=0"`
	InterestRate  float64 `json:"interest_rate" validate:"gte=0"`
	TenureMonths  int     `json:"tenure_months" validate:"required,gt=0"`
}

// RepayLoanRequest represents the request body for a loan repayment. The
// loan is identified by both the loan ID and the owning account number.
type RepayLoanRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	LoanID        string  `json:"loan_id" validate:"required,uuid4"`
	Pin           string  `json:"pin" validate:"required,min=4,max=12"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

// ListLoansQuery represents the query parameters of a loan listing. The PIN
// is required; loan records are as sensitive as balances.
type ListLoansQuery struct {
	AccountNumber string `query:"account_number" validate:"required"`
	Pin           string `query:"pin" validate:"required,min=4,max=12"`
}
