package account

//revive:disable

// CreateAccountRequest represents the request body for opening an account.
// KYC fields are optional at account opening and can be filed later via
// the KYC update endpoint.
type CreateAccountRequest struct {
	AccountNumber string `json:"account_number" validate:"required,min=1,max=32"`
	Name          string `json:"name" validate:"required,min=1,max=100"`
	Pin           string `json:"pin" validate:"required,min=4,max=12"`
	Aadhaar       string `json:"aadhaar" validate:"omitempty,min=4,max=32"`
	PAN           string `json:"pan" validate:"omitempty,min=4,max=16"`
	Address       string `json:"address" validate:"omitempty,max=256"`
}

// BalanceQuery represents the query parameters of a balance check.
type BalanceQuery struct {
	AccountNumber string `query:"account_number" validate:"required"`
	Pin           string `query:"pin" validate:"required,min=4,max=12"`
}

// ChangePinRequest represents the request body for replacing the PIN.
type ChangePinRequest struct {
	AccountNumber string `json:"account_number" validate:"required"`
	OldPin        string `json:"old_pin" validate:"required,min=4,max=12"`
	NewPin        string `json:"new_pin" validate:"required,min=4,max=12,nefield=OldPin"`
}

// UpdateKYCRequest represents the request body for overwriting the KYC record.
type UpdateKYCRequest struct {
	AccountNumber string `json:"account_number" validate:"required"`
	Pin           string `json:"pin" validate:"required,min=4,max=12"`
	Aadhaar       string `json:"aadhaar" validate:"required,min=4,max=32"`
	PAN           string `json:"pan" validate:"required,min=4,max=16"`
	Address       string `json:"address" validate:"required,max=256"`
}

// CloseAccountRequest represents the request body for flagging an account closed.
type CloseAccountRequest struct {
	AccountNumber string `json:"account_number" validate:"required"`
	Pin           string `json:"pin" validate:"required,min=4,max=12"`
}
