package model

import (
	"github.com/google/uuid"
)

// PaymentRecord mirrors a payment intent created at the external provider.
// Status reflects intent creation only, never settlement; the record is
// written after the provider confirms and is not transitioned internally.
type PaymentRecord struct {
	Base
	AccountID   *uuid.UUID `json:"account_id" db:"account_id"`
	Amount      int64      `json:"amount" db:"amount"`
	Currency    string     `json:"currency" db:"currency"`
	ProviderRef string     `json:"provider_ref" db:"provider_ref"`
	Status      string     `json:"status" db:"status"`
}

// CreateIntentRequest represents monetary donation parameters. Amount is in
// the smallest currency unit. AccountID is optional, anonymous donations
// are allowed.
type CreateIntentRequest struct {
	Amount    int64      `json:"amount" binding:"required,gt=0"`
	Currency  string     `json:"currency"`
	AccountID *uuid.UUID `json:"account_id"`
}

// IntentResponse is returned after a successful intent creation
type IntentResponse struct {
	ClientSecret string `json:"client_secret"`
	ProviderRef  string `json:"provider_ref"`
	Status       string `json:"status"`
}
