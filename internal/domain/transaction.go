package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether a ledger entry took money out of or into the account.
type Direction string

// Ledger entry directions.
const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// Transaction is an immutable ledger entry of one account.
type Transaction struct {
	ID         int64           `json:"-"`
	ExternalID string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"` // always positive
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"dateTime"`
	Direction  Direction       `json:"type"`
	AccountID  int64           `json:"-"`
}
