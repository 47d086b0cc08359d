// Package domain provides definitions of all entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/go-petr/funds-transfer/pkg/errorspkg"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errorspkg.New(errorspkg.KindNotFound, "account not found")
	// ErrInsufficientFunds indicates that the debit would make the balance negative.
	ErrInsufficientFunds = errorspkg.New(errorspkg.KindInsufficientFunds, "insufficient funds")
	// ErrLockConflict indicates that the account row lock was not acquired: the lock wait
	// timed out or the store aborted the transaction as a deadlock victim.
	ErrLockConflict = errors.New("account lock not acquired")
)

// Account holds the balance of a customer in one currency.
type Account struct {
	ID         int64           `json:"-"`
	ExternalID string          `json:"id"`
	IBAN       string          `json:"ibanNumber"`
	Balance    decimal.Decimal `json:"totalAmount"`
	Currency   string          `json:"currency"`
	CustomerID int64           `json:"-"`
}

// Ref returns the immutable part of the account.
func (a Account) Ref() AccountRef {
	return AccountRef{
		ID:         a.ID,
		ExternalID: a.ExternalID,
		IBAN:       a.IBAN,
		Currency:   a.Currency,
		CustomerID: a.CustomerID,
	}
}

// AccountRef is the part of an Account that never changes after creation.
// It is what lookups resolve external ids to and it is safe to cache.
type AccountRef struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	IBAN       string `json:"iban"`
	Currency   string `json:"currency"`
	CustomerID int64  `json:"customer_id"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	ExternalID string
	IBAN       string
	Balance    decimal.Decimal
	Currency   string
	CustomerID int64
}
