package domain

import "github.com/go-petr/funds-transfer/pkg/errorspkg"

// ErrCustomerNotFound indicates that the customer is not found.
var ErrCustomerNotFound = errorspkg.New(errorspkg.KindNotFound, "customer not found")

// Customer owns accounts.
type Customer struct {
	ID         int64  `json:"-"`
	ExternalID string `json:"id"`
	Name       string `json:"name"`
}
