package test

import (
	"github.com/google/uuid"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/pkg/randompkg"
)

// RandomAccount returns random account owned by the given customer.
func RandomAccount(customerID int64) domain.Account {
	return domain.Account{
		ID:         randompkg.IntBetween(1, 100),
		ExternalID: uuid.NewString(),
		IBAN:       randompkg.IBAN(),
		Balance:    randompkg.MoneyAmountBetween(1000, 10_000),
		Currency:   randompkg.Currency(),
		CustomerID: customerID,
	}
}

// RandomCustomer returns random customer.
func RandomCustomer() domain.Customer {
	return domain.Customer{
		ID:         randompkg.IntBetween(1, 100),
		ExternalID: uuid.NewString(),
		Name:       randompkg.Name(),
	}
}
