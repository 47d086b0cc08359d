// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/funds-transfer/internal/accountrepo"
	"github.com/go-petr/funds-transfer/internal/customerrepo"
	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/internal/transactionrepo"
	"github.com/go-petr/funds-transfer/pkg/dbpkg"
	"github.com/go-petr/funds-transfer/pkg/randompkg"
)

// SeedCustomer creates random Customer.
func SeedCustomer(t *testing.T, db dbpkg.SQLInterface) domain.Customer {
	t.Helper()

	customerRepo := customerrepo.NewRepoPGS(db)

	externalID, name := uuid.NewString(), randompkg.Name()

	customer, err := customerRepo.Create(context.Background(), externalID, name)
	if err != nil {
		t.Fatalf("customerRepo.Create(context.Background(), %v, %v) returned error: %v", externalID, name, err)
	}

	return customer
}

// SeedAccount creates Account of the customer with the given balance and currency.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, customerID int64, balance, currency string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)

	arg := domain.CreateAccountParams{
		ExternalID: uuid.NewString(),
		IBAN:       randompkg.IBAN(),
		Balance:    decimal.RequireFromString(balance),
		Currency:   currency,
		CustomerID: customerID,
	}

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedCustomerWithAccount creates random Customer owning one Account with the given balance and currency.
func SeedCustomerWithAccount(t *testing.T, db dbpkg.SQLInterface, balance, currency string) domain.Account {
	t.Helper()

	customer := SeedCustomer(t, db)

	return SeedAccount(t, db, customer.ID, balance, currency)
}

// SeedTransaction records a transaction of the account.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, account domain.Account, amount string, dir domain.Direction) domain.Transaction {
	t.Helper()

	transactionRepo := transactionrepo.NewRepoPGS(db)

	arg := domain.Amount{Value: decimal.RequireFromString(amount), Currency: account.Currency}

	tr, err := transactionRepo.Record(context.Background(), arg, account.ID, dir)
	if err != nil {
		t.Fatalf("transactionRepo.Record(context.Background(), %+v, %v, %v) returned error: %v",
			arg, account.ID, dir, err)
	}

	return tr
}
