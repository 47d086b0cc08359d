// Package customerservice manages business logic layer of customers.
package customerservice

import (
	"context"

	"github.com/go-petr/funds-transfer/internal/domain"
)

// Repo provides data access layer interface needed by customer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package customerservice
type Repo interface {
	GetByExternalID(ctx context.Context, externalID string) (domain.Customer, error)
}

// AccountLister lists accounts of a customer.
type AccountLister interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
}

// Service facilitates customer service layer logic.
type Service struct {
	repo     Repo
	accounts AccountLister
}

// New returns customer service struct to manage customer bussines logic.
func New(cr Repo, al AccountLister) *Service {
	return &Service{
		repo:     cr,
		accounts: al,
	}
}

// Get returns the customer with the given external id.
func (s *Service) Get(ctx context.Context, externalID string) (domain.Customer, error) {
	return s.repo.GetByExternalID(ctx, externalID)
}

// ListAccounts returns the accounts of the customer with the given external id.
func (s *Service) ListAccounts(ctx context.Context, externalID string) ([]domain.Account, error) {
	customer, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return s.accounts.ListByCustomer(ctx, customer.ID)
}
