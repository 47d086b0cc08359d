// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/funds-transfer/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	GetByExternalID(ctx context.Context, externalID string) (domain.Account, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
}

// TransactionRepo provides access to account ledger entries.
type TransactionRepo interface {
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Cache stores account references by external id.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.AccountRef, bool)
	Set(ctx context.Context, key string, value *domain.AccountRef)
}

// Service facilitates account service layer logic.
type Service struct {
	repo            Repo
	transactionRepo TransactionRepo
	cache           Cache
}

// New returns account service struct to manage account bussines logic.
//
// The cache is optional, without it every lookup reads the store.
func New(ar Repo, tr TransactionRepo, c Cache) *Service {
	return &Service{
		repo:            ar,
		transactionRepo: tr,
		cache:           c,
	}
}

// Get returns the account with the given external id.
func (s *Service) Get(ctx context.Context, externalID string) (domain.Account, error) {
	account, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Resolve returns the immutable reference of the account with the given external id.
func (s *Service) Resolve(ctx context.Context, externalID string) (domain.AccountRef, error) {
	if s.cache != nil {
		if ref, ok := s.cache.Get(ctx, externalID); ok {
			zerolog.Ctx(ctx).Debug().Str("account", externalID).Msg("account ref cache hit")
			return *ref, nil
		}
	}

	account, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return domain.AccountRef{}, err
	}

	ref := account.Ref()

	if s.cache != nil {
		s.cache.Set(ctx, externalID, &ref)
	}

	return ref, nil
}

// ListByCustomer returns accounts owned by the customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	accounts, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Transactions returns the ledger entries of the account with the given external id.
func (s *Service) Transactions(ctx context.Context, externalID string) ([]domain.Transaction, error) {
	ref, err := s.Resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}

	trxs, err := s.transactionRepo.ListByAccount(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	return trxs, nil
}
