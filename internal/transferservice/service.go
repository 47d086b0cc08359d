// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/pkg/currencypkg"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error)
}

// AccountResolver resolves external account ids.
type AccountResolver interface {
	Resolve(ctx context.Context, externalID string) (domain.AccountRef, error)
}

// Notifier is told about every committed transfer.
type Notifier interface {
	TransferCompleted(ctx context.Context, result domain.TransferResult) error
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo          Repo
	accounts      AccountResolver
	notifier      Notifier
	notifyTimeout time.Duration
}

const defaultNotifyTimeout = time.Second

// New returns transfer service struct to manage transfer bussines logic.
//
// The notifier is optional.
func New(tr Repo, ar AccountResolver, n Notifier) *Service {
	return &Service{
		repo:          tr,
		accounts:      ar,
		notifier:      n,
		notifyTimeout: defaultNotifyTimeout,
	}
}

// Transfer moves the requested amount from the debtor account to the beneficiary account.
//
// The debtor is resolved first, then the request is validated before any write.
// Either both accounts and both ledger entries are updated or nothing is.
func (s *Service) Transfer(ctx context.Context, debtorExternalID string, req domain.TransferRequest) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx).With().
		Str("debtor", debtorExternalID).
		Str("beneficiary", req.BeneficiaryAccountID).
		Str("amount", req.Amount.Value.String()).
		Str("currency", req.Amount.Currency).
		Logger()

	debtor, err := s.accounts.Resolve(ctx, debtorExternalID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			l.Info().Err(err).Send()
			return domain.TransferResult{}, domain.ErrDebtorNotFound
		}

		l.Error().Err(err).Msg("debtor lookup failed")

		return domain.TransferResult{}, domain.ErrTransferFailed
	}

	if err := validRequest(debtorExternalID, req); err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	if debtor.Currency != req.Amount.Currency {
		l.Info().Str("debtor_currency", debtor.Currency).Msg("amount currency mismatch")
		return domain.TransferResult{}, domain.ErrAmountCurrencyMismatch
	}

	beneficiary, err := s.accounts.Resolve(ctx, req.BeneficiaryAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			l.Info().Err(err).Send()
			return domain.TransferResult{}, domain.ErrBeneficiaryNotFound
		}

		l.Error().Err(err).Msg("beneficiary lookup failed")

		return domain.TransferResult{}, domain.ErrTransferFailed
	}

	if debtor.Currency != beneficiary.Currency {
		l.Info().Str("beneficiary_currency", beneficiary.Currency).Msg("account currency mismatch")
		return domain.TransferResult{}, domain.ErrCurrencyMismatch
	}

	arg := domain.TransferParams{
		DebtorID:      debtor.ID,
		BeneficiaryID: beneficiary.ID,
		Amount:        req.Amount,
	}

	result, err := s.repo.Transfer(ctx, arg)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientFunds):
			l.Info().Err(err).Send()
			return domain.TransferResult{}, domain.ErrInsufficientFunds
		case errors.Is(err, domain.ErrAmountScale):
			l.Info().Err(err).Send()
			return domain.TransferResult{}, domain.ErrAmountScale
		case errors.Is(err, domain.ErrLockConflict):
			l.Warn().Err(err).Send()
			return domain.TransferResult{}, domain.ErrAccountInUse
		}

		l.Error().Err(err).Int64("debtor_id", debtor.ID).Int64("beneficiary_id", beneficiary.ID).Msg("transfer failed")

		return domain.TransferResult{}, domain.ErrTransferFailed
	}

	l.Info().Msg("transfer completed")

	if s.notifier != nil {
		s.notify(ctx, l, result)
	}

	return result, nil
}

// notify runs detached from the request cancellation and is bounded by notifyTimeout.
func (s *Service) notify(ctx context.Context, l zerolog.Logger, result domain.TransferResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	if err := s.notifier.TransferCompleted(ctx, result); err != nil {
		l.Warn().Err(err).Msg("transfer notification failed")
	}
}

func validRequest(debtorExternalID string, req domain.TransferRequest) error {
	if req.Amount.Value.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	if !req.Amount.FitsScale() {
		return domain.ErrAmountScale
	}

	if !currencypkg.IsSupportedCurrency(req.Amount.Currency) {
		return domain.ErrUnsupportedCurrency
	}

	if debtorExternalID == req.BeneficiaryAccountID {
		return domain.ErrSameAccount
	}

	return nil
}
