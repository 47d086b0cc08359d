// Package transferrepo manages the unit of work of a transfer.
package transferrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/funds-transfer/internal/accountrepo"
	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/internal/transactionrepo"
	"github.com/go-petr/funds-transfer/pkg/dbpkg"
	"github.com/go-petr/funds-transfer/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	conn        *sql.DB
	lockTimeout time.Duration
}

// NewRepoPGS returns transfer RepoPGS with connection to start transactions.
//
// A positive lockTimeout bounds every row lock wait inside a transfer.
func NewRepoPGS(db *sql.DB, lockTimeout time.Duration) *RepoPGS {
	return &RepoPGS{
		conn:        db,
		lockTimeout: lockTimeout,
	}
}

// Transfer moves the amount from the debtor to the beneficiary account.
//
// It debits and credits the accounts and records both ledger entries
// within a single db transaction. Nothing is applied unless it returns nil error.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferResult

	if !arg.Amount.FitsScale() {
		l.Info().Str("amount", arg.Amount.Value.String()).Msg("amount exceeds stored scale")
		return result, domain.ErrAmountScale
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	if r.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			l.Error().Err(err).Send()
			return result, errorspkg.ErrInternal
		}
	}

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	// To avoid deadlocks lock accounts in consistent id order
	first, second := arg.DebtorID, arg.BeneficiaryID
	if first > second {
		first, second = second, first
	}

	if _, err := accountRepo.Lock(ctx, first); err != nil {
		return domain.TransferResult{}, err
	}

	if _, err := accountRepo.Lock(ctx, second); err != nil {
		return domain.TransferResult{}, err
	}

	result.DebtorAccount, err = accountRepo.LockAndDebit(ctx, arg.DebtorID, arg.Amount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	debit, err := transactionRepo.Record(ctx, arg.Amount, arg.DebtorID, domain.Debit)
	if err != nil {
		return domain.TransferResult{}, err
	}

	result.BeneficiaryAccount, err = accountRepo.LockAndCredit(ctx, arg.BeneficiaryID, arg.Amount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	credit, err := transactionRepo.Record(ctx, arg.Amount, arg.BeneficiaryID, domain.Credit)
	if err != nil {
		return domain.TransferResult{}, err
	}

	result.Transactions = []domain.Transaction{debit, credit}

	if err := tx.Commit(); err != nil {
		if dbpkg.IsLockConflict(err) {
			l.Warn().Err(err).Msg("transfer commit aborted")
			return domain.TransferResult{}, domain.ErrLockConflict
		}

		l.Error().Err(err).Send()

		return domain.TransferResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
