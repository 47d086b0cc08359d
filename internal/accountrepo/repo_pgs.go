// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/pkg/dbpkg"
	"github.com/go-petr/funds-transfer/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
//
// Built on a *sql.Tx, every lock it takes is held until that transaction ends.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.ExternalID,
		&a.IBAN,
		&a.Balance,
		&a.Currency,
		&a.CustomerID,
	)

	return a, err
}

// mapError logs err and converts it to a domain error.
func mapError(l *zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		l.Info().Err(err).Send()
		return domain.ErrAccountNotFound
	case dbpkg.IsLockConflict(err):
		l.Warn().Err(err).Msg("account lock not acquired")
		return domain.ErrLockConflict
	case dbpkg.ConstraintOf(err) == "accounts_balance_check":
		l.Info().Err(err).Send()
		return domain.ErrInsufficientFunds
	}

	l.Error().Err(err).Send()

	return errorspkg.ErrInternal
}

const lockQuery = `
SELECT
	id, external_id, iban, balance, currency, customer_id
FROM accounts
WHERE id = $1
FOR UPDATE
`

// Lock takes an exclusive lock on the account row and returns the row read under the lock.
func (r *RepoPGS) Lock(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, lockQuery, id))
	if err != nil {
		return domain.Account{}, mapError(l, err)
	}

	return a, nil
}

const debitQuery = `
UPDATE accounts
SET balance = balance - $1
WHERE id = $2
RETURNING id, external_id, iban, balance, currency, customer_id
`

// LockAndDebit locks the account, checks that its balance covers the amount,
// subtracts the amount and returns the updated account.
func (r *RepoPGS) LockAndDebit(ctx context.Context, id int64, amount domain.Amount) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := r.Lock(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if a.Balance.LessThan(amount.Value) {
		l.Info().
			Int64("account_id", id).
			Str("balance", a.Balance.String()).
			Str("amount", amount.Value.String()).
			Msg("insufficient funds")

		return domain.Account{}, domain.ErrInsufficientFunds
	}

	a, err = scanAccount(r.db.QueryRowContext(ctx, debitQuery, amount.Value, id))
	if err != nil {
		return domain.Account{}, mapError(l, err)
	}

	return a, nil
}

const creditQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, external_id, iban, balance, currency, customer_id
`

// LockAndCredit locks the account, adds the amount and returns the updated account.
func (r *RepoPGS) LockAndCredit(ctx context.Context, id int64, amount domain.Amount) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if _, err := r.Lock(ctx, id); err != nil {
		return domain.Account{}, err
	}

	a, err := scanAccount(r.db.QueryRowContext(ctx, creditQuery, amount.Value, id))
	if err != nil {
		return domain.Account{}, mapError(l, err)
	}

	return a, nil
}

const getByExternalIDQuery = `
SELECT
	id, external_id, iban, balance, currency, customer_id
FROM accounts
WHERE external_id = $1
`

// GetByExternalID returns the account with the given external id.
func (r *RepoPGS) GetByExternalID(ctx context.Context, externalID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getByExternalIDQuery, externalID))
	if err != nil {
		return domain.Account{}, mapError(l, err)
	}

	return a, nil
}

const listByCustomerQuery = `
SELECT
	id, external_id, iban, balance, currency, customer_id
FROM accounts
WHERE customer_id = $1
ORDER BY id
`

// ListByCustomer returns all accounts of the customer.
func (r *RepoPGS) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByCustomerQuery, customerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const createQuery = `
INSERT INTO
    accounts (external_id, iban, balance, currency, customer_id)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, external_id, iban, balance, currency, customer_id
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ExternalID,
		arg.IBAN,
		arg.Balance,
		arg.Currency,
		arg.CustomerID,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		switch dbpkg.ConstraintOf(err) {
		case "accounts_customer_id_fkey":
			return domain.Account{}, domain.ErrCustomerNotFound
		case "accounts_balance_check":
			return domain.Account{}, domain.ErrInvalidAmount
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}
