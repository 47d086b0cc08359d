// Package transactionrepo manages repository layer of account transactions.
package transactionrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/pkg/dbpkg"
	"github.com/go-petr/funds-transfer/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.ExternalID,
		&t.Amount,
		&t.Currency,
		&t.CreatedAt,
		&t.Direction,
		&t.AccountID,
	)

	t.CreatedAt = t.CreatedAt.UTC()

	return t, err
}

const recordQuery = `
INSERT INTO
    account_transactions (external_id, amount, currency, date_time, type, account_id)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, external_id, amount, currency, date_time, type, account_id
`

// Record appends a transaction of the given direction to the account history
// and returns it with a fresh external id and the current UTC time.
func (r *RepoPGS) Record(ctx context.Context, amount domain.Amount, accountID int64, dir domain.Direction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, recordQuery,
		uuid.NewString(),
		amount.Value,
		amount.Currency,
		time.Now().UTC(),
		dir,
		accountID,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Record(ctx, %v %v, %v, %v)", amount.Value, amount.Currency, accountID, dir)

		switch dbpkg.ConstraintOf(err) {
		case "account_transactions_account_id_fkey":
			return domain.Transaction{}, domain.ErrAccountNotFound
		case "account_transactions_amount_check":
			return domain.Transaction{}, domain.ErrInvalidAmount
		}

		if dbpkg.IsLockConflict(err) {
			return domain.Transaction{}, domain.ErrLockConflict
		}

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

const listByAccountQuery = `
SELECT
	id, external_id, amount, currency, date_time, type, account_id
FROM account_transactions
WHERE account_id = $1
ORDER BY date_time DESC, id DESC
`

// ListByAccount returns the transaction history of the account, newest first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
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
