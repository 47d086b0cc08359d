// Package customerrepo manages repository layer of customers.
package customerrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/pkg/dbpkg"
	"github.com/go-petr/funds-transfer/pkg/errorspkg"
)

// RepoPGS facilitates customer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns customer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    customers (external_id, name)
VALUES
    ($1, $2)
RETURNING id, external_id, name
`

// Create creates the customer and then returns it.
func (r *RepoPGS) Create(ctx context.Context, externalID, name string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, externalID, name)

	var c domain.Customer

	if err := row.Scan(&c.ID, &c.ExternalID, &c.Name); err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %v, %v)", externalID, name)
		return domain.Customer{}, errorspkg.ErrInternal
	}

	return c, nil
}

const getByExternalIDQuery = `
SELECT
	id, external_id, name
FROM customers
WHERE external_id = $1
`

// GetByExternalID returns the customer with the given external id.
func (r *RepoPGS) GetByExternalID(ctx context.Context, externalID string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByExternalIDQuery, externalID)

	var c domain.Customer

	if err := row.Scan(&c.ID, &c.ExternalID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Str("customer", externalID).Send()
			return domain.Customer{}, domain.ErrCustomerNotFound
		}

		l.Error().Err(err).Send()

		return domain.Customer{}, errorspkg.ErrInternal
	}

	return c, nil
}
