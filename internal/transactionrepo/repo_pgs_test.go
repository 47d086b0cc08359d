//go:build integration

package transactionrepo_test

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/internal/integrationtest"
	"github.com/go-petr/funds-transfer/internal/test"
	"github.com/go-petr/funds-transfer/internal/transactionrepo"
	"github.com/go-petr/funds-transfer/pkg/currencypkg"
)

const dbDriver = integrationtest.DBDriver

var dbSource string

func TestMain(m *testing.M) {
	source, terminate, err := integrationtest.StartPostgres(context.Background())
	if err != nil {
		log.Fatal("cannot start postgres:", err)
	}

	dbSource = source

	code := m.Run()

	terminate()
	os.Exit(code)
}

func TestRecord(t *testing.T) {
	testCases := []struct {
		name      string
		accountID func(tx *sql.Tx) int64
		amount    string
		direction domain.Direction
		wantErr   error
	}{
		{
			name: "Debit",
			accountID: func(tx *sql.Tx) int64 {
				return test.SeedCustomerWithAccount(t, tx, "100", currencypkg.GBP).ID
			},
			amount:    "100.00",
			direction: domain.Debit,
		},
		{
			name: "Credit",
			accountID: func(tx *sql.Tx) int64 {
				return test.SeedCustomerWithAccount(t, tx, "100", currencypkg.GBP).ID
			},
			amount:    "0.01",
			direction: domain.Credit,
		},
		{
			name: "ConstraintViolation:account_transactions_account_id_fkey",
			accountID: func(tx *sql.Tx) int64 {
				return -100500
			},
			amount:    "1",
			direction: domain.Credit,
			wantErr:   domain.ErrAccountNotFound,
		},
		{
			name: "ConstraintViolation:account_transactions_amount_check",
			accountID: func(tx *sql.Tx) int64 {
				return test.SeedCustomerWithAccount(t, tx, "100", currencypkg.GBP).ID
			},
			amount:    "0",
			direction: domain.Debit,
			wantErr:   domain.ErrInvalidAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			accountID := tc.accountID(tx)
			transactionRepo := transactionrepo.NewRepoPGS(tx)

			amount := domain.Amount{Value: decimal.RequireFromString(tc.amount), Currency: currencypkg.GBP}

			got, err := transactionRepo.Record(context.Background(), amount, accountID, tc.direction)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("transactionRepo.Record(context.Background(), %v, %v, %v) returned error: %v, want %v",
					amount.Value, accountID, tc.direction, err, tc.wantErr)
			}

			if tc.wantErr != nil {
				return
			}

			want := domain.Transaction{
				Amount:    amount.Value,
				Currency:  amount.Currency,
				CreatedAt: time.Now().UTC(),
				Direction: tc.direction,
				AccountID: accountID,
			}

			ignoreFields := cmpopts.IgnoreFields(domain.Transaction{}, "ID", "ExternalID")
			compareCreatedAt := cmpopts.EquateApproxTime(5 * time.Second)
			if diff := cmp.Diff(want, got, ignoreFields, compareCreatedAt); diff != "" {
				t.Errorf("transactionRepo.Record(context.Background(), %v, %v, %v) returned unexpected difference (-want +got):\n%s",
					amount.Value, accountID, tc.direction, diff)
			}

			if got.ID == 0 {
				t.Error("got.ID = 0, want non-zero")
			}

			if _, err := uuid.Parse(got.ExternalID); err != nil {
				t.Errorf("got.ExternalID = %q, want uuid: %v", got.ExternalID, err)
			}
		})
	}
}

func TestRecordFreshExternalIDs(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	account := test.SeedCustomerWithAccount(t, tx, "100", currencypkg.GBP)

	first := test.SeedTransaction(t, tx, account, "10", domain.Debit)
	second := test.SeedTransaction(t, tx, account, "10", domain.Debit)

	if first.ExternalID == second.ExternalID {
		t.Errorf("two records share external id %q", first.ExternalID)
	}

	if second.ID <= first.ID {
		t.Errorf("second.ID = %v, want greater than first.ID = %v", second.ID, first.ID)
	}
}

func TestListByAccount(t *testing.T) {
	testCases := []struct {
		name            string
		wantAccountTrxs func(tx *sql.Tx) (int64, []domain.Transaction)
	}{
		{
			name: "NewestFirst",
			wantAccountTrxs: func(tx *sql.Tx) (int64, []domain.Transaction) {
				account := test.SeedCustomerWithAccount(t, tx, "100", currencypkg.GBP)
				other := test.SeedCustomerWithAccount(t, tx, "100", currencypkg.GBP)

				debit := test.SeedTransaction(t, tx, account, "15.50", domain.Debit)
				test.SeedTransaction(t, tx, other, "15.50", domain.Credit)
				credit := test.SeedTransaction(t, tx, account, "3", domain.Credit)

				return account.ID, []domain.Transaction{credit, debit}
			},
		},
		{
			name: "NoTransactions",
			wantAccountTrxs: func(tx *sql.Tx) (int64, []domain.Transaction) {
				account := test.SeedCustomerWithAccount(t, tx, "100", currencypkg.GBP)
				return account.ID, []domain.Transaction{}
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			accountID, want := tc.wantAccountTrxs(tx)
			transactionRepo := transactionrepo.NewRepoPGS(tx)

			got, err := transactionRepo.ListByAccount(context.Background(), accountID)
			if err != nil {
				t.Fatalf("transactionRepo.ListByAccount(context.Background(), %v) returned error: %v", accountID, err)
			}

			compareCreatedAt := cmpopts.EquateApproxTime(time.Millisecond)
			if diff := cmp.Diff(want, got, compareCreatedAt); diff != "" {
				t.Errorf("transactionRepo.ListByAccount(context.Background(), %v) returned unexpected difference (-want +got):\n%s",
					accountID, diff)
			}
		})
	}
}
