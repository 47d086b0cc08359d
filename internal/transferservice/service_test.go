package transferservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/internal/test"
	"github.com/go-petr/funds-transfer/pkg/currencypkg"
	"github.com/go-petr/funds-transfer/pkg/errorspkg"
)

func gbpAccount(balance string) domain.Account {
	a := test.RandomAccount(1)
	a.Balance = decimal.RequireFromString(balance)
	a.Currency = currencypkg.GBP

	return a
}

func TestTransfer(t *testing.T) {
	debtor := gbpAccount("150")
	beneficiary := gbpAccount("20")
	beneficiary.ID = debtor.ID + 1

	euroAccount := test.RandomAccount(2)
	euroAccount.Currency = currencypkg.EUR

	amount := domain.Amount{Value: decimal.NewFromInt(100), Currency: currencypkg.GBP}

	wantParams := domain.TransferParams{DebtorID: debtor.ID, BeneficiaryID: beneficiary.ID, Amount: amount}

	debtorAfter := debtor
	debtorAfter.Balance = decimal.NewFromInt(50)
	beneficiaryAfter := beneficiary
	beneficiaryAfter.Balance = decimal.NewFromInt(120)

	testResult := domain.TransferResult{
		DebtorAccount:      debtorAfter,
		BeneficiaryAccount: beneficiaryAfter,
		Transactions: []domain.Transaction{
			{ExternalID: uuid.NewString(), Amount: amount.Value, Currency: amount.Currency, Direction: domain.Debit, AccountID: debtor.ID},
			{ExternalID: uuid.NewString(), Amount: amount.Value, Currency: amount.Currency, Direction: domain.Credit, AccountID: beneficiary.ID},
		},
	}

	type input struct {
		debtorID string
		req      domain.TransferRequest
	}

	validInput := input{
		debtorID: debtor.ExternalID,
		req:      domain.TransferRequest{Amount: amount, BeneficiaryAccountID: beneficiary.ExternalID},
	}

	testCases := []struct {
		name       string
		input      input
		buildStubs func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier)
		wantErr    error
	}{
		{
			name:  "OK",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				gomock.InOrder(
					accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil),
					accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(1).Return(beneficiary.Ref(), nil),
					repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(wantParams)).Times(1).Return(testResult, nil),
					notifier.EXPECT().TransferCompleted(gomock.Any(), gomock.Eq(testResult)).Times(1).Return(nil),
				)
			},
		},
		{
			name:  "NotifierErrorIgnored",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(1).Return(beneficiary.Ref(), nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(wantParams)).Times(1).Return(testResult, nil)
				notifier.EXPECT().TransferCompleted(gomock.Any(), gomock.Any()).Times(1).Return(errors.New("stream unavailable"))
			},
		},
		{
			name: "ZeroAmount",
			input: input{
				debtorID: debtor.ExternalID,
				req: domain.TransferRequest{
					Amount:               domain.Amount{Value: decimal.Zero, Currency: currencypkg.GBP},
					BeneficiaryAccountID: beneficiary.ExternalID,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "NegativeAmount",
			input: input{
				debtorID: debtor.ExternalID,
				req: domain.TransferRequest{
					Amount:               domain.Amount{Value: decimal.NewFromInt(-100), Currency: currencypkg.GBP},
					BeneficiaryAccountID: beneficiary.ExternalID,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "SubScaleAmount",
			input: input{
				debtorID: debtor.ExternalID,
				req: domain.TransferRequest{
					Amount:               domain.Amount{Value: decimal.RequireFromString("0.00005"), Currency: currencypkg.GBP},
					BeneficiaryAccountID: beneficiary.ExternalID,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAmountScale,
		},
		{
			name:  "AmountScaleRejectedByRepo",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(1).Return(beneficiary.Ref(), nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(wantParams)).Times(1).
					Return(domain.TransferResult{}, domain.ErrAmountScale)
			},
			wantErr: domain.ErrAmountScale,
		},
		{
			name: "UnsupportedCurrency",
			input: input{
				debtorID: debtor.ExternalID,
				req: domain.TransferRequest{
					Amount:               domain.Amount{Value: decimal.NewFromInt(1), Currency: "XXX"},
					BeneficiaryAccountID: beneficiary.ExternalID,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrUnsupportedCurrency,
		},
		{
			name: "SameAccount",
			input: input{
				debtorID: debtor.ExternalID,
				req:      domain.TransferRequest{Amount: amount, BeneficiaryAccountID: debtor.ExternalID},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrSameAccount,
		},
		{
			name:  "DebtorNotFound",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).
					Return(domain.AccountRef{}, domain.ErrAccountNotFound)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrDebtorNotFound,
		},
		{
			name: "DebtorNotFoundBeforeValidation",
			input: input{
				debtorID: debtor.ExternalID,
				req: domain.TransferRequest{
					Amount:               domain.Amount{Value: decimal.NewFromInt(1), Currency: "XXX"},
					BeneficiaryAccountID: debtor.ExternalID,
				},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).
					Return(domain.AccountRef{}, domain.ErrAccountNotFound)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrDebtorNotFound,
		},
		{
			name:  "DebtorLookupFailed",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).
					Return(domain.AccountRef{}, errorspkg.ErrInternal)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrTransferFailed,
		},
		{
			name: "AmountCurrencyMismatch",
			input: input{
				debtorID: euroAccount.ExternalID,
				req:      domain.TransferRequest{Amount: amount, BeneficiaryAccountID: beneficiary.ExternalID},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(euroAccount.ExternalID)).Times(1).Return(euroAccount.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(0)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAmountCurrencyMismatch,
		},
		{
			name:  "BeneficiaryNotFound",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(1).
					Return(domain.AccountRef{}, domain.ErrAccountNotFound)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrBeneficiaryNotFound,
		},
		{
			name: "AccountCurrencyMismatch",
			input: input{
				debtorID: debtor.ExternalID,
				req:      domain.TransferRequest{Amount: amount, BeneficiaryAccountID: euroAccount.ExternalID},
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(euroAccount.ExternalID)).Times(1).Return(euroAccount.Ref(), nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrCurrencyMismatch,
		},
		{
			name:  "InsufficientFunds",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(1).Return(beneficiary.Ref(), nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(wantParams)).Times(1).
					Return(domain.TransferResult{}, domain.ErrInsufficientFunds)
				notifier.EXPECT().TransferCompleted(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:  "LockConflict",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(1).Return(beneficiary.Ref(), nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(wantParams)).Times(1).
					Return(domain.TransferResult{}, domain.ErrLockConflict)
				notifier.EXPECT().TransferCompleted(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAccountInUse,
		},
		{
			name:  "UnexpectedFailure",
			input: validInput,
			buildStubs: func(repo *MockRepo, accounts *MockAccountResolver, notifier *MockNotifier) {
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Times(1).Return(debtor.Ref(), nil)
				accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Times(1).Return(beneficiary.Ref(), nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(wantParams)).Times(1).
					Return(domain.TransferResult{}, errorspkg.ErrInternal)
				notifier.EXPECT().TransferCompleted(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrTransferFailed,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accounts := NewMockAccountResolver(ctrl)
			notifier := NewMockNotifier(ctrl)
			tc.buildStubs(repo, accounts, notifier)

			service := New(repo, accounts, notifier)

			got, err := service.Transfer(context.Background(), tc.input.debtorID, tc.input.req)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, got)

				return
			}

			require.NoError(t, err)
			require.Equal(t, testResult, got)
		})
	}
}

func TestTransferWithoutNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	debtor := gbpAccount("10")
	beneficiary := gbpAccount("10")
	beneficiary.ID = debtor.ID + 1

	repo := NewMockRepo(ctrl)
	accounts := NewMockAccountResolver(ctrl)

	accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Return(debtor.Ref(), nil)
	accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Return(beneficiary.Ref(), nil)
	repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(domain.TransferResult{DebtorAccount: debtor}, nil)

	service := New(repo, accounts, nil)

	req := domain.TransferRequest{
		Amount:               domain.Amount{Value: decimal.NewFromInt(5), Currency: currencypkg.GBP},
		BeneficiaryAccountID: beneficiary.ExternalID,
	}

	got, err := service.Transfer(context.Background(), debtor.ExternalID, req)
	require.NoError(t, err)
	require.Equal(t, debtor, got.DebtorAccount)
}

func TestTransferNotifiesAfterRequestCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	debtor := gbpAccount("10")
	beneficiary := gbpAccount("10")
	beneficiary.ID = debtor.ID + 1

	repo := NewMockRepo(ctrl)
	accounts := NewMockAccountResolver(ctrl)
	notifier := NewMockNotifier(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(debtor.ExternalID)).Return(debtor.Ref(), nil)
	accounts.EXPECT().Resolve(gomock.Any(), gomock.Eq(beneficiary.ExternalID)).Return(beneficiary.Ref(), nil)
	repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.TransferParams) (domain.TransferResult, error) {
			// The client goes away right after the commit.
			cancel()
			return domain.TransferResult{DebtorAccount: debtor}, nil
		})
	notifier.EXPECT().TransferCompleted(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.TransferResult) error {
			require.NoError(t, ctx.Err())

			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			require.WithinDuration(t, time.Now().Add(defaultNotifyTimeout), deadline, defaultNotifyTimeout)

			return nil
		})

	service := New(repo, accounts, notifier)

	req := domain.TransferRequest{
		Amount:               domain.Amount{Value: decimal.NewFromInt(5), Currency: currencypkg.GBP},
		BeneficiaryAccountID: beneficiary.ExternalID,
	}

	got, err := service.Transfer(ctx, debtor.ExternalID, req)
	require.NoError(t, err)
	require.Equal(t, debtor, got.DebtorAccount)
}
