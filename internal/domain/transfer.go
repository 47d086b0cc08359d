package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/go-petr/funds-transfer/pkg/errorspkg"
)

var (
	// ErrInvalidAmount indicates a zero or negative amount.
	ErrInvalidAmount = errorspkg.New(errorspkg.KindInvalidRequest, "amount must be positive")
	// ErrAmountScale indicates an amount with more decimal places than balances are stored with.
	ErrAmountScale = errorspkg.New(errorspkg.KindInvalidRequest,
		fmt.Sprintf("amount must have at most %d decimal places", AmountScale))
	// ErrUnsupportedCurrency indicates an amount in a currency the system does not operate.
	ErrUnsupportedCurrency = errorspkg.New(errorspkg.KindInvalidRequest, "currency is not supported")
	// ErrSameAccount indicates a transfer from an account to itself.
	ErrSameAccount = errorspkg.New(errorspkg.KindInvalidRequest, "debtor and beneficiary accounts must differ")
	// ErrDebtorNotFound indicates that the debtor account is not found.
	ErrDebtorNotFound = errorspkg.New(errorspkg.KindNotFound, "debtor account not found")
	// ErrBeneficiaryNotFound indicates that the beneficiary account is not found.
	// The beneficiary id comes from the request body, so this is a bad request.
	ErrBeneficiaryNotFound = errorspkg.New(errorspkg.KindInvalidRequest, "beneficiary account not found")
	// ErrAmountCurrencyMismatch indicates that the amount is not in the debtor account currency.
	ErrAmountCurrencyMismatch = errorspkg.New(errorspkg.KindInvalidRequest,
		"transfer currency must match the debtor account currency")
	// ErrCurrencyMismatch indicates that transfer accounts have different currencies.
	ErrCurrencyMismatch = errorspkg.New(errorspkg.KindInvalidRequest,
		"debtor and beneficiary accounts must have the same currency")
	// ErrAccountInUse indicates that one of the accounts is locked by another transfer.
	ErrAccountInUse = errorspkg.New(errorspkg.KindConflict, "account in use, retry later")
	// ErrTransferFailed indicates an unexpected failure; nothing was applied.
	ErrTransferFailed = errorspkg.New(errorspkg.KindTransferFailed, "transfer failed, operation not performed")
)

// AmountScale is the number of decimal places balances and ledger amounts are stored with.
const AmountScale = 4

// Amount is a money value in a currency.
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// FitsScale reports whether the value is representable with AmountScale decimal places.
// Trailing zeros do not count, so 1.50000 fits.
func (a Amount) FitsScale() bool {
	return a.Value.Equal(a.Value.Truncate(AmountScale))
}

// TransferRequest is what a caller asks to move out of the debtor account.
type TransferRequest struct {
	Amount               Amount
	BeneficiaryAccountID string
}

// TransferParams is the input of the transfer unit of work, with accounts already resolved.
type TransferParams struct {
	DebtorID      int64
	BeneficiaryID int64
	Amount        Amount
}

// TransferResult is the state of both accounts and the two ledger entries after a transfer.
type TransferResult struct {
	DebtorAccount      Account
	BeneficiaryAccount Account
	Transactions       []Transaction // debit, credit
}

// BeneficiaryView is the beneficiary account as shown to the debtor.
type BeneficiaryView struct {
	ExternalID string `json:"id"`
	IBAN       string `json:"ibanNumber"`
	Currency   string `json:"currency"`
}

// TransferView is the public representation of a TransferResult.
type TransferView struct {
	DebtorAccount      Account         `json:"debtorAccount"`
	BeneficiaryAccount BeneficiaryView `json:"beneficiaryAccount"`
	Transactions       []Transaction   `json:"transactions"`
}

// Public strips the beneficiary account down to what the debtor may see.
func (r TransferResult) Public() TransferView {
	return TransferView{
		DebtorAccount: r.DebtorAccount,
		BeneficiaryAccount: BeneficiaryView{
			ExternalID: r.BeneficiaryAccount.ExternalID,
			IBAN:       r.BeneficiaryAccount.IBAN,
			Currency:   r.BeneficiaryAccount.Currency,
		},
		Transactions: r.Transactions,
	}
}
