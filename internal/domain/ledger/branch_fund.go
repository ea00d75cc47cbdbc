package ledger

import (
	"fmt"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// FundEntryType classifies a ledger audit entry
type FundEntryType string

const (
	FundEntryAllocation FundEntryType = "allocation" // credit
	FundEntryDeduction  FundEntryType = "deduction"  // debit
	FundEntryRefund     FundEntryType = "refund"     // credit reversing a settled transfer
	FundEntryReset      FundEntryType = "reset"      // compensating entry before zeroing a balance
)

// IsValid checks if the entry type is valid
func (t FundEntryType) IsValid() bool {
	switch t {
	case FundEntryAllocation, FundEntryDeduction, FundEntryRefund, FundEntryReset:
		return true
	}
	return false
}

// BranchFund is an append-only audit entry paired with every branch balance
// mutation. The signed Amount reflects direction: positive for credits,
// negative for debits. Entries are never edited after creation.
type BranchFund struct {
	shared.BaseEntity
	BranchID    int64
	Amount      decimal.Decimal
	EntryType   FundEntryType
	Currency    valueobject.Currency
	Description string
}

// NewFundEntry creates an audit entry for a balance mutation. The amount is
// the unsigned magnitude; the sign is derived from the entry type.
func NewFundEntry(branchID int64, amount decimal.Decimal, entryType FundEntryType, currency valueobject.Currency, description string) (*BranchFund, error) {
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Fund entry type is not valid")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Fund entry amount cannot be negative")
	}

	signed := amount
	if entryType == FundEntryDeduction || entryType == FundEntryReset {
		signed = amount.Neg()
	}

	return &BranchFund{
		BaseEntity:  shared.NewBaseEntity(),
		BranchID:    branchID,
		Amount:      signed,
		EntryType:   entryType,
		Currency:    currency,
		Description: description,
	}, nil
}

// NewTransferDeductionEntry records the sender-side debit of a transfer
func NewTransferDeductionEntry(branchID int64, amount decimal.Decimal, currency valueobject.Currency, transactionID string) (*BranchFund, error) {
	return NewFundEntry(branchID, amount, FundEntryDeduction, currency,
		fmt.Sprintf("Transfer %s sent", transactionID))
}

// NewTransferAllocationEntry records the destination-side credit of a transfer
func NewTransferAllocationEntry(branchID int64, amount decimal.Decimal, currency valueobject.Currency, transactionID string) (*BranchFund, error) {
	return NewFundEntry(branchID, amount, FundEntryAllocation, currency,
		fmt.Sprintf("Transfer %s received", transactionID))
}

// NewRefundEntry records the credit returned to the sender when a transfer
// is cancelled or rejected
func NewRefundEntry(branchID int64, amount decimal.Decimal, currency valueobject.Currency, transactionID string) (*BranchFund, error) {
	return NewFundEntry(branchID, amount, FundEntryRefund, currency,
		fmt.Sprintf("Transfer %s refunded", transactionID))
}

// NewResetEntry records the compensating debit emitted before a balance is zeroed
func NewResetEntry(branchID int64, cleared decimal.Decimal, currency valueobject.Currency) (*BranchFund, error) {
	balance, _ := valueobject.NewMoney(cleared, currency)
	return NewFundEntry(branchID, cleared, FundEntryReset, currency,
		fmt.Sprintf("Allocation reset: %s cleared", balance))
}
