package transfer

import (
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitSource classifies where a recognized profit row comes from
type ProfitSource string

const (
	ProfitSourceBenefited ProfitSource = "benefited_amount" // margin net of tax
	ProfitSourceTax       ProfitSource = "tax"              // tax collected on the margin
)

// BranchProfit is a profit row recognized for the sending branch when a
// transfer completes. Rows are deleted again if the transfer is later
// cancelled or rejected.
type BranchProfit struct {
	shared.BaseEntity
	BranchID      int64
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	Currency      valueobject.Currency
	SourceType    ProfitSource
	Date          time.Time // copied from the transaction date
}

// ComputeTax derives the tax amount from the benefited portion of a transfer.
// The total amount is never taxed directly.
func ComputeTax(benefited, ratePercent decimal.Decimal) decimal.Decimal {
	return benefited.Mul(ratePercent).Div(decimal.NewFromInt(100))
}

// ProfitSplit is the outcome of profit recognition for a completed transfer
type ProfitSplit struct {
	FromBenefited decimal.Decimal
	Tax           decimal.Decimal
}

// SplitProfit divides the benefited amount into the branch margin and the
// tax portion. The two always sum to the benefited amount.
func SplitProfit(benefited, ratePercent decimal.Decimal) ProfitSplit {
	tax := ComputeTax(benefited, ratePercent)
	return ProfitSplit{
		FromBenefited: benefited.Sub(tax),
		Tax:           tax,
	}
}

// RecognizeProfits builds the profit rows for a completed transfer.
// Zero-benefit transfers yield no rows; each row is emitted only when positive.
func RecognizeProfits(t *Transaction) []*BranchProfit {
	if t.BenefitedAmount.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	branchID, ok := t.SendingBranchID()
	if !ok {
		return nil
	}

	split := SplitProfit(t.BenefitedAmount, t.TaxRate)

	var rows []*BranchProfit
	if split.FromBenefited.IsPositive() {
		rows = append(rows, newBranchProfit(branchID, t, split.FromBenefited, ProfitSourceBenefited))
	}
	if split.Tax.IsPositive() {
		rows = append(rows, newBranchProfit(branchID, t, split.Tax, ProfitSourceTax))
	}
	return rows
}

func newBranchProfit(branchID int64, t *Transaction, amount decimal.Decimal, source ProfitSource) *BranchProfit {
	return &BranchProfit{
		BaseEntity:    shared.NewBaseEntity(),
		BranchID:      branchID,
		TransactionID: t.ID,
		Amount:        amount,
		Currency:      t.Currency,
		SourceType:    source,
		Date:          t.Date,
	}
}
