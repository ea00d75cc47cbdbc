package dto

import (
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CreateBranchRequest carries the fields of a new branch
type CreateBranchRequest struct {
	Code        string  `json:"code" binding:"required,max=50"`
	Name        string  `json:"name" binding:"required,max=200"`
	Location    string  `json:"location" binding:"max=200"`
	Governorate string  `json:"governorate" binding:"max=100"`
	TaxRate     float64 `json:"tax_rate" binding:"min=0,max=100"`
}

// SetTaxRateRequest updates a branch tax rate
type SetTaxRateRequest struct {
	TaxRate float64 `json:"tax_rate" binding:"min=0,max=100"`
}

// AllocateFundsRequest carries a manual balance adjustment. The amount is
// decoded straight into a decimal so client values never pass through a
// float64; the allocation service rejects non-positive amounts.
type AllocateFundsRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=allocation deduction"`
	Currency    string          `json:"currency" binding:"required,oneof=SYP USD"`
	Description string          `json:"description"`
}

// BranchResponse represents a branch in API responses.
// AllocatedAmount mirrors the SYP balance for legacy readers.
type BranchResponse struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Governorate     string    `json:"governorate"`
	Role            string    `json:"role"`
	AllocatedSYP    float64   `json:"allocated_amount_syp"`
	AllocatedUSD    float64   `json:"allocated_amount_usd"`
	AllocatedAmount float64   `json:"allocated_amount"`
	TaxRate         float64   `json:"tax_rate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewBranchResponse converts a domain branch to its API representation
func NewBranchResponse(b *ledger.Branch) BranchResponse {
	return BranchResponse{
		ID:              b.ID,
		Code:            b.Code,
		Name:            b.Name,
		Location:        b.Location,
		Governorate:     b.Governorate,
		Role:            string(b.Role),
		AllocatedSYP:    b.AllocatedSYP.InexactFloat64(),
		AllocatedUSD:    b.AllocatedUSD.InexactFloat64(),
		AllocatedAmount: b.AllocatedAmount().InexactFloat64(),
		TaxRate:         b.TaxRate.InexactFloat64(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// NewBranchResponseList converts a slice of domain branches
func NewBranchResponseList(branches []ledger.Branch) []BranchResponse {
	out := make([]BranchResponse, len(branches))
	for i := range branches {
		out[i] = NewBranchResponse(&branches[i])
	}
	return out
}

// FundEntryResponse represents an audit entry in API responses
type FundEntryResponse struct {
	ID          string    `json:"id"`
	BranchID    int64     `json:"branch_id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFundEntryResponse converts a domain fund entry
func NewFundEntryResponse(f *ledger.BranchFund) FundEntryResponse {
	return FundEntryResponse{
		ID:          f.ID.String(),
		BranchID:    f.BranchID,
		Amount:      f.Amount.InexactFloat64(),
		Type:        string(f.EntryType),
		Currency:    string(f.Currency),
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
}

// NewFundEntryResponseList converts a slice of domain fund entries
func NewFundEntryResponseList(entries []ledger.BranchFund) []FundEntryResponse {
	out := make([]FundEntryResponse, len(entries))
	for i := range entries {
		out[i] = NewFundEntryResponse(&entries[i])
	}
	return out
}
