package dto

import (
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/application/settlement"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

// PartyFields carries the personal fields of a transfer participant
type PartyFields struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	GovID       string `json:"gov_id"`
	Address     string `json:"address"`
	Governorate string `json:"governorate"`
}

// ToParty converts the fields to their domain representation
func (p PartyFields) ToParty() transfer.Party {
	return transfer.Party{
		Name:        p.Name,
		Mobile:      p.Mobile,
		GovID:       p.GovID,
		Address:     p.Address,
		Governorate: p.Governorate,
	}
}

// NewPartyFields converts a domain party
func NewPartyFields(p transfer.Party) PartyFields {
	return PartyFields{
		Name:        p.Name,
		Mobile:      p.Mobile,
		GovID:       p.GovID,
		Address:     p.Address,
		Governorate: p.Governorate,
	}
}

// CreateTransferRequest carries the fields of a new transfer. Tax fields are
// not accepted: the engine derives them from the sending branch. Money fields
// are decoded straight into decimals (numbers or quoted strings both work),
// so client amounts never pass through a float64. Range checks live in the
// domain constructor, which rejects non-positive amounts.
type CreateTransferRequest struct {
	SenderName          string          `json:"sender_name" binding:"required,max=200"`
	SenderMobile        string          `json:"sender_mobile" binding:"max=30"`
	SenderGovID         string          `json:"sender_gov_id" binding:"max=50"`
	SenderAddress       string          `json:"sender_address" binding:"max=300"`
	SenderGovernorate   string          `json:"sender_governorate" binding:"max=100"`
	ReceiverName        string          `json:"receiver_name" binding:"required,max=200"`
	ReceiverMobile      string          `json:"receiver_mobile" binding:"max=30"`
	ReceiverGovID       string          `json:"receiver_gov_id" binding:"max=50"`
	ReceiverAddress     string          `json:"receiver_address" binding:"max=300"`
	ReceiverGovernorate string          `json:"receiver_governorate" binding:"max=100"`
	Amount              decimal.Decimal `json:"amount"`
	BaseAmount          decimal.Decimal `json:"base_amount"`
	BenefitedAmount     decimal.Decimal `json:"benefited_amount"`
	Currency            string          `json:"currency"`
	BranchID            *int64          `json:"branch_id"`
	DestinationBranchID int64           `json:"destination_branch_id" binding:"required"`
	EmployeeID          int64           `json:"employee_id"`
	EmployeeName        string          `json:"employee_name"`
	Date                *time.Time      `json:"date"`
}

// UpdateStatusRequest carries a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing completed cancelled rejected on_hold"`
}

// MarkReceivedRequest carries the receiver fields confirmed at pickup
type MarkReceivedRequest struct {
	ReceiverName        string `json:"receiver_name"`
	ReceiverMobile      string `json:"receiver_mobile"`
	ReceiverGovID       string `json:"receiver_gov_id"`
	ReceiverAddress     string `json:"receiver_address"`
	ReceiverGovernorate string `json:"receiver_governorate"`
	ReceivedBy          string `json:"received_by" binding:"required"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID                  string      `json:"id"`
	Sender              PartyFields `json:"sender"`
	Receiver            PartyFields `json:"receiver"`
	Amount              float64     `json:"amount"`
	BaseAmount          float64     `json:"base_amount"`
	BenefitedAmount     float64     `json:"benefited_amount"`
	TaxRate             float64     `json:"tax_rate"`
	TaxAmount           float64     `json:"tax_amount"`
	Currency            string      `json:"currency"`
	BranchID            *int64      `json:"branch_id"`
	DestinationBranchID int64       `json:"destination_branch_id"`
	Status              string      `json:"status"`
	IsReceived          bool        `json:"is_received"`
	ReceivedBy          string      `json:"received_by,omitempty"`
	ReceivedAt          *time.Time  `json:"received_at,omitempty"`
	EmployeeID          int64       `json:"employee_id"`
	EmployeeName        string      `json:"employee_name"`
	Date                time.Time   `json:"date"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// NewTransactionResponse converts a domain transaction
func NewTransactionResponse(t *transfer.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                  t.ID.String(),
		Sender:              NewPartyFields(t.Sender),
		Receiver:            NewPartyFields(t.Receiver),
		Amount:              t.Amount.InexactFloat64(),
		BaseAmount:          t.BaseAmount.InexactFloat64(),
		BenefitedAmount:     t.BenefitedAmount.InexactFloat64(),
		TaxRate:             t.TaxRate.InexactFloat64(),
		TaxAmount:           t.TaxAmount.InexactFloat64(),
		Currency:            string(t.Currency),
		BranchID:            t.BranchID,
		DestinationBranchID: t.DestinationBranchID,
		Status:              t.Status.String(),
		IsReceived:          t.IsReceived,
		ReceivedBy:          t.ReceivedBy,
		ReceivedAt:          t.ReceivedAt,
		EmployeeID:          t.EmployeeID,
		EmployeeName:        t.EmployeeName,
		Date:                t.Date,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// NewTransactionResponseList converts a slice of domain transactions
func NewTransactionResponseList(transactions []transfer.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		out[i] = NewTransactionResponse(&transactions[i])
	}
	return out
}

// ProfitRowResponse represents a profit row in API responses
type ProfitRowResponse struct {
	ID            string    `json:"id"`
	BranchID      int64     `json:"branch_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	SourceType    string    `json:"source_type"`
	Date          time.Time `json:"date"`
}

// ProfitSummaryResponse aggregates a branch's recognized profit by source
type ProfitSummaryResponse struct {
	BranchID      int64   `json:"branch_id"`
	FromBenefited float64 `json:"from_benefited"`
	FromTax       float64 `json:"from_tax"`
	Total         float64 `json:"total"`
	RowCount      int64   `json:"row_count"`
}

// NewProfitSummaryResponse converts an application-layer summary
func NewProfitSummaryResponse(s *settlement.ProfitSummary) ProfitSummaryResponse {
	return ProfitSummaryResponse{
		BranchID:      s.BranchID,
		FromBenefited: s.FromBenefited.InexactFloat64(),
		FromTax:       s.FromTax.InexactFloat64(),
		Total:         s.Total.InexactFloat64(),
		RowCount:      s.RowCount,
	}
}

// NewProfitRowResponseList converts a slice of domain profit rows
func NewProfitRowResponseList(rows []transfer.BranchProfit) []ProfitRowResponse {
	out := make([]ProfitRowResponse, len(rows))
	for i, row := range rows {
		out[i] = ProfitRowResponse{
			ID:            row.ID.String(),
			BranchID:      row.BranchID,
			TransactionID: row.TransactionID.String(),
			Amount:        row.Amount.InexactFloat64(),
			Currency:      string(row.Currency),
			SourceType:    string(row.SourceType),
			Date:          row.Date,
		}
	}
	return out
}
