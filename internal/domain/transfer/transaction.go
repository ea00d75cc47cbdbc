package transfer

import (
	"fmt"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewTransactionNotFoundError reports a missing transaction
func NewTransactionNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError("TRANSACTION_NOT_FOUND", fmt.Sprintf("Transaction %s not found", id))
}

// NewSelfTransferError reports a transfer whose destination is its own
// sending branch. Settling one would debit and credit the same ledger row.
func NewSelfTransferError() *shared.DomainError {
	return shared.NewDomainError("INVALID_INPUT", "Destination branch must differ from the sending branch")
}

// Party holds the personal fields of a transfer participant.
// Receiver fields may be completed later, at receipt time.
type Party struct {
	Name        string
	Mobile      string
	GovID       string
	Address     string
	Governorate string
}

// Transaction is the transfer aggregate. It is immutable in identity and
// money fields once created; only workflow fields change afterwards.
type Transaction struct {
	shared.BaseEntity

	Sender   Party
	Receiver Party

	Amount          decimal.Decimal
	BaseAmount      decimal.Decimal
	BenefitedAmount decimal.Decimal
	TaxRate         decimal.Decimal // percent, snapshotted from the sending branch at creation
	TaxAmount       decimal.Decimal
	Currency        valueobject.Currency

	// BranchID is the sending branch; nil when the transfer originates from
	// the System Manager without a branch record.
	BranchID            *int64
	DestinationBranchID int64

	Status     Status
	IsReceived bool
	ReceivedBy string
	ReceivedAt *time.Time

	EmployeeID   int64
	EmployeeName string
	Date         time.Time
}

// NewTransactionParams carries the caller-supplied fields of a new transfer.
// Tax fields are intentionally absent: the engine derives them from the
// sending branch and never trusts client-supplied values.
type NewTransactionParams struct {
	Sender              Party
	Receiver            Party
	Amount              decimal.Decimal
	BaseAmount          decimal.Decimal
	BenefitedAmount     decimal.Decimal
	Currency            valueobject.Currency
	BranchID            *int64
	DestinationBranchID int64
	EmployeeID          int64
	EmployeeName        string
	Date                time.Time
}

// NewTransaction validates and creates a transfer in its initial state.
// taxRate is the sending branch's configured rate at creation time.
func NewTransaction(p NewTransactionParams, taxRate decimal.Decimal) (*Transaction, error) {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transfer amount must be positive")
	}
	if p.BaseAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Base amount cannot be negative")
	}
	if p.BenefitedAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Benefited amount cannot be negative")
	}
	if p.Currency == "" {
		p.Currency = valueobject.DefaultCurrency
	}
	if !p.Currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported transfer currency")
	}
	if p.Sender.Name == "" {
		return nil, shared.NewDomainError("INVALID_SENDER", "Sender name cannot be empty")
	}
	if p.BranchID != nil && *p.BranchID == p.DestinationBranchID {
		return nil, NewSelfTransferError()
	}
	if taxRate.IsNegative() {
		taxRate = decimal.Zero
	}

	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &Transaction{
		BaseEntity:          shared.NewBaseEntity(),
		Sender:              p.Sender,
		Receiver:            p.Receiver,
		Amount:              p.Amount,
		BaseAmount:          p.BaseAmount,
		BenefitedAmount:     p.BenefitedAmount,
		TaxRate:             taxRate,
		TaxAmount:           ComputeTax(p.BenefitedAmount, taxRate),
		Currency:            p.Currency,
		BranchID:            p.BranchID,
		DestinationBranchID: p.DestinationBranchID,
		Status:              StatusProcessing,
		IsReceived:          false,
		EmployeeID:          p.EmployeeID,
		EmployeeName:        p.EmployeeName,
		Date:                date,
	}, nil
}

// IsSystemManagerTransfer reports whether the transfer originates from head
// office: no sending branch, the reserved branch id, or the sentinel name.
func (t *Transaction) IsSystemManagerTransfer() bool {
	if t.EmployeeName == ledger.SystemManagerName {
		return true
	}
	return t.BranchID == nil || *t.BranchID == ledger.SystemManagerBranchID
}

// SendingBranchID returns the sending branch id and whether a real branch
// record backs it
func (t *Transaction) SendingBranchID() (int64, bool) {
	if t.BranchID == nil {
		return 0, false
	}
	return *t.BranchID, true
}

// TransitionTo moves the transaction to a new status and returns the
// transition pair driving settlement side effects
func (t *Transaction) TransitionTo(newStatus Status) (Transition, error) {
	if !newStatus.IsValid() {
		return Transition{}, shared.NewDomainError("INVALID_STATUS", "Unknown transaction status")
	}
	tr := Transition{From: t.Status, To: newStatus}
	t.Status = newStatus
	t.UpdatedAt = time.Now()
	return tr, nil
}

// MarkReceived fills the receiver fields and flips the received flag.
// Receipt confirmation is orthogonal to settlement completion: it never
// changes Status.
func (t *Transaction) MarkReceived(receiver Party, receivedBy string) error {
	if t.IsReceived {
		return shared.NewDomainError("ALREADY_RECEIVED", "Transaction has already been received")
	}
	if receiver.Name != "" {
		t.Receiver.Name = receiver.Name
	}
	if receiver.Mobile != "" {
		t.Receiver.Mobile = receiver.Mobile
	}
	if receiver.GovID != "" {
		t.Receiver.GovID = receiver.GovID
	}
	if receiver.Address != "" {
		t.Receiver.Address = receiver.Address
	}
	if receiver.Governorate != "" {
		t.Receiver.Governorate = receiver.Governorate
	}

	now := time.Now()
	t.IsReceived = true
	t.ReceivedBy = receivedBy
	t.ReceivedAt = &now
	t.UpdatedAt = now
	return nil
}
