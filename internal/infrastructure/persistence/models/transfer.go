package models

import (
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for the Transaction domain entity.
type TransactionModel struct {
	ID                  uuid.UUID            `gorm:"type:uuid;primaryKey"`
	SenderName          string               `gorm:"type:varchar(200);not null"`
	SenderMobile        string               `gorm:"type:varchar(30)"`
	SenderGovID         string               `gorm:"column:sender_gov_id;type:varchar(50)"`
	SenderAddress       string               `gorm:"type:varchar(300)"`
	SenderGovernorate   string               `gorm:"type:varchar(100)"`
	ReceiverName        string               `gorm:"type:varchar(200);not null"`
	ReceiverMobile      string               `gorm:"type:varchar(30)"`
	ReceiverGovID       string               `gorm:"column:receiver_gov_id;type:varchar(50)"`
	ReceiverAddress     string               `gorm:"type:varchar(300)"`
	ReceiverGovernorate string               `gorm:"type:varchar(100)"`
	Amount              decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	BaseAmount          decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	BenefitedAmount     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate             decimal.Decimal      `gorm:"type:decimal(7,4);not null;default:0"`
	TaxAmount           decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency            valueobject.Currency `gorm:"type:varchar(3);not null;default:'SYP'"`
	BranchID            *int64               `gorm:"index"`
	DestinationBranchID int64                `gorm:"not null;index"`
	Status              transfer.Status      `gorm:"type:varchar(20);not null;index"`
	IsReceived          bool                 `gorm:"not null;default:false"`
	ReceivedBy          string               `gorm:"type:varchar(200)"`
	ReceivedAt          *time.Time
	EmployeeID          int64     `gorm:"not null"`
	EmployeeName        string    `gorm:"type:varchar(200)"`
	Date                time.Time `gorm:"not null;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *transfer.Transaction {
	return &transfer.Transaction{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Sender: transfer.Party{
			Name:        m.SenderName,
			Mobile:      m.SenderMobile,
			GovID:       m.SenderGovID,
			Address:     m.SenderAddress,
			Governorate: m.SenderGovernorate,
		},
		Receiver: transfer.Party{
			Name:        m.ReceiverName,
			Mobile:      m.ReceiverMobile,
			GovID:       m.ReceiverGovID,
			Address:     m.ReceiverAddress,
			Governorate: m.ReceiverGovernorate,
		},
		Amount:              m.Amount,
		BaseAmount:          m.BaseAmount,
		BenefitedAmount:     m.BenefitedAmount,
		TaxRate:             m.TaxRate,
		TaxAmount:           m.TaxAmount,
		Currency:            m.Currency,
		BranchID:            m.BranchID,
		DestinationBranchID: m.DestinationBranchID,
		Status:              m.Status,
		IsReceived:          m.IsReceived,
		ReceivedBy:          m.ReceivedBy,
		ReceivedAt:          m.ReceivedAt,
		EmployeeID:          m.EmployeeID,
		EmployeeName:        m.EmployeeName,
		Date:                m.Date,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(t *transfer.Transaction) {
	m.ID = t.ID
	m.SenderName = t.Sender.Name
	m.SenderMobile = t.Sender.Mobile
	m.SenderGovID = t.Sender.GovID
	m.SenderAddress = t.Sender.Address
	m.SenderGovernorate = t.Sender.Governorate
	m.ReceiverName = t.Receiver.Name
	m.ReceiverMobile = t.Receiver.Mobile
	m.ReceiverGovID = t.Receiver.GovID
	m.ReceiverAddress = t.Receiver.Address
	m.ReceiverGovernorate = t.Receiver.Governorate
	m.Amount = t.Amount
	m.BaseAmount = t.BaseAmount
	m.BenefitedAmount = t.BenefitedAmount
	m.TaxRate = t.TaxRate
	m.TaxAmount = t.TaxAmount
	m.Currency = t.Currency
	m.BranchID = t.BranchID
	m.DestinationBranchID = t.DestinationBranchID
	m.Status = t.Status
	m.IsReceived = t.IsReceived
	m.ReceivedBy = t.ReceivedBy
	m.ReceivedAt = t.ReceivedAt
	m.EmployeeID = t.EmployeeID
	m.EmployeeName = t.EmployeeName
	m.Date = t.Date
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction entity.
func TransactionModelFromDomain(t *transfer.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

// NotificationModel is the persistence model for the Notification domain entity.
type NotificationModel struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	TransactionID  uuid.UUID                   `gorm:"type:uuid;not null;index"`
	RecipientPhone string                      `gorm:"type:varchar(30)"`
	Message        string                      `gorm:"type:text"`
	Status         transfer.NotificationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *transfer.Notification {
	return &transfer.Notification{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TransactionID:  m.TransactionID,
		RecipientPhone: m.RecipientPhone,
		Message:        m.Message,
		Status:         m.Status,
	}
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification entity.
func NotificationModelFromDomain(n *transfer.Notification) *NotificationModel {
	return &NotificationModel{
		ID:             n.ID,
		TransactionID:  n.TransactionID,
		RecipientPhone: n.RecipientPhone,
		Message:        n.Message,
		Status:         n.Status,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

// BranchProfitModel is the persistence model for the BranchProfit domain entity.
type BranchProfitModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primaryKey"`
	BranchID      int64                 `gorm:"not null;index"`
	TransactionID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Currency      valueobject.Currency  `gorm:"type:varchar(3);not null;default:'SYP'"`
	SourceType    transfer.ProfitSource `gorm:"type:varchar(30);not null"`
	Date          time.Time             `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (BranchProfitModel) TableName() string {
	return "branch_profits"
}

// ToDomain converts the persistence model to a domain BranchProfit entity.
func (m *BranchProfitModel) ToDomain() *transfer.BranchProfit {
	return &transfer.BranchProfit{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		BranchID:      m.BranchID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		SourceType:    m.SourceType,
		Date:          m.Date,
	}
}

// BranchProfitModelFromDomain creates a new persistence model from a domain BranchProfit entity.
func BranchProfitModelFromDomain(p *transfer.BranchProfit) *BranchProfitModel {
	return &BranchProfitModel{
		ID:            p.ID,
		BranchID:      p.BranchID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		SourceType:    p.SourceType,
		Date:          p.Date,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
