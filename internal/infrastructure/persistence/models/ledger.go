package models

import (
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BranchModel is the persistence model for the Branch domain entity.
// AllocatedAmount mirrors AllocatedSYP for readers of the legacy column;
// it is written on every save and never read back.
type BranchModel struct {
	ID              int64             `gorm:"primaryKey;autoIncrement"`
	Code            string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string            `gorm:"type:varchar(200);not null;uniqueIndex"`
	Location        string            `gorm:"type:varchar(200)"`
	Governorate     string            `gorm:"type:varchar(100)"`
	Role            ledger.BranchRole `gorm:"type:varchar(20);not null;default:'NORMAL'"`
	AllocatedSYP    decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AllocatedUSD    decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AllocatedAmount decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate         decimal.Decimal   `gorm:"type:decimal(7,4);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch entity.
func (m *BranchModel) ToDomain() *ledger.Branch {
	return &ledger.Branch{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Location:     m.Location,
		Governorate:  m.Governorate,
		Role:         m.Role,
		AllocatedSYP: m.AllocatedSYP,
		AllocatedUSD: m.AllocatedUSD,
		TaxRate:      m.TaxRate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Branch entity.
func (m *BranchModel) FromDomain(b *ledger.Branch) {
	m.ID = b.ID
	m.Code = b.Code
	m.Name = b.Name
	m.Location = b.Location
	m.Governorate = b.Governorate
	m.Role = b.Role
	m.AllocatedSYP = b.AllocatedSYP
	m.AllocatedUSD = b.AllocatedUSD
	m.AllocatedAmount = b.AllocatedAmount()
	m.TaxRate = b.TaxRate
	m.CreatedAt = b.CreatedAt
	m.UpdatedAt = b.UpdatedAt
}

// BranchModelFromDomain creates a new persistence model from a domain Branch entity.
func BranchModelFromDomain(b *ledger.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}

// BranchFundModel is the persistence model for the BranchFund audit entry.
type BranchFundModel struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey"`
	BranchID    int64                `gorm:"not null;index"`
	Amount      decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	EntryType   ledger.FundEntryType `gorm:"type:varchar(20);not null"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null;default:'SYP'"`
	Description string               `gorm:"type:text"`
	CreatedAt   time.Time            `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (BranchFundModel) TableName() string {
	return "branch_funds"
}

// ToDomain converts the persistence model to a domain BranchFund entity.
func (m *BranchFundModel) ToDomain() *ledger.BranchFund {
	return &ledger.BranchFund{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		BranchID:    m.BranchID,
		Amount:      m.Amount,
		EntryType:   m.EntryType,
		Currency:    m.Currency,
		Description: m.Description,
	}
}

// BranchFundModelFromDomain creates a new persistence model from a domain BranchFund entity.
func BranchFundModelFromDomain(f *ledger.BranchFund) *BranchFundModel {
	return &BranchFundModel{
		ID:          f.ID,
		BranchID:    f.BranchID,
		Amount:      f.Amount,
		EntryType:   f.EntryType,
		Currency:    f.Currency,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
