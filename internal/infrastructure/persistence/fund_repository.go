package persistence

import (
	"context"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFundRepository implements ledger.FundRepository using GORM
type GormFundRepository struct {
	db *gorm.DB
}

// NewGormFundRepository creates a new GormFundRepository
func NewGormFundRepository(db *gorm.DB) *GormFundRepository {
	return &GormFundRepository{db: db}
}

// Append inserts an audit entry. Entries are never updated or deleted.
func (r *GormFundRepository) Append(ctx context.Context, entry *ledger.BranchFund) error {
	model := models.BranchFundModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByBranch lists the funds history for a branch, newest first
func (r *GormFundRepository) FindByBranch(ctx context.Context, branchID int64, filter shared.Filter) ([]ledger.BranchFund, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.BranchFundModel{}).
		Where("branch_id = ?", branchID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var fundModels []models.BranchFundModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.BranchFundModel{}).Where("branch_id = ?", branchID),
		filter, BranchFundSortFields, "created_at DESC",
	)
	if err := query.Find(&fundModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]ledger.BranchFund, len(fundModels))
	for i, model := range fundModels {
		entries[i] = *model.ToDomain()
	}
	return entries, total, nil
}

// Ensure GormFundRepository implements FundRepository
var _ ledger.FundRepository = (*GormFundRepository)(nil)
