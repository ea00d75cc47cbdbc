package persistence

import (
	"context"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProfitRepository implements transfer.ProfitRepository using GORM
type GormProfitRepository struct {
	db *gorm.DB
}

// NewGormProfitRepository creates a new GormProfitRepository
func NewGormProfitRepository(db *gorm.DB) *GormProfitRepository {
	return &GormProfitRepository{db: db}
}

// Create inserts a profit row
func (r *GormProfitRepository) Create(ctx context.Context, profit *transfer.BranchProfit) error {
	model := models.BranchProfitModelFromDomain(profit)
	return r.db.WithContext(ctx).Create(model).Error
}

// DeleteByTransaction removes all profit rows of a transaction. Used when a
// completed transfer is cancelled or rejected and its profit is reversed.
func (r *GormProfitRepository) DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.BranchProfitModel{}, "transaction_id = ?", transactionID).Error
}

// FindByTransaction lists the profit rows of a transaction
func (r *GormProfitRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]transfer.BranchProfit, error) {
	var profitModels []models.BranchProfitModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&profitModels).Error; err != nil {
		return nil, err
	}

	profits := make([]transfer.BranchProfit, len(profitModels))
	for i, model := range profitModels {
		profits[i] = *model.ToDomain()
	}
	return profits, nil
}

// FindByBranch lists profit rows for a branch within a date range
func (r *GormProfitRepository) FindByBranch(ctx context.Context, branchID int64, from, to time.Time, filter shared.Filter) ([]transfer.BranchProfit, int64, error) {
	conditions := func(query *gorm.DB) *gorm.DB {
		query = query.Where("branch_id = ?", branchID)
		if !from.IsZero() {
			query = query.Where("date >= ?", from)
		}
		if !to.IsZero() {
			query = query.Where("date <= ?", to)
		}
		return query
	}

	var total int64
	if err := conditions(r.db.WithContext(ctx).Model(&models.BranchProfitModel{})).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profitModels []models.BranchProfitModel
	query := applyFilter(
		conditions(r.db.WithContext(ctx).Model(&models.BranchProfitModel{})),
		filter, BranchProfitSortFields, "date DESC",
	)
	if err := query.Find(&profitModels).Error; err != nil {
		return nil, 0, err
	}

	profits := make([]transfer.BranchProfit, len(profitModels))
	for i, model := range profitModels {
		profits[i] = *model.ToDomain()
	}
	return profits, total, nil
}

// Ensure GormProfitRepository implements ProfitRepository
var _ transfer.ProfitRepository = (*GormProfitRepository)(nil)
