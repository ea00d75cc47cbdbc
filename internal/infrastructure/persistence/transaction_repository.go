package persistence

import (
	"context"
	"errors"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransactionRepository implements transfer.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create inserts a new transaction
func (r *GormTransactionRepository) Create(ctx context.Context, transaction *transfer.Transaction) error {
	model := models.TransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a transaction by id
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*transfer.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transfer.NewTransactionNotFoundError(id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a transaction and takes an exclusive row lock for
// the duration of the enclosing transaction. The lock clause is only emitted
// on postgres.
func (r *GormTransactionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transfer.Transaction, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.TransactionModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transfer.NewTransactionNotFoundError(id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists workflow-field changes of an existing transaction
func (r *GormTransactionRepository) Save(ctx context.Context, transaction *transfer.Transaction) error {
	model := models.TransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindAll lists transactions with filtering
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter transfer.TransactionFilter) ([]transfer.Transaction, int64, error) {
	var total int64
	if err := r.applyConditions(r.db.WithContext(ctx).Model(&models.TransactionModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactionModels []models.TransactionModel
	query := applyFilter(
		r.applyConditions(r.db.WithContext(ctx).Model(&models.TransactionModel{}), filter),
		filter.Filter, TransactionSortFields, "date DESC",
	)
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, 0, err
	}

	transactions := make([]transfer.Transaction, len(transactionModels))
	for i, model := range transactionModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, total, nil
}

// applyConditions applies the transaction-specific filter conditions
func (r *GormTransactionRepository) applyConditions(query *gorm.DB, filter transfer.TransactionFilter) *gorm.DB {
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.DestinationBranchID != nil {
		query = query.Where("destination_branch_id = ?", *filter.DestinationBranchID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.IsReceived != nil {
		query = query.Where("is_received = ?", *filter.IsReceived)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	return query
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ transfer.TransactionRepository = (*GormTransactionRepository)(nil)
