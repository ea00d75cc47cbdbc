package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBranchRepository implements ledger.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its numeric id
func (r *GormBranchRepository) FindByID(ctx context.Context, id int64) (*ledger.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.NewBranchNotFoundError(id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a branch and takes an exclusive row lock for the
// duration of the enclosing transaction. SQLite serializes writers on its
// own, so the lock clause is only emitted on postgres.
func (r *GormBranchRepository) FindByIDForUpdate(ctx context.Context, id int64) (*ledger.Branch, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.BranchModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.NewBranchNotFoundError(id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a branch by its external code
func (r *GormBranchRepository) FindByCode(ctx context.Context, code string) (*ledger.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists branches with pagination
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Branch, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.BranchModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var branchModels []models.BranchModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.BranchModel{}), filter, BranchSortFields, "id ASC")
	if err := query.Find(&branchModels).Error; err != nil {
		return nil, 0, err
	}

	branches := make([]ledger.Branch, len(branchModels))
	for i, model := range branchModels {
		branches[i] = *model.ToDomain()
	}
	return branches, total, nil
}

// Create inserts a new branch. Unique code/name collisions surface as
// an integrity conflict.
func (r *GormBranchRepository) Create(ctx context.Context, branch *ledger.Branch) error {
	model := models.BranchModelFromDomain(branch)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrIntegrityConflict
		}
		return err
	}
	branch.ID = model.ID
	branch.CreatedAt = model.CreatedAt
	branch.UpdatedAt = model.UpdatedAt
	return nil
}

// Save persists balance and tax-rate changes of an existing branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *ledger.Branch) error {
	model := models.BranchModelFromDomain(branch)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.ErrIntegrityConflict
		}
		return result.Error
	}
	return nil
}

// Ensure GormBranchRepository implements BranchRepository
var _ ledger.BranchRepository = (*GormBranchRepository)(nil)
