package settlement

import (
	"context"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BranchCache is a read-through cache for branch records. It extends
// BalanceCache with lookup and store operations so reads can bypass the
// database; settlement mutations only ever invalidate.
type BranchCache interface {
	BalanceCache
	GetBranch(ctx context.Context, branchID int64) (*ledger.Branch, bool)
	SetBranch(ctx context.Context, branch *ledger.Branch)
}

// BranchService manages branch records and read-only branch projections.
type BranchService struct {
	db     *gorm.DB
	cache  BranchCache
	logger *zap.Logger
}

// NewBranchService creates a new BranchService
func NewBranchService(db *gorm.DB, cache BranchCache, logger *zap.Logger) *BranchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchService{db: db, cache: cache, logger: logger}
}

// CreateBranchRequest carries the fields of a new branch
type CreateBranchRequest struct {
	Code        string
	Name        string
	Location    string
	Governorate string
	TaxRate     decimal.Decimal
}

// CreateBranch registers a new branch with zero balances. Code and name are
// unique; collisions surface as an integrity conflict.
func (s *BranchService) CreateBranch(ctx context.Context, req CreateBranchRequest) (*ledger.Branch, error) {
	branch, err := ledger.NewBranch(req.Code, req.Name, req.Location, req.Governorate, req.TaxRate)
	if err != nil {
		return nil, err
	}

	repos := persistence.NewRepositories(s.db)
	if err := repos.Branches.Create(ctx, branch); err != nil {
		return nil, err
	}

	s.logger.Info("branch created",
		zap.Int64("branch_id", branch.ID),
		zap.String("code", branch.Code),
		zap.String("name", branch.Name),
	)
	return branch, nil
}

// GetBranch returns a branch by id, serving from the cache when possible
func (s *BranchService) GetBranch(ctx context.Context, branchID int64) (*ledger.Branch, error) {
	if s.cache != nil {
		if branch, ok := s.cache.GetBranch(ctx, branchID); ok {
			return branch, nil
		}
	}

	repos := persistence.NewRepositories(s.db)
	branch, err := repos.Branches.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetBranch(ctx, branch)
	}
	return branch, nil
}

// GetBranchByCode returns a branch by its external code
func (s *BranchService) GetBranchByCode(ctx context.Context, code string) (*ledger.Branch, error) {
	repos := persistence.NewRepositories(s.db)
	return repos.Branches.FindByCode(ctx, code)
}

// ListBranches lists branches with pagination
func (s *BranchService) ListBranches(ctx context.Context, filter shared.Filter) (shared.Paginated[ledger.Branch], error) {
	repos := persistence.NewRepositories(s.db)
	branches, total, err := repos.Branches.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ledger.Branch]{}, err
	}
	return shared.NewPaginated(branches, total, filter.Page, filter.PageSize), nil
}

// SetTaxRate updates a branch's tax rate. The new rate only affects
// transfers created afterwards; existing transactions keep their snapshot.
func (s *BranchService) SetTaxRate(ctx context.Context, branchID int64, rate decimal.Decimal) (*ledger.Branch, error) {
	var updated *ledger.Branch

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := persistence.NewRepositories(tx)

		branch, err := repos.Branches.FindByIDForUpdate(ctx, branchID)
		if err != nil {
			return err
		}
		if err := branch.SetTaxRate(rate); err != nil {
			return err
		}
		if err := repos.Branches.Save(ctx, branch); err != nil {
			return err
		}

		updated = branch
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateBranch(ctx, branchID)
	}

	s.logger.Info("branch tax rate updated",
		zap.Int64("branch_id", branchID),
		zap.String("tax_rate", rate.String()),
	)
	return updated, nil
}

// FundsHistory lists a branch's audit trail, newest first
func (s *BranchService) FundsHistory(ctx context.Context, branchID int64, filter shared.Filter) (shared.Paginated[ledger.BranchFund], error) {
	repos := persistence.NewRepositories(s.db)

	if _, err := repos.Branches.FindByID(ctx, branchID); err != nil {
		return shared.Paginated[ledger.BranchFund]{}, err
	}

	entries, total, err := repos.Funds.FindByBranch(ctx, branchID, filter)
	if err != nil {
		return shared.Paginated[ledger.BranchFund]{}, err
	}
	return shared.NewPaginated(entries, total, filter.Page, filter.PageSize), nil
}
