package ledger

import (
	"context"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
)

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	// FindByID finds a branch by its numeric id
	FindByID(ctx context.Context, id int64) (*Branch, error)

	// FindByIDForUpdate finds a branch and takes an exclusive row lock for the
	// duration of the enclosing unit of work
	FindByIDForUpdate(ctx context.Context, id int64) (*Branch, error)

	// FindByCode finds a branch by its external code
	FindByCode(ctx context.Context, code string) (*Branch, error)

	// FindAll lists branches with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, int64, error)

	// Create inserts a new branch; unique code/name collisions surface as
	// an integrity conflict
	Create(ctx context.Context, branch *Branch) error

	// Save persists balance and tax-rate changes of an existing branch
	Save(ctx context.Context, branch *Branch) error
}

// FundRepository defines the interface for the append-only audit trail
type FundRepository interface {
	// Append inserts an audit entry
	Append(ctx context.Context, entry *BranchFund) error

	// FindByBranch lists the funds history for a branch, newest first
	FindByBranch(ctx context.Context, branchID int64, filter shared.Filter) ([]BranchFund, int64, error)
}
