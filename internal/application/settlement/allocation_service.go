package settlement

import (
	"context"
	"fmt"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AllocationService handles the director-only balance operations: manual
// fund allocation/deduction and resetting a branch's allocations.
type AllocationService struct {
	db     *gorm.DB
	cache  BalanceCache
	logger *zap.Logger
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(db *gorm.DB, cache BalanceCache, logger *zap.Logger) *AllocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{db: db, cache: cache, logger: logger}
}

// AllocateFundsRequest carries a manual balance adjustment
type AllocateFundsRequest struct {
	BranchID    int64
	Amount      decimal.Decimal
	EntryType   ledger.FundEntryType // allocation or deduction
	Currency    valueobject.Currency
	Description string
}

// AllocateFunds directly adjusts a branch's balance outside any transfer,
// e.g. an initial capital injection. A deduction that would drive the
// balance negative fails without mutation. Every adjustment writes a paired
// audit entry whose signed amount reflects direction.
func (s *AllocationService) AllocateFunds(ctx context.Context, req AllocateFundsRequest) (*ledger.Branch, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if req.EntryType != ledger.FundEntryAllocation && req.EntryType != ledger.FundEntryDeduction {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be allocation or deduction")
	}
	if !req.Currency.IsLedgerCurrency() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Allocations are tracked in SYP or USD only")
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Manual %s of %s %s", req.EntryType, req.Amount.String(), req.Currency)
	}

	var updated *ledger.Branch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := persistence.NewRepositories(tx)

		branch, err := repos.Branches.FindByIDForUpdate(ctx, req.BranchID)
		if err != nil {
			return err
		}

		if req.EntryType == ledger.FundEntryAllocation {
			err = branch.Credit(req.Currency, req.Amount)
		} else {
			err = branch.Debit(req.Currency, req.Amount)
		}
		if err != nil {
			return err
		}

		if err := repos.Branches.Save(ctx, branch); err != nil {
			return err
		}

		entry, err := ledger.NewFundEntry(req.BranchID, req.Amount, req.EntryType, req.Currency, description)
		if err != nil {
			return err
		}
		if err := repos.Funds.Append(ctx, entry); err != nil {
			return err
		}

		updated = branch
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateBranch(ctx, req.BranchID)
	}

	s.logger.Info("branch funds adjusted",
		zap.Int64("branch_id", req.BranchID),
		zap.String("entry_type", string(req.EntryType)),
		zap.String("amount", req.Amount.String()),
		zap.String("currency", string(req.Currency)),
	)
	return updated, nil
}

// ResetAllocation zeroes a branch's balance for one ledger currency, or for
// both when currency is nil. A compensating negative audit entry equal to
// the cleared balance is written before each zeroing; nothing is written for
// a balance that is already zero.
func (s *AllocationService) ResetAllocation(ctx context.Context, branchID int64, currency *valueobject.Currency) (*ledger.Branch, error) {
	if currency != nil && !currency.IsLedgerCurrency() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Allocations are tracked in SYP or USD only")
	}

	currencies := []valueobject.Currency{valueobject.SYP, valueobject.USD}
	if currency != nil {
		currencies = []valueobject.Currency{*currency}
	}

	var updated *ledger.Branch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := persistence.NewRepositories(tx)

		branch, err := repos.Branches.FindByIDForUpdate(ctx, branchID)
		if err != nil {
			return err
		}

		for _, c := range currencies {
			cleared := branch.ResetBalance(c)
			if cleared.IsZero() {
				continue
			}
			entry, err := ledger.NewResetEntry(branchID, cleared, c)
			if err != nil {
				return err
			}
			if err := repos.Funds.Append(ctx, entry); err != nil {
				return err
			}
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

	s.logger.Info("branch allocations reset", zap.Int64("branch_id", branchID))
	return updated, nil
}
