package settlement

import (
	"context"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BalanceCache invalidates cached branch balances after a settlement
// mutation. Implementations live outside the engine; a nil-safe no-op is
// acceptable.
type BalanceCache interface {
	InvalidateBranch(ctx context.Context, branchID int64)
}

// SettlementService creates transfers and moves funds between branches.
// Every mutation runs as a single database transaction with the affected
// branch rows locked for its duration.
type SettlementService struct {
	db     *gorm.DB
	cache  BalanceCache
	logger *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(db *gorm.DB, cache BalanceCache, logger *zap.Logger) *SettlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettlementService{db: db, cache: cache, logger: logger}
}

// CreateTransferRequest carries the caller-supplied fields of a new transfer.
// Tax fields are absent on purpose: the sending branch's configured rate is
// authoritative and caller-supplied tax values are never trusted.
type CreateTransferRequest struct {
	Sender              transfer.Party
	Receiver            transfer.Party
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

func (r CreateTransferRequest) isSystemManager() bool {
	if r.EmployeeName == ledger.SystemManagerName {
		return true
	}
	return r.BranchID == nil || *r.BranchID == ledger.SystemManagerBranchID
}

// CreateTransfer settles a new transfer: it debits the sending branch,
// credits the destination, writes the paired audit entries, and inserts the
// transaction and its notification, all in one unit of work. System Manager
// transfers skip the sender-side debit and funds check.
func (s *SettlementService) CreateTransfer(ctx context.Context, req CreateTransferRequest) (*transfer.Transaction, error) {
	// Rejected up front: settling a self-transfer would debit and credit
	// the same ledger row through two aggregate copies.
	if req.BranchID != nil && *req.BranchID == req.DestinationBranchID {
		return nil, transfer.NewSelfTransferError()
	}

	var created *transfer.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := persistence.NewRepositories(tx)

		systemManager := req.isSystemManager()

		var sendingBranch, destination *ledger.Branch
		if systemManager {
			branch, err := repos.Branches.FindByIDForUpdate(ctx, req.DestinationBranchID)
			if err != nil {
				return err
			}
			destination = branch
		} else {
			// Branch rows are locked in ascending id order so two
			// opposite-direction transfers between the same pair of
			// branches cannot deadlock.
			first, second := *req.BranchID, req.DestinationBranchID
			if first > second {
				first, second = second, first
			}
			locked := make(map[int64]*ledger.Branch, 2)
			for _, id := range []int64{first, second} {
				branch, err := repos.Branches.FindByIDForUpdate(ctx, id)
				if err != nil {
					return err
				}
				locked[id] = branch
			}
			sendingBranch = locked[*req.BranchID]
			destination = locked[req.DestinationBranchID]
		}

		taxRate := decimal.Zero
		if sendingBranch != nil {
			taxRate = sendingBranch.TaxRate
		}

		txn, err := transfer.NewTransaction(transfer.NewTransactionParams{
			Sender:              req.Sender,
			Receiver:            req.Receiver,
			Amount:              req.Amount,
			BaseAmount:          req.BaseAmount,
			BenefitedAmount:     req.BenefitedAmount,
			Currency:            req.Currency,
			BranchID:            req.BranchID,
			DestinationBranchID: req.DestinationBranchID,
			EmployeeID:          req.EmployeeID,
			EmployeeName:        req.EmployeeName,
			Date:                req.Date,
		}, taxRate)
		if err != nil {
			return err
		}

		if sendingBranch != nil {
			if err := sendingBranch.Debit(txn.Currency, txn.Amount); err != nil {
				return err
			}
			if err := repos.Branches.Save(ctx, sendingBranch); err != nil {
				return err
			}
			deduction, err := ledger.NewTransferDeductionEntry(sendingBranch.ID, txn.Amount, txn.Currency, txn.ID.String())
			if err != nil {
				return err
			}
			if err := repos.Funds.Append(ctx, deduction); err != nil {
				return err
			}
		}

		if err := destination.Credit(txn.Currency, txn.Amount); err != nil {
			return err
		}
		if err := repos.Branches.Save(ctx, destination); err != nil {
			return err
		}
		allocation, err := ledger.NewTransferAllocationEntry(destination.ID, txn.Amount, txn.Currency, txn.ID.String())
		if err != nil {
			return err
		}
		if err := repos.Funds.Append(ctx, allocation); err != nil {
			return err
		}

		if err := repos.Transactions.Create(ctx, txn); err != nil {
			return err
		}
		if err := repos.Notifications.Create(ctx, transfer.NewTransferNotification(txn)); err != nil {
			return err
		}

		created = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBalances(ctx, created)

	s.logger.Info("transfer created",
		zap.String("transaction_id", created.ID.String()),
		zap.String("amount", created.Amount.String()),
		zap.String("currency", string(created.Currency)),
		zap.Int64("destination_branch_id", created.DestinationBranchID),
		zap.Bool("system_manager", created.IsSystemManagerTransfer()),
	)
	return created, nil
}

func (s *SettlementService) invalidateBalances(ctx context.Context, txn *transfer.Transaction) {
	if s.cache == nil {
		return
	}
	if branchID, ok := txn.SendingBranchID(); ok {
		s.cache.InvalidateBranch(ctx, branchID)
	}
	s.cache.InvalidateBranch(ctx, txn.DestinationBranchID)
}
