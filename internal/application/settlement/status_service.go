package settlement

import (
	"context"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatusService drives transaction status transitions and their settlement
// side effects: profit recognition on completion, refund and profit reversal
// on cancellation or rejection.
type StatusService struct {
	db     *gorm.DB
	cache  BalanceCache
	logger *zap.Logger
}

// NewStatusService creates a new StatusService
func NewStatusService(db *gorm.DB, cache BalanceCache, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusService{db: db, cache: cache, logger: logger}
}

// UpdateStatus transitions a transaction to a new status. The side effects
// are a function of the (old, new) pair: processing→completed recognizes
// profit for the sending branch; moving to cancelled or rejected from
// processing or completed refunds the full amount to the sender and deletes
// any recognized profit rows. All other transitions update the status only.
// The transaction row is locked for the duration of the unit of work, which
// serializes concurrent transitions on the same transaction. Branch rows are
// only locked when the transition moves funds; a status-only transition never
// touches a balance, so it takes no branch lock.
func (s *StatusService) UpdateStatus(ctx context.Context, transactionID uuid.UUID, newStatus transfer.Status) (*transfer.Transaction, error) {
	var (
		updated        *transfer.Transaction
		refundedBranch int64
		refunded       bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := persistence.NewRepositories(tx)

		txn, err := repos.Transactions.FindByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}

		transition, err := txn.TransitionTo(newStatus)
		if err != nil {
			return err
		}

		switch {
		case transition.RequiresRefund():
			if err := s.refund(ctx, repos, txn); err != nil {
				return err
			}
			if branchID, ok := txn.SendingBranchID(); ok && !txn.IsSystemManagerTransfer() {
				refundedBranch, refunded = branchID, true
			}
			if err := repos.Profits.DeleteByTransaction(ctx, txn.ID); err != nil {
				return err
			}

		case transition.RecognizesProfit():
			for _, row := range transfer.RecognizeProfits(txn) {
				if err := repos.Profits.Create(ctx, row); err != nil {
					return err
				}
			}
		}

		if err := repos.Notifications.UpdateStatusByTransaction(ctx, txn.ID, transfer.NotificationStatusFor(newStatus)); err != nil {
			return err
		}

		if err := repos.Transactions.Save(ctx, txn); err != nil {
			return err
		}

		updated = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	if refunded && s.cache != nil {
		s.cache.InvalidateBranch(ctx, refundedBranch)
	}

	s.logger.Info("transaction status updated",
		zap.String("transaction_id", updated.ID.String()),
		zap.String("status", updated.Status.String()),
		zap.Bool("refunded", refunded),
	)
	return updated, nil
}

// refund returns the full transfer amount to the sending branch and writes
// the compensating audit entry. System Manager transfers were never debited,
// so there is nothing to return.
func (s *StatusService) refund(ctx context.Context, repos *persistence.Repositories, txn *transfer.Transaction) error {
	if txn.IsSystemManagerTransfer() {
		return nil
	}
	branchID, ok := txn.SendingBranchID()
	if !ok {
		return nil
	}

	branch, err := repos.Branches.FindByIDForUpdate(ctx, branchID)
	if err != nil {
		return err
	}
	if err := branch.Credit(txn.Currency, txn.Amount); err != nil {
		return err
	}
	if err := repos.Branches.Save(ctx, branch); err != nil {
		return err
	}

	entry, err := ledger.NewRefundEntry(branchID, txn.Amount, txn.Currency, txn.ID.String())
	if err != nil {
		return err
	}
	return repos.Funds.Append(ctx, entry)
}

// MarkReceivedRequest carries the receiver fields confirmed at pickup time
type MarkReceivedRequest struct {
	TransactionID uuid.UUID
	Receiver      transfer.Party
	ReceivedBy    string
}

// MarkReceived fills the receiver fields, flips the received flag, and marks
// the linked notification as delivered. Receipt confirmation is orthogonal
// to settlement completion and never changes the transaction status.
func (s *StatusService) MarkReceived(ctx context.Context, req MarkReceivedRequest) (*transfer.Transaction, error) {
	var updated *transfer.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := persistence.NewRepositories(tx)

		txn, err := repos.Transactions.FindByIDForUpdate(ctx, req.TransactionID)
		if err != nil {
			return err
		}

		if err := txn.MarkReceived(req.Receiver, req.ReceivedBy); err != nil {
			return err
		}
		if err := repos.Transactions.Save(ctx, txn); err != nil {
			return err
		}
		if err := repos.Notifications.UpdateStatusByTransaction(ctx, txn.ID, transfer.NotificationSent); err != nil {
			return err
		}

		updated = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction marked received",
		zap.String("transaction_id", updated.ID.String()),
		zap.String("received_by", req.ReceivedBy),
	)
	return updated, nil
}
