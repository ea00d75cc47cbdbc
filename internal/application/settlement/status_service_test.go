package settlement

import (
	"context"
	"testing"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// createSettledTransfer seeds a funded sender and a destination, then creates
// a 100000 SYP transfer with 10000 benefited at the given branch tax rate.
func createSettledTransfer(t *testing.T, db *gorm.DB, taxRate decimal.Decimal) (*transfer.Transaction, *ledger.Branch, *ledger.Branch) {
	t.Helper()
	sender := seedBranch(t, db, "DMS", "Damascus Central", taxRate, decimal.NewFromInt(500000))
	destination := seedBranch(t, db, "ALP", "Aleppo Main", decimal.Zero, decimal.Zero)

	svc := NewSettlementService(db, nil, nil)
	txn, err := svc.CreateTransfer(context.Background(), newTransferRequest(sender.ID, destination.ID))
	require.NoError(t, err)
	return txn, sender, destination
}

func transactionProfits(t *testing.T, db *gorm.DB, id uuid.UUID) []transfer.BranchProfit {
	t.Helper()
	rows, err := persistence.NewRepositories(db).Profits.FindByTransaction(context.Background(), id)
	require.NoError(t, err)
	return rows
}

func TestStatusService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completion recognizes profit for the sending branch", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, sender, _ := createSettledTransfer(t, db, decimal.NewFromInt(5))

		svc := NewStatusService(db, nil, nil)
		updated, err := svc.UpdateStatus(ctx, txn.ID, transfer.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, transfer.StatusCompleted, updated.Status)

		rows := transactionProfits(t, db, txn.ID)
		require.Len(t, rows, 2)
		bySource := map[transfer.ProfitSource]transfer.BranchProfit{}
		for _, row := range rows {
			assert.Equal(t, sender.ID, row.BranchID)
			bySource[row.SourceType] = row
		}
		assert.True(t, bySource[transfer.ProfitSourceBenefited].Amount.Equal(decimal.NewFromInt(9500)))
		assert.True(t, bySource[transfer.ProfitSourceTax].Amount.Equal(decimal.NewFromInt(500)))

		notifications, err := persistence.NewRepositories(db).Notifications.FindByTransaction(ctx, txn.ID)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, transfer.NotificationSent, notifications[0].Status)
	})

	t.Run("completing twice does not duplicate profit rows", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, _, _ := createSettledTransfer(t, db, decimal.NewFromInt(5))

		svc := NewStatusService(db, nil, nil)
		_, err := svc.UpdateStatus(ctx, txn.ID, transfer.StatusCompleted)
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, txn.ID, transfer.StatusCompleted)
		require.NoError(t, err)

		assert.Len(t, transactionProfits(t, db, txn.ID), 2)
	})

	t.Run("cancellation after completion refunds and reverses profit", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, sender, _ := createSettledTransfer(t, db, decimal.NewFromInt(5))

		svc := NewStatusService(db, nil, nil)
		_, err := svc.UpdateStatus(ctx, txn.ID, transfer.StatusCompleted)
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, txn.ID, transfer.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, transfer.StatusCancelled, updated.Status)

		assert.True(t, getBranch(t, db, sender.ID).AllocatedSYP.Equal(decimal.NewFromInt(500000)),
			"full amount returned to the sender")
		assert.Empty(t, transactionProfits(t, db, txn.ID), "profit rows reversed")

		entries := branchFunds(t, db, sender.ID)
		require.Len(t, entries, 2)
		var refunds int
		for _, entry := range entries {
			if entry.EntryType == ledger.FundEntryRefund {
				refunds++
				assert.True(t, entry.Amount.Equal(decimal.NewFromInt(100000)))
			}
		}
		assert.Equal(t, 1, refunds)

		notifications, err := persistence.NewRepositories(db).Notifications.FindByTransaction(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.NotificationFailed, notifications[0].Status)
	})

	t.Run("rejection from processing refunds the sender", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, sender, _ := createSettledTransfer(t, db, decimal.Zero)

		svc := NewStatusService(db, nil, nil)
		_, err := svc.UpdateStatus(ctx, txn.ID, transfer.StatusRejected)
		require.NoError(t, err)

		assert.True(t, getBranch(t, db, sender.ID).AllocatedSYP.Equal(decimal.NewFromInt(500000)))
	})

	t.Run("cancellation from pending moves status without refund", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, sender, _ := createSettledTransfer(t, db, decimal.Zero)

		svc := NewStatusService(db, nil, nil)
		_, err := svc.UpdateStatus(ctx, txn.ID, transfer.StatusPending)
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, txn.ID, transfer.StatusCancelled)
		require.NoError(t, err)

		assert.True(t, getBranch(t, db, sender.ID).AllocatedSYP.Equal(decimal.NewFromInt(400000)),
			"refund applies only when leaving processing or completed")
	})

	t.Run("cancelling a system manager transfer refunds nothing", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		destination := seedBranch(t, db, "ALP", "Aleppo Main", decimal.Zero, decimal.Zero)

		req := newTransferRequest(0, destination.ID)
		req.BranchID = nil
		txn, err := NewSettlementService(db, nil, nil).CreateTransfer(ctx, req)
		require.NoError(t, err)

		svc := NewStatusService(db, nil, nil)
		_, err = svc.UpdateStatus(ctx, txn.ID, transfer.StatusCancelled)
		require.NoError(t, err)

		entries := branchFunds(t, db, destination.ID)
		require.Len(t, entries, 1, "only the original destination credit exists")
	})

	t.Run("invalidates the refunded branch balance", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, sender, _ := createSettledTransfer(t, db, decimal.Zero)

		cache := &recordingCache{}
		svc := NewStatusService(db, cache, nil)
		_, err := svc.UpdateStatus(ctx, txn.ID, transfer.StatusCancelled)
		require.NoError(t, err)

		assert.Equal(t, []int64{sender.ID}, cache.invalidated)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		db := setupSettlementTestDB(t)

		svc := NewStatusService(db, nil, nil)
		_, err := svc.UpdateStatus(ctx, uuid.New(), transfer.StatusCompleted)
		requireDomainCode(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("unknown status", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, _, _ := createSettledTransfer(t, db, decimal.Zero)

		svc := NewStatusService(db, nil, nil)
		_, err := svc.UpdateStatus(ctx, txn.ID, transfer.Status("shipped"))
		requireDomainCode(t, err, "INVALID_STATUS")
	})
}

func TestStatusService_MarkReceived(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms receipt without touching settlement status", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, _, _ := createSettledTransfer(t, db, decimal.Zero)

		svc := NewStatusService(db, nil, nil)
		updated, err := svc.MarkReceived(ctx, MarkReceivedRequest{
			TransactionID: txn.ID,
			Receiver:      transfer.Party{GovID: "0101", Address: "Aleppo"},
			ReceivedBy:    "clerk-9",
		})
		require.NoError(t, err)

		assert.True(t, updated.IsReceived)
		assert.Equal(t, "clerk-9", updated.ReceivedBy)
		assert.NotNil(t, updated.ReceivedAt)
		assert.Equal(t, transfer.StatusProcessing, updated.Status)
		assert.Equal(t, "0101", updated.Receiver.GovID)

		notifications, err := persistence.NewRepositories(db).Notifications.FindByTransaction(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.NotificationSent, notifications[0].Status)
	})

	t.Run("double receipt is rejected", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		txn, _, _ := createSettledTransfer(t, db, decimal.Zero)

		svc := NewStatusService(db, nil, nil)
		_, err := svc.MarkReceived(ctx, MarkReceivedRequest{TransactionID: txn.ID, ReceivedBy: "clerk-9"})
		require.NoError(t, err)

		_, err = svc.MarkReceived(ctx, MarkReceivedRequest{TransactionID: txn.ID, ReceivedBy: "clerk-10"})
		requireDomainCode(t, err, "ALREADY_RECEIVED")
	})
}
