package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSettlementTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.BranchModel{},
		&models.BranchFundModel{},
		&models.TransactionModel{},
		&models.NotificationModel{},
		&models.BranchProfitModel{},
	)
	require.NoError(t, err)
	return db
}

// seedBranch creates a branch and credits its SYP balance directly.
func seedBranch(t *testing.T, db *gorm.DB, code, name string, taxRate, sypBalance decimal.Decimal) *ledger.Branch {
	t.Helper()
	branch, err := ledger.NewBranch(code, name, "", "", taxRate)
	require.NoError(t, err)
	require.NoError(t, branch.Credit(valueobject.SYP, sypBalance))

	repos := persistence.NewRepositories(db)
	require.NoError(t, repos.Branches.Create(context.Background(), branch))
	return branch
}

func getBranch(t *testing.T, db *gorm.DB, id int64) *ledger.Branch {
	t.Helper()
	branch, err := persistence.NewRepositories(db).Branches.FindByID(context.Background(), id)
	require.NoError(t, err)
	return branch
}

func branchFunds(t *testing.T, db *gorm.DB, branchID int64) []ledger.BranchFund {
	t.Helper()
	entries, _, err := persistence.NewRepositories(db).Funds.FindByBranch(context.Background(), branchID, shared.Filter{})
	require.NoError(t, err)
	return entries
}

func newTransferRequest(sender, destination int64) CreateTransferRequest {
	return CreateTransferRequest{
		Sender:              transfer.Party{Name: "Ahmad", Mobile: "0933000000"},
		Receiver:            transfer.Party{Name: "Samir", Mobile: "0944000000"},
		Amount:              decimal.NewFromInt(100000),
		BaseAmount:          decimal.NewFromInt(90000),
		BenefitedAmount:     decimal.NewFromInt(10000),
		Currency:            valueobject.SYP,
		BranchID:            &sender,
		DestinationBranchID: destination,
		EmployeeID:          7,
		EmployeeName:        "Counter A",
	}
}

type recordingCache struct {
	invalidated []int64
}

func (c *recordingCache) InvalidateBranch(_ context.Context, branchID int64) {
	c.invalidated = append(c.invalidated, branchID)
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T: %v", err, err)
	assert.Equal(t, code, domainErr.Code)
}

func TestSettlementService_CreateTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("settles both branches in one unit of work", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		sender := seedBranch(t, db, "DMS", "Damascus Central", decimal.NewFromInt(5), decimal.NewFromInt(500000))
		destination := seedBranch(t, db, "ALP", "Aleppo Main", decimal.Zero, decimal.Zero)

		svc := NewSettlementService(db, nil, nil)
		txn, err := svc.CreateTransfer(ctx, newTransferRequest(sender.ID, destination.ID))
		require.NoError(t, err)

		assert.Equal(t, transfer.StatusProcessing, txn.Status)
		assert.True(t, txn.TaxRate.Equal(decimal.NewFromInt(5)), "rate snapshotted from the sending branch")
		assert.True(t, txn.TaxAmount.Equal(decimal.NewFromInt(500)))

		assert.True(t, getBranch(t, db, sender.ID).AllocatedSYP.Equal(decimal.NewFromInt(400000)))
		assert.True(t, getBranch(t, db, destination.ID).AllocatedSYP.Equal(decimal.NewFromInt(100000)))

		senderEntries := branchFunds(t, db, sender.ID)
		require.Len(t, senderEntries, 1)
		assert.Equal(t, ledger.FundEntryDeduction, senderEntries[0].EntryType)
		assert.True(t, senderEntries[0].Amount.Equal(decimal.NewFromInt(-100000)))

		destEntries := branchFunds(t, db, destination.ID)
		require.Len(t, destEntries, 1)
		assert.Equal(t, ledger.FundEntryAllocation, destEntries[0].EntryType)
		assert.True(t, destEntries[0].Amount.Equal(decimal.NewFromInt(100000)))

		notifications, err := persistence.NewRepositories(db).Notifications.FindByTransaction(ctx, txn.ID)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, transfer.NotificationPending, notifications[0].Status)
		assert.Equal(t, "0944000000", notifications[0].RecipientPhone)
	})

	t.Run("insufficient funds rolls everything back", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		sender := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.Zero)
		destination := seedBranch(t, db, "ALP", "Aleppo Main", decimal.Zero, decimal.Zero)

		repos := persistence.NewRepositories(db)
		senderBranch := getBranch(t, db, sender.ID)
		require.NoError(t, senderBranch.Credit(valueobject.USD, decimal.NewFromInt(20)))
		require.NoError(t, repos.Branches.Save(ctx, senderBranch))

		req := newTransferRequest(sender.ID, destination.ID)
		req.Currency = valueobject.USD
		req.Amount = decimal.NewFromInt(50)

		svc := NewSettlementService(db, nil, nil)
		_, err := svc.CreateTransfer(ctx, req)
		requireDomainCode(t, err, "INSUFFICIENT_FUNDS")
		assert.Contains(t, err.Error(), "20.00 USD", "reports the available balance")

		assert.True(t, getBranch(t, db, sender.ID).AllocatedUSD.Equal(decimal.NewFromInt(20)))
		assert.True(t, getBranch(t, db, destination.ID).AllocatedSYP.IsZero())
		assert.Empty(t, branchFunds(t, db, sender.ID))
		assert.Empty(t, branchFunds(t, db, destination.ID))

		_, total, err := repos.Transactions.FindAll(ctx, transfer.TransactionFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("system manager transfer skips the sender-side debit", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		destination := seedBranch(t, db, "ALP", "Aleppo Main", decimal.Zero, decimal.Zero)

		req := newTransferRequest(0, destination.ID)
		req.BranchID = nil
		req.EmployeeName = ledger.SystemManagerName

		svc := NewSettlementService(db, nil, nil)
		txn, err := svc.CreateTransfer(ctx, req)
		require.NoError(t, err)

		assert.True(t, txn.IsSystemManagerTransfer())
		assert.True(t, txn.TaxRate.IsZero(), "no sending branch, no tax snapshot")
		assert.True(t, getBranch(t, db, destination.ID).AllocatedSYP.Equal(decimal.NewFromInt(100000)))

		destEntries := branchFunds(t, db, destination.ID)
		require.Len(t, destEntries, 1)
		assert.Equal(t, ledger.FundEntryAllocation, destEntries[0].EntryType)
	})

	t.Run("missing sending branch is rejected", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		destination := seedBranch(t, db, "ALP", "Aleppo Main", decimal.Zero, decimal.Zero)

		svc := NewSettlementService(db, nil, nil)
		_, err := svc.CreateTransfer(ctx, newTransferRequest(999, destination.ID))
		requireDomainCode(t, err, "BRANCH_NOT_FOUND")
	})

	t.Run("missing destination branch leaves the sender untouched", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		sender := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.NewFromInt(500000))

		svc := NewSettlementService(db, nil, nil)
		_, err := svc.CreateTransfer(ctx, newTransferRequest(sender.ID, 999))
		requireDomainCode(t, err, "BRANCH_NOT_FOUND")

		assert.True(t, getBranch(t, db, sender.ID).AllocatedSYP.Equal(decimal.NewFromInt(500000)))
	})

	t.Run("rejects a transfer from a branch to itself", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.NewFromInt(1000000))

		svc := NewSettlementService(db, nil, nil)
		_, err := svc.CreateTransfer(ctx, newTransferRequest(branch.ID, branch.ID))
		requireDomainCode(t, err, "INVALID_INPUT")

		// The balance must be conserved exactly and nothing recorded.
		assert.True(t, getBranch(t, db, branch.ID).AllocatedSYP.Equal(decimal.NewFromInt(1000000)))
		assert.Empty(t, branchFunds(t, db, branch.ID))

		var count int64
		require.NoError(t, db.Model(&models.TransactionModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("settles when the sender id is higher than the destination id", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		destination := seedBranch(t, db, "ALP", "Aleppo Main", decimal.Zero, decimal.Zero)
		sender := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.NewFromInt(500000))
		require.Greater(t, sender.ID, destination.ID)

		svc := NewSettlementService(db, nil, nil)
		_, err := svc.CreateTransfer(ctx, newTransferRequest(sender.ID, destination.ID))
		require.NoError(t, err)

		assert.True(t, getBranch(t, db, sender.ID).AllocatedSYP.Equal(decimal.NewFromInt(400000)))
		assert.True(t, getBranch(t, db, destination.ID).AllocatedSYP.Equal(decimal.NewFromInt(100000)))
	})

	t.Run("invalidates cached balances for both sides", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		sender := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.NewFromInt(500000))
		destination := seedBranch(t, db, "ALP", "Aleppo Main", decimal.Zero, decimal.Zero)

		cache := &recordingCache{}
		svc := NewSettlementService(db, cache, nil)
		_, err := svc.CreateTransfer(ctx, newTransferRequest(sender.ID, destination.ID))
		require.NoError(t, err)

		assert.ElementsMatch(t, []int64{sender.ID, destination.ID}, cache.invalidated)
	})
}
