package settlement

import (
	"context"
	"testing"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationService_AllocateFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("allocation credits the balance and writes an audit entry", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.Zero)

		svc := NewAllocationService(db, nil, nil)
		updated, err := svc.AllocateFunds(ctx, AllocateFundsRequest{
			BranchID:  branch.ID,
			Amount:    decimal.NewFromInt(1000000),
			EntryType: ledger.FundEntryAllocation,
			Currency:  valueobject.SYP,
		})
		require.NoError(t, err)
		assert.True(t, updated.AllocatedSYP.Equal(decimal.NewFromInt(1000000)))

		entries := branchFunds(t, db, branch.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, ledger.FundEntryAllocation, entries[0].EntryType)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(1000000)))
		assert.Contains(t, entries[0].Description, "allocation")
	})

	t.Run("deduction debits the balance with a negative entry", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.NewFromInt(1000000))

		svc := NewAllocationService(db, nil, nil)
		updated, err := svc.AllocateFunds(ctx, AllocateFundsRequest{
			BranchID:    branch.ID,
			Amount:      decimal.NewFromInt(400000),
			EntryType:   ledger.FundEntryDeduction,
			Currency:    valueobject.SYP,
			Description: "cash pickup",
		})
		require.NoError(t, err)
		assert.True(t, updated.AllocatedSYP.Equal(decimal.NewFromInt(600000)))

		entries := branchFunds(t, db, branch.ID)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(-400000)))
		assert.Equal(t, "cash pickup", entries[0].Description)
	})

	t.Run("deduction beyond the balance fails without mutation", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.NewFromInt(100))

		svc := NewAllocationService(db, nil, nil)
		_, err := svc.AllocateFunds(ctx, AllocateFundsRequest{
			BranchID:  branch.ID,
			Amount:    decimal.NewFromInt(500),
			EntryType: ledger.FundEntryDeduction,
			Currency:  valueobject.SYP,
		})
		requireDomainCode(t, err, "INSUFFICIENT_FUNDS")

		assert.True(t, getBranch(t, db, branch.ID).AllocatedSYP.Equal(decimal.NewFromInt(100)))
		assert.Empty(t, branchFunds(t, db, branch.ID))
	})

	t.Run("USD allocations track the USD balance", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.Zero)

		svc := NewAllocationService(db, nil, nil)
		updated, err := svc.AllocateFunds(ctx, AllocateFundsRequest{
			BranchID:  branch.ID,
			Amount:    decimal.NewFromInt(500),
			EntryType: ledger.FundEntryAllocation,
			Currency:  valueobject.USD,
		})
		require.NoError(t, err)
		assert.True(t, updated.AllocatedUSD.Equal(decimal.NewFromInt(500)))
		assert.True(t, updated.AllocatedSYP.IsZero())
	})

	t.Run("rejects non-ledger currencies", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.Zero)

		svc := NewAllocationService(db, nil, nil)
		_, err := svc.AllocateFunds(ctx, AllocateFundsRequest{
			BranchID:  branch.ID,
			Amount:    decimal.NewFromInt(100),
			EntryType: ledger.FundEntryAllocation,
			Currency:  valueobject.EUR,
		})
		requireDomainCode(t, err, "INVALID_CURRENCY")
	})

	t.Run("rejects transfer-side entry types", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.Zero)

		svc := NewAllocationService(db, nil, nil)
		_, err := svc.AllocateFunds(ctx, AllocateFundsRequest{
			BranchID:  branch.ID,
			Amount:    decimal.NewFromInt(100),
			EntryType: ledger.FundEntryRefund,
			Currency:  valueobject.SYP,
		})
		requireDomainCode(t, err, "INVALID_ENTRY_TYPE")
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		db := setupSettlementTestDB(t)

		svc := NewAllocationService(db, nil, nil)
		_, err := svc.AllocateFunds(ctx, AllocateFundsRequest{
			BranchID:  1,
			Amount:    decimal.Zero,
			EntryType: ledger.FundEntryAllocation,
			Currency:  valueobject.SYP,
		})
		requireDomainCode(t, err, "INVALID_AMOUNT")
	})
}

func TestAllocationService_ResetAllocation(t *testing.T) {
	ctx := context.Background()

	t.Run("resets both currencies with compensating entries", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.NewFromInt(250000))

		svcAlloc := NewAllocationService(db, nil, nil)
		_, err := svcAlloc.AllocateFunds(ctx, AllocateFundsRequest{
			BranchID:  branch.ID,
			Amount:    decimal.NewFromInt(75),
			EntryType: ledger.FundEntryAllocation,
			Currency:  valueobject.USD,
		})
		require.NoError(t, err)

		updated, err := svcAlloc.ResetAllocation(ctx, branch.ID, nil)
		require.NoError(t, err)
		assert.True(t, updated.AllocatedSYP.IsZero())
		assert.True(t, updated.AllocatedUSD.IsZero())

		var resets []ledger.BranchFund
		for _, entry := range branchFunds(t, db, branch.ID) {
			if entry.EntryType == ledger.FundEntryReset {
				resets = append(resets, entry)
			}
		}
		require.Len(t, resets, 2)
		for _, entry := range resets {
			assert.True(t, entry.Amount.IsNegative(), "compensating entries are debits")
		}
	})

	t.Run("resetting one currency leaves the other balance", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.NewFromInt(250000))

		svc := NewAllocationService(db, nil, nil)
		syp := valueobject.SYP
		updated, err := svc.ResetAllocation(ctx, branch.ID, &syp)
		require.NoError(t, err)
		assert.True(t, updated.AllocatedSYP.IsZero())

		entries := branchFunds(t, db, branch.ID)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(-250000)))
	})

	t.Run("zero balances produce no compensating entries", func(t *testing.T) {
		db := setupSettlementTestDB(t)
		branch := seedBranch(t, db, "DMS", "Damascus Central", decimal.Zero, decimal.Zero)

		svc := NewAllocationService(db, nil, nil)
		_, err := svc.ResetAllocation(ctx, branch.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, branchFunds(t, db, branch.ID))
	})

	t.Run("rejects non-ledger currency", func(t *testing.T) {
		db := setupSettlementTestDB(t)

		svc := NewAllocationService(db, nil, nil)
		eur := valueobject.EUR
		_, err := svc.ResetAllocation(ctx, 1, &eur)
		requireDomainCode(t, err, "INVALID_CURRENCY")
	})

	t.Run("unknown branch", func(t *testing.T) {
		db := setupSettlementTestDB(t)

		svc := NewAllocationService(db, nil, nil)
		_, err := svc.ResetAllocation(ctx, 999, nil)
		requireDomainCode(t, err, "BRANCH_NOT_FOUND")
	})
}
