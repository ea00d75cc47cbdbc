package ledger

import (
	"testing"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFundEntry(t *testing.T) {
	t.Run("allocation keeps positive sign", func(t *testing.T) {
		entry, err := NewFundEntry(1, decimal.NewFromInt(1000), FundEntryAllocation, valueobject.SYP, "initial capital")
		require.NoError(t, err)

		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, FundEntryAllocation, entry.EntryType)
		assert.NotEqual(t, "", entry.ID.String())
	})

	t.Run("deduction and reset carry negative sign", func(t *testing.T) {
		deduction, err := NewFundEntry(1, decimal.NewFromInt(1000), FundEntryDeduction, valueobject.SYP, "")
		require.NoError(t, err)
		assert.True(t, deduction.Amount.Equal(decimal.NewFromInt(-1000)))

		reset, err := NewFundEntry(1, decimal.NewFromInt(500), FundEntryReset, valueobject.USD, "")
		require.NoError(t, err)
		assert.True(t, reset.Amount.Equal(decimal.NewFromInt(-500)))
	})

	t.Run("refund is a credit", func(t *testing.T) {
		entry, err := NewFundEntry(1, decimal.NewFromInt(250), FundEntryRefund, valueobject.SYP, "")
		require.NoError(t, err)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(250)))
	})

	t.Run("rejects unknown entry type", func(t *testing.T) {
		_, err := NewFundEntry(1, decimal.NewFromInt(100), FundEntryType("bogus"), valueobject.SYP, "")
		assertDomainCode(t, err, "INVALID_ENTRY_TYPE")
	})

	t.Run("rejects negative magnitude", func(t *testing.T) {
		_, err := NewFundEntry(1, decimal.NewFromInt(-100), FundEntryAllocation, valueobject.SYP, "")
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})
}

func TestTransferEntryConstructors(t *testing.T) {
	deduction, err := NewTransferDeductionEntry(1, decimal.NewFromInt(100000), valueobject.SYP, "tx-1")
	require.NoError(t, err)
	assert.True(t, deduction.Amount.IsNegative())
	assert.Contains(t, deduction.Description, "tx-1")

	allocation, err := NewTransferAllocationEntry(2, decimal.NewFromInt(100000), valueobject.SYP, "tx-1")
	require.NoError(t, err)
	assert.True(t, allocation.Amount.IsPositive())

	refund, err := NewRefundEntry(1, decimal.NewFromInt(100000), valueobject.SYP, "tx-1")
	require.NoError(t, err)
	assert.True(t, refund.Amount.IsPositive())
	assert.Equal(t, FundEntryRefund, refund.EntryType)

	reset, err := NewResetEntry(1, decimal.NewFromInt(40000), valueobject.USD)
	require.NoError(t, err)
	assert.True(t, reset.Amount.Equal(decimal.NewFromInt(-40000)))
	assert.Equal(t, valueobject.USD, reset.Currency)
}
