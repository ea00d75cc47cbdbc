package ledger

import (
	"errors"
	"testing"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranch(t *testing.T) {
	t.Run("creates normal branch with zero balances", func(t *testing.T) {
		branch, err := NewBranch("DMS", "Damascus Central", "Damascus", "Damascus", decimal.NewFromInt(5))
		require.NoError(t, err)

		assert.Equal(t, RoleNormal, branch.Role)
		assert.True(t, branch.AllocatedSYP.IsZero())
		assert.True(t, branch.AllocatedUSD.IsZero())
		assert.True(t, branch.TaxRate.Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewBranch("", "Damascus Central", "", "", decimal.Zero)
		assertDomainCode(t, err, "INVALID_BRANCH_CODE")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBranch("DMS", "", "", "", decimal.Zero)
		assertDomainCode(t, err, "INVALID_BRANCH_NAME")
	})

	t.Run("rejects tax rate above 100", func(t *testing.T) {
		_, err := NewBranch("DMS", "Damascus Central", "", "", decimal.NewFromInt(101))
		assertDomainCode(t, err, "INVALID_TAX_RATE")
	})

	t.Run("rejects negative tax rate", func(t *testing.T) {
		_, err := NewBranch("DMS", "Damascus Central", "", "", decimal.NewFromInt(-1))
		assertDomainCode(t, err, "INVALID_TAX_RATE")
	})
}

func TestBranch_CreditDebit(t *testing.T) {
	t.Run("credits and debits track each currency independently", func(t *testing.T) {
		branch := newTestBranch(t)

		require.NoError(t, branch.Credit(valueobject.SYP, decimal.NewFromInt(500000)))
		require.NoError(t, branch.Credit(valueobject.USD, decimal.NewFromInt(100)))

		require.NoError(t, branch.Debit(valueobject.SYP, decimal.NewFromInt(100000)))

		assert.True(t, branch.AllocatedSYP.Equal(decimal.NewFromInt(400000)))
		assert.True(t, branch.AllocatedUSD.Equal(decimal.NewFromInt(100)))
	})

	t.Run("debit fails without mutation when funds are insufficient", func(t *testing.T) {
		branch := newTestBranch(t)
		require.NoError(t, branch.Credit(valueobject.USD, decimal.NewFromInt(20)))

		err := branch.Debit(valueobject.USD, decimal.NewFromInt(50))
		assertDomainCode(t, err, "INSUFFICIENT_FUNDS")
		assert.Contains(t, err.Error(), "20")
		assert.Contains(t, err.Error(), "USD")

		assert.True(t, branch.AllocatedUSD.Equal(decimal.NewFromInt(20)))
	})

	t.Run("debit can drain the balance exactly to zero", func(t *testing.T) {
		branch := newTestBranch(t)
		require.NoError(t, branch.Credit(valueobject.SYP, decimal.NewFromInt(100)))

		require.NoError(t, branch.Debit(valueobject.SYP, decimal.NewFromInt(100)))
		assert.True(t, branch.AllocatedSYP.IsZero())
	})

	t.Run("non-USD currencies settle against the SYP balance", func(t *testing.T) {
		branch := newTestBranch(t)
		require.NoError(t, branch.Credit(valueobject.EUR, decimal.NewFromInt(300)))

		assert.True(t, branch.AllocatedSYP.Equal(decimal.NewFromInt(300)))
		assert.True(t, branch.AllocatedUSD.IsZero())

		require.NoError(t, branch.Debit(valueobject.TRY, decimal.NewFromInt(100)))
		assert.True(t, branch.AllocatedSYP.Equal(decimal.NewFromInt(200)))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		branch := newTestBranch(t)

		assertDomainCode(t, branch.Credit(valueobject.SYP, decimal.NewFromInt(-1)), "INVALID_AMOUNT")
		assertDomainCode(t, branch.Debit(valueobject.SYP, decimal.NewFromInt(-1)), "INVALID_AMOUNT")
	})
}

func TestBranch_Unlimited(t *testing.T) {
	t.Run("unlimited branch covers any amount", func(t *testing.T) {
		branch := newTestBranch(t)
		branch.Role = RoleUnlimited

		assert.True(t, branch.CanCover(valueobject.SYP, decimal.NewFromInt(1000000000)))
	})

	t.Run("branch id zero is treated as head office", func(t *testing.T) {
		branch := newTestBranch(t)
		branch.ID = SystemManagerBranchID

		assert.True(t, branch.IsUnlimited())
	})

	t.Run("unlimited branch cannot be debited", func(t *testing.T) {
		branch := newTestBranch(t)
		branch.Role = RoleUnlimited

		err := branch.Debit(valueobject.SYP, decimal.NewFromInt(100))
		assertDomainCode(t, err, "INVALID_STATE")
	})
}

func TestBranch_ResetBalance(t *testing.T) {
	branch := newTestBranch(t)
	require.NoError(t, branch.Credit(valueobject.SYP, decimal.NewFromInt(250000)))
	require.NoError(t, branch.Credit(valueobject.USD, decimal.NewFromInt(75)))

	cleared := branch.ResetBalance(valueobject.SYP)
	assert.True(t, cleared.Equal(decimal.NewFromInt(250000)))
	assert.True(t, branch.AllocatedSYP.IsZero())
	assert.True(t, branch.AllocatedUSD.Equal(decimal.NewFromInt(75)), "USD balance untouched")

	cleared = branch.ResetBalance(valueobject.USD)
	assert.True(t, cleared.Equal(decimal.NewFromInt(75)))
	assert.True(t, branch.AllocatedUSD.IsZero())
}

func TestBranch_SetTaxRate(t *testing.T) {
	branch := newTestBranch(t)

	require.NoError(t, branch.SetTaxRate(decimal.NewFromFloat(7.5)))
	assert.True(t, branch.TaxRate.Equal(decimal.NewFromFloat(7.5)))

	assertDomainCode(t, branch.SetTaxRate(decimal.NewFromInt(-1)), "INVALID_TAX_RATE")
	assertDomainCode(t, branch.SetTaxRate(decimal.NewFromInt(150)), "INVALID_TAX_RATE")
}

func TestBranch_AllocatedAmount(t *testing.T) {
	branch := newTestBranch(t)
	require.NoError(t, branch.Credit(valueobject.SYP, decimal.NewFromInt(12345)))
	require.NoError(t, branch.Credit(valueobject.USD, decimal.NewFromInt(99)))

	assert.True(t, branch.AllocatedAmount().Equal(decimal.NewFromInt(12345)), "legacy mirror follows SYP only")
}

func newTestBranch(t *testing.T) *Branch {
	t.Helper()
	branch, err := NewBranch("DMS", "Damascus Central", "Damascus", "Damascus", decimal.Zero)
	require.NoError(t, err)
	branch.ID = 1
	return branch
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
}
