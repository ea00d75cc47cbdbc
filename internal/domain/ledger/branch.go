package ledger

import (
	"fmt"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BranchRole classifies how a branch participates in settlement.
// A Normal branch carries real balances and is subject to funds checks;
// the Unlimited role belongs to the head-office "System Manager" branch,
// which may originate transfers without ever being debited.
type BranchRole string

const (
	RoleNormal    BranchRole = "NORMAL"
	RoleUnlimited BranchRole = "UNLIMITED"
)

// IsValid checks if the role is a valid BranchRole
func (r BranchRole) IsValid() bool {
	return r == RoleNormal || r == RoleUnlimited
}

// SystemManagerBranchID is the reserved id of the head-office branch.
const SystemManagerBranchID int64 = 0

// SystemManagerName is the sentinel employee name recognized as head office.
const SystemManagerName = "System Manager"

// Branch is the ledger aggregate: a money-transfer office holding
// independent SYP and USD allocated balances.
type Branch struct {
	ID           int64
	Code         string
	Name         string
	Location     string
	Governorate  string
	Role         BranchRole
	AllocatedSYP decimal.Decimal
	AllocatedUSD decimal.Decimal
	TaxRate      decimal.Decimal // percent applied to the benefited amount of outgoing transfers
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBranch creates a new normal branch with zero balances
func NewBranch(code, name, location, governorate string, taxRate decimal.Decimal) (*Branch, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_CODE", "Branch code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}

	now := time.Now()
	return &Branch{
		Code:         code,
		Name:         name,
		Location:     location,
		Governorate:  governorate,
		Role:         RoleNormal,
		AllocatedSYP: decimal.Zero,
		AllocatedUSD: decimal.Zero,
		TaxRate:      taxRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsUnlimited reports whether the branch is exempt from funds checks.
func (b *Branch) IsUnlimited() bool {
	return b.Role == RoleUnlimited || b.ID == SystemManagerBranchID
}

// BalanceFor returns the allocated balance the given currency settles against.
// Non-USD currencies fall back to the SYP balance.
func (b *Branch) BalanceFor(currency valueobject.Currency) decimal.Decimal {
	if currency.BalanceCurrency() == valueobject.USD {
		return b.AllocatedUSD
	}
	return b.AllocatedSYP
}

// AllocatedAmount is the legacy mirror field older readers expect.
// It is derived from the SYP balance and never stored independently.
func (b *Branch) AllocatedAmount() decimal.Decimal {
	return b.AllocatedSYP
}

// CanCover reports whether the branch can fund a debit of amount in currency.
// An Unlimited branch can always cover.
func (b *Branch) CanCover(currency valueobject.Currency, amount decimal.Decimal) bool {
	if b.IsUnlimited() {
		return true
	}
	return b.BalanceFor(currency).GreaterThanOrEqual(amount)
}

// Credit adds amount to the balance for the given currency
func (b *Branch) Credit(currency valueobject.Currency, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount cannot be negative")
	}
	b.apply(currency, amount)
	return nil
}

// Debit subtracts amount from the balance for the given currency.
// Fails without mutation if the resulting balance would be negative.
// Unlimited branches are never debited; callers must not route a debit here
// for them, and doing so is rejected.
func (b *Branch) Debit(currency valueobject.Currency, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount cannot be negative")
	}
	if b.IsUnlimited() {
		return shared.NewDomainError("INVALID_STATE", "The System Manager branch cannot be debited")
	}
	available := b.BalanceFor(currency)
	if available.LessThan(amount) {
		return NewInsufficientFundsError(available, currency.BalanceCurrency())
	}
	b.apply(currency, amount.Neg())
	return nil
}

// ResetBalance zeroes the balance for one ledger currency and returns the
// amount that was cleared, for the compensating audit entry.
func (b *Branch) ResetBalance(currency valueobject.Currency) decimal.Decimal {
	cleared := b.BalanceFor(currency)
	if currency.BalanceCurrency() == valueobject.USD {
		b.AllocatedUSD = decimal.Zero
	} else {
		b.AllocatedSYP = decimal.Zero
	}
	b.UpdatedAt = time.Now()
	return cleared
}

// SetTaxRate updates the branch tax rate
func (b *Branch) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	b.TaxRate = rate
	b.UpdatedAt = time.Now()
	return nil
}

func (b *Branch) apply(currency valueobject.Currency, delta decimal.Decimal) {
	if currency.BalanceCurrency() == valueobject.USD {
		b.AllocatedUSD = b.AllocatedUSD.Add(delta)
	} else {
		b.AllocatedSYP = b.AllocatedSYP.Add(delta)
	}
	b.UpdatedAt = time.Now()
}

// NewInsufficientFundsError builds the typed error a rejected debit surfaces,
// carrying the available balance for display at the boundary.
func NewInsufficientFundsError(available decimal.Decimal, currency valueobject.Currency) *shared.DomainError {
	balance, _ := valueobject.NewMoney(available, currency)
	return shared.NewDomainError(
		"INSUFFICIENT_FUNDS",
		fmt.Sprintf("Insufficient allocated funds: available %s", balance),
	)
}

// NewBranchNotFoundError reports a missing sending or destination branch
func NewBranchNotFoundError(id int64) *shared.DomainError {
	return shared.NewDomainError("BRANCH_NOT_FOUND", fmt.Sprintf("Branch %d does not exist", id))
}
