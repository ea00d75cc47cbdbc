package persistence

import (
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"gorm.io/gorm"
)

// Repositories bundles all repositories bound to a single *gorm.DB handle.
// Services build a transaction-scoped bundle inside a unit of work so every
// repository call shares the same database transaction.
type Repositories struct {
	Branches      ledger.BranchRepository
	Funds         ledger.FundRepository
	Transactions  transfer.TransactionRepository
	Notifications transfer.NotificationRepository
	Profits       transfer.ProfitRepository
}

// NewRepositories creates a repository bundle bound to the given handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Branches:      NewGormBranchRepository(db),
		Funds:         NewGormFundRepository(db),
		Transactions:  NewGormTransactionRepository(db),
		Notifications: NewGormNotificationRepository(db),
		Profits:       NewGormProfitRepository(db),
	}
}
