package transfer

import (
	"context"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionFilter defines filtering options for transaction queries
type TransactionFilter struct {
	shared.Filter
	BranchID            *int64
	DestinationBranchID *int64
	Status              *Status
	IsReceived          *bool
	DateFrom            *time.Time
	DateTo              *time.Time
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	// Create inserts a new transaction
	Create(ctx context.Context, transaction *Transaction) error

	// FindByID finds a transaction by id
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByIDForUpdate finds a transaction and takes an exclusive row lock
	// for the duration of the enclosing unit of work
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Save persists workflow-field changes of an existing transaction
	Save(ctx context.Context, transaction *Transaction) error

	// FindAll lists transactions with filtering
	FindAll(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// Create inserts a new notification
	Create(ctx context.Context, notification *Notification) error

	// UpdateStatusByTransaction sets the delivery status of the notifications
	// linked to a transaction
	UpdateStatusByTransaction(ctx context.Context, transactionID uuid.UUID, status NotificationStatus) error

	// FindByTransaction lists the notifications linked to a transaction
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]Notification, error)
}

// ProfitRepository defines the interface for branch profit persistence
type ProfitRepository interface {
	// Create inserts a profit row
	Create(ctx context.Context, profit *BranchProfit) error

	// DeleteByTransaction removes all profit rows of a transaction
	DeleteByTransaction(ctx context.Context, transactionID uuid.UUID) error

	// FindByTransaction lists the profit rows of a transaction
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) ([]BranchProfit, error)

	// FindByBranch lists profit rows for a branch within a date range
	FindByBranch(ctx context.Context, branchID int64, from, to time.Time, filter shared.Filter) ([]BranchProfit, int64, error)
}
