package settlement

import (
	"context"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/shared"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/transfer"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QueryService serves the read-only transfer projections: transaction
// lookups and lists, and profit summaries. It holds no settlement logic.
type QueryService struct {
	db *gorm.DB
}

// NewQueryService creates a new QueryService
func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

// GetTransaction returns a transaction by id
func (s *QueryService) GetTransaction(ctx context.Context, id uuid.UUID) (*transfer.Transaction, error) {
	repos := persistence.NewRepositories(s.db)
	return repos.Transactions.FindByID(ctx, id)
}

// ListTransactions lists transactions with filtering
func (s *QueryService) ListTransactions(ctx context.Context, filter transfer.TransactionFilter) (shared.Paginated[transfer.Transaction], error) {
	repos := persistence.NewRepositories(s.db)
	transactions, total, err := repos.Transactions.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[transfer.Transaction]{}, err
	}
	return shared.NewPaginated(transactions, total, filter.Page, filter.PageSize), nil
}

// GetTransactionNotifications lists the notifications linked to a transaction
func (s *QueryService) GetTransactionNotifications(ctx context.Context, id uuid.UUID) ([]transfer.Notification, error) {
	repos := persistence.NewRepositories(s.db)
	return repos.Notifications.FindByTransaction(ctx, id)
}

// ProfitSummary aggregates the profit rows of a branch over a date range
type ProfitSummary struct {
	BranchID      int64           `json:"branch_id"`
	FromBenefited decimal.Decimal `json:"from_benefited"`
	FromTax       decimal.Decimal `json:"from_tax"`
	Total         decimal.Decimal `json:"total"`
	RowCount      int64           `json:"row_count"`
}

// GetProfitSummary sums a branch's recognized profit within a date range,
// split by source type
func (s *QueryService) GetProfitSummary(ctx context.Context, branchID int64, from, to time.Time) (*ProfitSummary, error) {
	repos := persistence.NewRepositories(s.db)

	summary := &ProfitSummary{
		BranchID:      branchID,
		FromBenefited: decimal.Zero,
		FromTax:       decimal.Zero,
		Total:         decimal.Zero,
	}

	filter := shared.Filter{} // unpaginated: sum over every row in range
	rows, total, err := repos.Profits.FindByBranch(ctx, branchID, from, to, filter)
	if err != nil {
		return nil, err
	}
	summary.RowCount = total

	for _, row := range rows {
		switch row.SourceType {
		case transfer.ProfitSourceBenefited:
			summary.FromBenefited = summary.FromBenefited.Add(row.Amount)
		case transfer.ProfitSourceTax:
			summary.FromTax = summary.FromTax.Add(row.Amount)
		}
		summary.Total = summary.Total.Add(row.Amount)
	}
	return summary, nil
}

// GetTransactionProfits lists the profit rows of a transaction
func (s *QueryService) GetTransactionProfits(ctx context.Context, id uuid.UUID) ([]transfer.BranchProfit, error) {
	repos := persistence.NewRepositories(s.db)
	return repos.Profits.FindByTransaction(ctx, id)
}
