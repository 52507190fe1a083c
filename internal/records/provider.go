// Package records provides read-only access to a user's financial records:
// transactions, budgets, debts, and savings goals. Providers are constructed
// explicitly and injected; there is no package-level singleton.
package records

import (
	"context"
	"time"

	"accountanta/finassist/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction fetch. Only the criteria a backing
// store can evaluate natively belong here; merchant and max-amount filtering
// happen after the fetch, in the analytics engine.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	MinAmount *decimal.Decimal
	Limit     int
}

// Provider supplies one user's financial records. Implementations must treat
// internal failures as absent data: every method returns an empty slice
// rather than an error, so the analytics engine sees zeros, not failures.
type Provider interface {
	GetTransactions(ctx context.Context, userID string, filter TransactionFilter) []models.Transaction
	GetBudgets(ctx context.Context, userID string) []models.Budget
	GetDebts(ctx context.Context, userID string) []models.Debt
	GetSavingsGoals(ctx context.Context, userID string) []models.SavingsGoal
}

// applyFilter evaluates a TransactionFilter against an in-memory slice the
// way a query-capable store would, preserving input order.
func applyFilter(txs []models.Transaction, filter TransactionFilter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.Date.After(endOfDay(*filter.EndDate)) {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.MinAmount != nil && t.Amount.LessThan(*filter.MinAmount) {
			continue
		}
		out = append(out, t)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
