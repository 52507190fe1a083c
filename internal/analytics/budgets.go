package analytics

import (
	"context"

	"accountanta/finassist/internal/dateutils"
	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/records"

	"github.com/shopspring/decimal"
)

// BudgetStatusEntry is one category's spend against its configured limit.
type BudgetStatusEntry struct {
	Category   string  `json:"category"`
	Limit      float64 `json:"limit"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// BudgetOverall aggregates the configured budgets against total spend.
type BudgetOverall struct {
	TotalBudget float64 `json:"total_budget"`
	TotalSpent  float64 `json:"total_spent"`
	Percentage  float64 `json:"percentage"`
}

// BudgetStatus is the result of the get_budget_status tool. OverBudget and
// AtRisk overlap at exactly 100%, by design of the source thresholds.
type BudgetStatus struct {
	Overall    BudgetOverall       `json:"overall"`
	ByCategory []BudgetStatusEntry `json:"by_category"`
	OverBudget []BudgetStatusEntry `json:"over_budget"`
	AtRisk     []BudgetStatusEntry `json:"at_risk"`
}

// BudgetStatus compares the current calendar month's spend per category
// against each configured budget.
func (e *Engine) BudgetStatus(ctx context.Context, userID string) *BudgetStatus {
	now := e.clock()
	start := dateutils.StartOfMonth(now)
	end := dateutils.StartOfDay(now)

	budgets := e.provider.GetBudgets(ctx, userID)
	txs := e.provider.GetTransactions(ctx, userID, records.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
	})

	spentByCategory := make(map[string]decimal.Decimal)
	totalSpent := decimal.Zero
	for _, t := range txs {
		spentByCategory[t.Category] = spentByCategory[t.Category].Add(t.Amount)
		totalSpent = totalSpent.Add(t.Amount)
	}

	byCategory := make([]BudgetStatusEntry, 0, len(budgets))
	var overBudget, atRisk []BudgetStatusEntry
	totalBudget := decimal.Zero

	for _, budget := range budgets {
		spent := spentByCategory[budget.Category]
		percentage := percentageOf(spent, budget.Limit)

		entry := BudgetStatusEntry{
			Category:   budget.Category,
			Limit:      models.Round2(budget.Limit),
			Spent:      models.Round2(spent),
			Remaining:  models.Round2(budget.Limit.Sub(spent)),
			Percentage: percentage,
			Status:     budgetStatusLabel(percentage),
		}
		byCategory = append(byCategory, entry)

		if percentage > 100 {
			overBudget = append(overBudget, entry)
		}
		if percentage >= 80 && percentage <= 100 {
			atRisk = append(atRisk, entry)
		}

		totalBudget = totalBudget.Add(budget.Limit)
	}

	return &BudgetStatus{
		Overall: BudgetOverall{
			TotalBudget: models.Round2(totalBudget),
			TotalSpent:  models.Round2(totalSpent),
			Percentage:  percentageOf(totalSpent, totalBudget),
		},
		ByCategory: byCategory,
		OverBudget: overBudget,
		AtRisk:     atRisk,
	}
}
