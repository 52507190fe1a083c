package records

import (
	"context"

	"accountanta/finassist/internal/models"
)

// MemoryProvider is an in-memory Provider used by tests and seed data.
// Records are keyed by user id; the zero value is empty but usable.
type MemoryProvider struct {
	Transactions map[string][]models.Transaction
	Budgets      map[string][]models.Budget
	Debts        map[string][]models.Debt
	Goals        map[string][]models.SavingsGoal
}

// NewMemoryProvider creates an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		Transactions: make(map[string][]models.Transaction),
		Budgets:      make(map[string][]models.Budget),
		Debts:        make(map[string][]models.Debt),
		Goals:        make(map[string][]models.SavingsGoal),
	}
}

func (p *MemoryProvider) GetTransactions(_ context.Context, userID string, filter TransactionFilter) []models.Transaction {
	if p.Transactions == nil {
		return nil
	}
	return applyFilter(p.Transactions[userID], filter)
}

func (p *MemoryProvider) GetBudgets(_ context.Context, userID string) []models.Budget {
	if p.Budgets == nil {
		return nil
	}
	return p.Budgets[userID]
}

func (p *MemoryProvider) GetDebts(_ context.Context, userID string) []models.Debt {
	if p.Debts == nil {
		return nil
	}
	return p.Debts[userID]
}

func (p *MemoryProvider) GetSavingsGoals(_ context.Context, userID string) []models.SavingsGoal {
	if p.Goals == nil {
		return nil
	}
	return p.Goals[userID]
}
