package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountanta/finassist/internal/logging"
)

const transactionsCSV = `ID,Date,Amount,Category,Merchant
t1,2025-06-02,50.00,Dining,Cafe Uno
t2,2025-06-05,19.90,Transport,Metro
t3,bad-date,10.00,Dining,Skipped
t4,2025-06-10,not-a-number,Dining,Zeroed
`

const budgetsYAML = `budgets:
  - category: Dining
    limit: "300"
  - category: Transport
    limit: "120.50"
`

const debtsYAML = `debts:
  - name: Car Loan
    balance: "12000"
    monthly_payment: "350"
    interest_rate: 4.5
    due_date: "2027-09-01"
`

const goalsYAML = `goals:
  - name: Emergency Fund
    target_amount: "10000"
    current_amount: "2500"
    deadline: "2026-01-01"
`

func writeFixtures(t *testing.T, userID string) *LocalProvider {
	t.Helper()
	dir := t.TempDir()
	userDir := filepath.Join(dir, userID)
	require.NoError(t, os.MkdirAll(userDir, 0o755))

	files := map[string]string{
		"transactions.csv":   transactionsCSV,
		"budgets.yaml":       budgetsYAML,
		"debts.yaml":         debtsYAML,
		"savings_goals.yaml": goalsYAML,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(userDir, name), []byte(content), 0o644))
	}
	return NewLocalProvider(dir, logging.NewMockLogger())
}

func TestLocalProviderTransactions(t *testing.T) {
	p := writeFixtures(t, "alice")

	txs := p.GetTransactions(context.Background(), "alice", TransactionFilter{})

	// The unparseable-date row is skipped; the bad amount reads as zero.
	require.Len(t, txs, 3)
	assert.Equal(t, "t1", txs[0].ID)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromFloat(50)))
	assert.Equal(t, "Cafe Uno", txs[0].Merchant)
	assert.True(t, txs[2].Amount.IsZero())
}

func TestLocalProviderTransactionFilter(t *testing.T) {
	p := writeFixtures(t, "alice")

	start := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	txs := p.GetTransactions(context.Background(), "alice", TransactionFilter{
		StartDate: &start,
		EndDate:   &end, // inclusive through end of day
	})

	require.Len(t, txs, 1)
	assert.Equal(t, "t2", txs[0].ID)
}

func TestLocalProviderBudgets(t *testing.T) {
	p := writeFixtures(t, "alice")

	budgets := p.GetBudgets(context.Background(), "alice")

	require.Len(t, budgets, 2)
	assert.Equal(t, "Dining", budgets[0].Category)
	assert.True(t, budgets[1].Limit.Equal(decimal.NewFromFloat(120.50)))
}

func TestLocalProviderDebtsAndGoals(t *testing.T) {
	p := writeFixtures(t, "alice")

	debts := p.GetDebts(context.Background(), "alice")
	require.Len(t, debts, 1)
	assert.Equal(t, "Car Loan", debts[0].Name)
	assert.Equal(t, 4.5, debts[0].InterestRate)

	goals := p.GetSavingsGoals(context.Background(), "alice")
	require.Len(t, goals, 1)
	assert.Equal(t, "Emergency Fund", goals[0].Name)
}

func TestLocalProviderMissingUserYieldsEmpty(t *testing.T) {
	p := NewLocalProvider(t.TempDir(), logging.NewMockLogger())
	ctx := context.Background()

	assert.Empty(t, p.GetTransactions(ctx, "ghost", TransactionFilter{}))
	assert.Empty(t, p.GetBudgets(ctx, "ghost"))
	assert.Empty(t, p.GetDebts(ctx, "ghost"))
	assert.Empty(t, p.GetSavingsGoals(ctx, "ghost"))
}

func TestApplyFilterLimit(t *testing.T) {
	p := writeFixtures(t, "alice")

	txs := p.GetTransactions(context.Background(), "alice", TransactionFilter{Limit: 2})
	assert.Len(t, txs, 2)
}
