package analytics

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/records"
)

func TestDebtStatus(t *testing.T) {
	provider := records.NewMemoryProvider()
	provider.Debts[testUser] = []models.Debt{
		{
			Name:           "Car Loan",
			Balance:        decimal.NewFromFloat(12000),
			MonthlyPayment: decimal.NewFromFloat(350),
			InterestRate:   4.5,
			DueDate:        "2027-09-01",
		},
		{
			Name:           "Credit Card",
			Balance:        decimal.NewFromFloat(800.50),
			MonthlyPayment: decimal.NewFromFloat(100),
			InterestRate:   19.9,
			DueDate:        "2025-07-15",
		},
	}
	engine := newTestEngine(t, provider)

	status := engine.DebtStatus(context.Background(), testUser)

	assert.Equal(t, 12800.50, status.TotalDebt)
	assert.Equal(t, 450.0, status.TotalMonthlyPayment)
	assert.Equal(t, 2, status.DebtCount)
	require.Len(t, status.Debts, 2)
	assert.Equal(t, "Car Loan", status.Debts[0].Name)
	assert.Equal(t, 4.5, status.Debts[0].InterestRate)
}

func TestDebtStatusEmpty(t *testing.T) {
	engine := newTestEngine(t, records.NewMemoryProvider())

	status := engine.DebtStatus(context.Background(), testUser)

	assert.Equal(t, 0.0, status.TotalDebt)
	assert.Equal(t, 0, status.DebtCount)
	assert.Empty(t, status.Debts)
}

func TestSavingsProgress(t *testing.T) {
	provider := records.NewMemoryProvider()
	provider.Goals[testUser] = []models.SavingsGoal{
		{
			Name:          "Emergency Fund",
			TargetAmount:  decimal.NewFromFloat(10000),
			CurrentAmount: decimal.NewFromFloat(2500),
			Deadline:      "2026-01-01",
		},
		{
			Name:          "Vacation",
			TargetAmount:  decimal.NewFromFloat(2000),
			CurrentAmount: decimal.NewFromFloat(2000),
			Deadline:      "2025-08-01",
		},
	}
	engine := newTestEngine(t, provider)

	progress := engine.SavingsProgress(context.Background(), testUser)

	require.Len(t, progress.Goals, 2)

	emergency := progress.Goals[0]
	requirePercentage(t, 25, emergency.Percentage)
	assert.Equal(t, 7500.0, emergency.Remaining)
	assert.Equal(t, SavingsMakingProgress, emergency.Status)

	vacation := progress.Goals[1]
	requirePercentage(t, 100, vacation.Percentage)
	assert.Equal(t, SavingsGoalAchieved, vacation.Status)

	assert.Equal(t, 12000.0, progress.Overall.TotalTarget)
	assert.Equal(t, 4500.0, progress.Overall.TotalSaved)
	requirePercentage(t, 37.5, progress.Overall.Percentage)
}

func TestSavingsProgressZeroTarget(t *testing.T) {
	provider := records.NewMemoryProvider()
	provider.Goals[testUser] = []models.SavingsGoal{
		{Name: "Unset", TargetAmount: decimal.Zero, CurrentAmount: decimal.NewFromFloat(50)},
	}
	engine := newTestEngine(t, provider)

	progress := engine.SavingsProgress(context.Background(), testUser)

	require.Len(t, progress.Goals, 1)
	requirePercentage(t, 0, progress.Goals[0].Percentage)
	assert.Equal(t, SavingsJustStarted, progress.Goals[0].Status)
}
