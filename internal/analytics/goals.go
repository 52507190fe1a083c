package analytics

import (
	"context"

	"accountanta/finassist/internal/models"

	"github.com/shopspring/decimal"
)

// DebtDetail is one debt's balance and payment schedule.
type DebtDetail struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	MonthlyPayment float64 `json:"monthly_payment"`
	InterestRate   float64 `json:"interest_rate"`
	DueDate        string  `json:"due_date"`
}

// DebtStatus is the result of the get_debt_status tool.
type DebtStatus struct {
	TotalDebt           float64      `json:"total_debt"`
	TotalMonthlyPayment float64      `json:"total_monthly_payment"`
	DebtCount           int          `json:"debt_count"`
	Debts               []DebtDetail `json:"debts"`
}

// DebtStatus reports the user's outstanding balances and monthly payment
// obligations.
func (e *Engine) DebtStatus(ctx context.Context, userID string) *DebtStatus {
	debts := e.provider.GetDebts(ctx, userID)

	totalDebt := decimal.Zero
	totalPayment := decimal.Zero
	details := make([]DebtDetail, 0, len(debts))

	for _, d := range debts {
		totalDebt = totalDebt.Add(d.Balance)
		totalPayment = totalPayment.Add(d.MonthlyPayment)
		details = append(details, DebtDetail{
			Name:           d.Name,
			Balance:        models.Round2(d.Balance),
			MonthlyPayment: models.Round2(d.MonthlyPayment),
			InterestRate:   d.InterestRate,
			DueDate:        d.DueDate,
		})
	}

	return &DebtStatus{
		TotalDebt:           models.Round2(totalDebt),
		TotalMonthlyPayment: models.Round2(totalPayment),
		DebtCount:           len(debts),
		Debts:               details,
	}
}

// GoalProgress is one savings goal's progress toward its target.
type GoalProgress struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Remaining     float64 `json:"remaining"`
	Percentage    float64 `json:"percentage"`
	Deadline      string  `json:"deadline"`
	Status        string  `json:"status"`
}

// SavingsOverall aggregates progress across all goals.
type SavingsOverall struct {
	TotalTarget float64 `json:"total_target"`
	TotalSaved  float64 `json:"total_saved"`
	Percentage  float64 `json:"percentage"`
}

// SavingsProgress is the result of the get_savings_progress tool.
type SavingsProgress struct {
	Overall SavingsOverall `json:"overall"`
	Goals   []GoalProgress `json:"goals"`
}

// SavingsProgress reports per-goal and aggregate progress. A zero target
// reads as 0%, never a division error.
func (e *Engine) SavingsProgress(ctx context.Context, userID string) *SavingsProgress {
	goals := e.provider.GetSavingsGoals(ctx, userID)

	totalTarget := decimal.Zero
	totalSaved := decimal.Zero
	progress := make([]GoalProgress, 0, len(goals))

	for _, g := range goals {
		percentage := percentageOf(g.CurrentAmount, g.TargetAmount)
		progress = append(progress, GoalProgress{
			Name:          g.Name,
			TargetAmount:  models.Round2(g.TargetAmount),
			CurrentAmount: models.Round2(g.CurrentAmount),
			Remaining:     models.Round2(g.TargetAmount.Sub(g.CurrentAmount)),
			Percentage:    percentage,
			Deadline:      g.Deadline,
			Status:        savingsStatusLabel(percentage),
		})

		totalTarget = totalTarget.Add(g.TargetAmount)
		totalSaved = totalSaved.Add(g.CurrentAmount)
	}

	return &SavingsProgress{
		Overall: SavingsOverall{
			TotalTarget: models.Round2(totalTarget),
			TotalSaved:  models.Round2(totalSaved),
			Percentage:  percentageOf(totalSaved, totalTarget),
		},
		Goals: progress,
	}
}
