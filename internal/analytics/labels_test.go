package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetStatusLabel(t *testing.T) {
	tests := []struct {
		percentage float64
		expected   string
	}{
		{0, BudgetOnTrack},
		{49.99, BudgetOnTrack},
		{50, BudgetModerate},
		{79.99, BudgetModerate},
		{80, BudgetAtRisk},
		{99.99, BudgetAtRisk},
		{100, BudgetOverBudget},
		{109.99, BudgetOverBudget},
		{110, BudgetSignificantlyOver},
		{250, BudgetSignificantlyOver},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, budgetStatusLabel(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestSavingsStatusLabel(t *testing.T) {
	tests := []struct {
		percentage float64
		expected   string
	}{
		{0, SavingsJustStarted},
		{24.99, SavingsJustStarted},
		{25, SavingsMakingProgress},
		{49.99, SavingsMakingProgress},
		{50, SavingsHalfwayThere},
		{74.99, SavingsHalfwayThere},
		{75, SavingsAlmostComplete},
		{99.99, SavingsAlmostComplete},
		{100, SavingsGoalAchieved},
		{130, SavingsGoalAchieved},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, savingsStatusLabel(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name     string
		totals   []float64
		expected string
	}{
		{"empty", nil, TrendStable},
		{"single point", []float64{500}, TrendStable},
		{"flat", []float64{100, 100, 100, 100, 100, 100}, TrendStable},
		{"rising", []float64{100, 100, 100, 200, 200, 200}, TrendIncreasing},
		{"falling", []float64{200, 200, 200, 100, 100, 100}, TrendDecreasing},
		{"exactly +10 percent", []float64{100, 100, 100, 110, 110, 110}, TrendIncreasing},
		{"exactly -10 percent", []float64{100, 100, 100, 90, 90, 90}, TrendDecreasing},
		{"just inside stable band", []float64{100, 100, 100, 109, 109, 109}, TrendStable},
		// With fewer than 4 points the windows fully overlap, so the
		// means are equal and the trend reads stable.
		{"two points", []float64{100, 120}, TrendStable},
		{"zero baseline", []float64{0, 0, 0, 500, 500, 500}, TrendStable},
		{"noise within band", []float64{95, 105, 100, 98, 102, 101}, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyTrend(tt.totals))
		})
	}
}
