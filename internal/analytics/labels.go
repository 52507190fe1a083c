package analytics

// Budget status labels, classified from the spent-vs-limit percentage.
const (
	BudgetOnTrack           = "on_track"
	BudgetModerate          = "moderate"
	BudgetAtRisk            = "at_risk"
	BudgetOverBudget        = "over_budget"
	BudgetSignificantlyOver = "significantly_over"
)

// Savings status labels, classified from the saved-vs-target percentage.
const (
	SavingsJustStarted    = "just_started"
	SavingsMakingProgress = "making_progress"
	SavingsHalfwayThere   = "halfway_there"
	SavingsAlmostComplete = "almost_complete"
	SavingsGoalAchieved   = "goal_achieved"
)

// Trend labels for multi-month spending classification.
const (
	TrendIncreasing = "increasing"
	TrendStable     = "stable"
	TrendDecreasing = "decreasing"
)

// Directional labels for period comparison.
const (
	DirectionIncreased = "increased"
	DirectionDecreased = "decreased"
)

// budgetStatusLabel maps a budget-usage percentage to its label. The function
// is total: every value lands in exactly one bucket, with lower bounds closed
// (80.0 is at_risk, not moderate).
func budgetStatusLabel(percentage float64) string {
	switch {
	case percentage < 50:
		return BudgetOnTrack
	case percentage < 80:
		return BudgetModerate
	case percentage < 100:
		return BudgetAtRisk
	case percentage < 110:
		return BudgetOverBudget
	default:
		return BudgetSignificantlyOver
	}
}

// savingsStatusLabel maps a savings-progress percentage to its label.
func savingsStatusLabel(percentage float64) string {
	switch {
	case percentage < 25:
		return SavingsJustStarted
	case percentage < 50:
		return SavingsMakingProgress
	case percentage < 75:
		return SavingsHalfwayThere
	case percentage < 100:
		return SavingsAlmostComplete
	default:
		return SavingsGoalAchieved
	}
}

// classifyTrend compares the mean of the last up-to-3 values against the mean
// of the first up-to-3. Fewer than 2 data points always classify as stable.
// A change of 10% or more in either direction leaves the stable band.
func classifyTrend(monthlyTotals []float64) string {
	if len(monthlyTotals) < 2 {
		return TrendStable
	}

	recent := meanOf(lastN(monthlyTotals, 3))
	older := meanOf(firstN(monthlyTotals, 3))

	var change float64
	if older != 0 {
		change = (recent - older) / older * 100
	}

	switch {
	case change <= -10:
		return TrendDecreasing
	case change >= 10:
		return TrendIncreasing
	default:
		return TrendStable
	}
}

func firstN(values []float64, n int) []float64 {
	if len(values) < n {
		return values
	}
	return values[:n]
}

func lastN(values []float64, n int) []float64 {
	if len(values) < n {
		return values
	}
	return values[len(values)-n:]
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
