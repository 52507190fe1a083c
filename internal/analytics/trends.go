package analytics

import (
	"context"
	"sort"

	"accountanta/finassist/internal/dateutils"
	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/records"

	"github.com/shopspring/decimal"
)

// DefaultTrendMonths is the analysis window when the model does not ask for
// a specific number of months.
const DefaultTrendMonths = 6

// MonthlyTotal is one calendar month's summed spend.
type MonthlyTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// SpendingTrends is the result of the get_spending_trends tool.
type SpendingTrends struct {
	PeriodMonths    int            `json:"period_months"`
	MonthlySpending []MonthlyTotal `json:"monthly_spending"`
	AverageMonthly  float64        `json:"average_monthly"`
	HighestMonth    *MonthlyTotal  `json:"highest_month"`
	LowestMonth     *MonthlyTotal  `json:"lowest_month"`
	Trend           string         `json:"trend"`
}

// SpendingTrends groups spend by calendar month from the start of the month
// `months` months ago through today, and classifies the overall direction.
func (e *Engine) SpendingTrends(ctx context.Context, userID string, months int) *SpendingTrends {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	now := e.clock()
	start := dateutils.StartOfMonth(now.AddDate(0, -months, 0))
	end := dateutils.StartOfDay(now)

	txs := e.provider.GetTransactions(ctx, userID, records.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
	})

	totals := make(map[string]decimal.Decimal)
	var monthKeys []string
	for _, t := range txs {
		key := dateutils.MonthKey(t.Date)
		if _, seen := totals[key]; !seen {
			monthKeys = append(monthKeys, key)
		}
		totals[key] = totals[key].Add(t.Amount)
	}
	sort.Strings(monthKeys)

	monthly := make([]MonthlyTotal, 0, len(monthKeys))
	rawTotals := make([]float64, 0, len(monthKeys))
	sum := decimal.Zero
	var highest, lowest *MonthlyTotal
	var highestVal, lowestVal decimal.Decimal

	for i, key := range monthKeys {
		total := totals[key]
		entry := MonthlyTotal{Month: key, Total: models.Round2(total)}
		monthly = append(monthly, entry)
		// Trend math runs on unrounded values so classification does not
		// flip on boundary rounding.
		rawTotals = append(rawTotals, total.InexactFloat64())
		sum = sum.Add(total)

		if i == 0 || total.GreaterThan(highestVal) {
			highestVal = total
			highest = &monthly[len(monthly)-1]
		}
		if i == 0 || total.LessThan(lowestVal) {
			lowestVal = total
			lowest = &monthly[len(monthly)-1]
		}
	}

	average := decimal.Zero
	if len(monthly) > 0 {
		average = sum.Div(decimal.NewFromInt(int64(len(monthly))))
	}

	return &SpendingTrends{
		PeriodMonths:    months,
		MonthlySpending: monthly,
		AverageMonthly:  models.Round2(average),
		HighestMonth:    highest,
		LowestMonth:     lowest,
		Trend:           classifyTrend(rawTotals),
	}
}

// PeriodTotals carries one side of a period comparison.
type PeriodTotals struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
}

// PeriodComparison is the result of the compare_periods tool.
type PeriodComparison struct {
	Period1          PeriodTotals `json:"period1"`
	Period2          PeriodTotals `json:"period2"`
	Difference       float64      `json:"difference"`
	PercentageChange float64      `json:"percentage_change"`
	Trend            string       `json:"trend"`
}

// ComparePeriods totals spend in two periods and reports the difference
// relative to the second. A difference of exactly zero reads as "decreased",
// matching the source semantics of strictly-positive meaning growth.
func (e *Engine) ComparePeriods(ctx context.Context, userID, period1, period2 string) *PeriodComparison {
	now := e.clock()
	r1 := dateutils.ResolvePeriod(period1, now)
	r2 := dateutils.ResolvePeriod(period2, now)

	txs1 := e.provider.GetTransactions(ctx, userID, records.TransactionFilter{StartDate: &r1.Start, EndDate: &r1.End})
	txs2 := e.provider.GetTransactions(ctx, userID, records.TransactionFilter{StartDate: &r2.Start, EndDate: &r2.End})

	total1 := models.SumAmounts(txs1)
	total2 := models.SumAmounts(txs2)
	difference := total1.Sub(total2)

	trend := DirectionDecreased
	if difference.IsPositive() {
		trend = DirectionIncreased
	}

	return &PeriodComparison{
		Period1:          PeriodTotals{Period: period1, Total: models.Round2(total1), Count: len(txs1)},
		Period2:          PeriodTotals{Period: period2, Total: models.Round2(total2), Count: len(txs2)},
		Difference:       models.Round2(difference),
		PercentageChange: percentageOf(difference, total2),
		Trend:            trend,
	}
}
