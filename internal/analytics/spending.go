package analytics

import (
	"context"
	"sort"
	"strings"

	"accountanta/finassist/internal/dateutils"
	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/records"

	"github.com/shopspring/decimal"
)

// maxListResults caps get_transaction_list responses regardless of the
// requested limit, to bound the payload fed back to the model.
const maxListResults = 100

// SpendingSummary is the result of the get_spending_summary tool.
type SpendingSummary struct {
	Period             string              `json:"period"`
	StartDate          string              `json:"start_date"`
	EndDate            string              `json:"end_date"`
	TotalSpending      float64             `json:"total_spending"`
	TransactionCount   int                 `json:"transaction_count"`
	ByCategory         []CategoryAggregate `json:"by_category"`
	TopCategories      []CategoryAggregate `json:"top_categories"`
	LargestTransaction *TransactionDetail  `json:"largest_transaction"`
}

// SpendingSummary computes the total and per-category spend for a period,
// optionally restricted to one category.
func (e *Engine) SpendingSummary(ctx context.Context, userID, period, category string) *SpendingSummary {
	r := dateutils.ResolvePeriod(period, e.clock())
	filter := records.TransactionFilter{
		StartDate: &r.Start,
		EndDate:   &r.End,
		Category:  category,
	}

	txs := e.provider.GetTransactions(ctx, userID, filter)

	byCategory := aggregateByCategory(txs)
	topCategories := byCategory
	if len(topCategories) > 3 {
		topCategories = topCategories[:3]
	}

	e.log.WithFields(
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldPeriod, Value: period},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	).Debug("Computed spending summary")

	return &SpendingSummary{
		Period:             period,
		StartDate:          dateutils.ToISODate(r.Start),
		EndDate:            dateutils.ToISODate(r.End),
		TotalSpending:      models.Round2(models.SumAmounts(txs)),
		TransactionCount:   len(txs),
		ByCategory:         byCategory,
		TopCategories:      topCategories,
		LargestTransaction: largestTransaction(txs),
	}
}

// CategoryAnalysis is the result of the get_category_analysis tool.
type CategoryAnalysis struct {
	Category            string              `json:"category"`
	Period              string              `json:"period"`
	TotalSpending       float64             `json:"total_spending"`
	TransactionCount    int                 `json:"transaction_count"`
	AverageTransaction  float64             `json:"average_transaction"`
	TopMerchants        []MerchantAggregate `json:"top_merchants"`
	LargestTransaction  *TransactionDetail  `json:"largest_transaction"`
	SmallestTransaction *TransactionDetail  `json:"smallest_transaction"`
}

// CategoryAnalysis produces a deep dive into one category for a period:
// totals, averages, and the top 5 merchants by spend.
func (e *Engine) CategoryAnalysis(ctx context.Context, userID, category, period string) *CategoryAnalysis {
	r := dateutils.ResolvePeriod(period, e.clock())
	txs := e.provider.GetTransactions(ctx, userID, records.TransactionFilter{
		StartDate: &r.Start,
		EndDate:   &r.End,
		Category:  category,
	})

	total := models.SumAmounts(txs)
	average := decimal.Zero
	if len(txs) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(txs))))
	}

	return &CategoryAnalysis{
		Category:            category,
		Period:              period,
		TotalSpending:       models.Round2(total),
		TransactionCount:    len(txs),
		AverageTransaction:  models.Round2(average),
		TopMerchants:        topMerchants(txs, 5),
		LargestTransaction:  largestTransaction(txs),
		SmallestTransaction: smallestTransaction(txs),
	}
}

// topMerchants aggregates spend per merchant and returns the top n sorted
// descending. A transaction without a merchant counts under "Unknown".
func topMerchants(txs []models.Transaction, n int) []MerchantAggregate {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range txs {
		merchant := t.Merchant
		if merchant == "" {
			merchant = "Unknown"
		}
		if _, seen := totals[merchant]; !seen {
			order = append(order, merchant)
		}
		totals[merchant] = totals[merchant].Add(t.Amount)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].GreaterThan(totals[order[j]])
	})

	if len(order) > n {
		order = order[:n]
	}
	aggregates := make([]MerchantAggregate, 0, len(order))
	for _, merchant := range order {
		aggregates = append(aggregates, MerchantAggregate{
			Merchant: merchant,
			Spent:    models.Round2(totals[merchant]),
		})
	}
	return aggregates
}

// ListFilters are the optional criteria of the get_transaction_list tool.
// MaxAmount and Merchant cannot be pushed down to the provider and are
// applied after the fetch.
type ListFilters struct {
	StartDate string
	EndDate   string
	Category  string
	Merchant  string
	MinAmount *float64
	MaxAmount *float64
	Limit     int
}

// TransactionList is the result of the get_transaction_list tool.
type TransactionList struct {
	Count        int                  `json:"count"`
	Transactions []*TransactionDetail `json:"transactions"`
}

// TransactionList searches transactions by the given filters. Never returns
// more than 100 entries regardless of the requested limit.
func (e *Engine) TransactionList(ctx context.Context, userID string, filters ListFilters) *TransactionList {
	providerFilter := records.TransactionFilter{Category: filters.Category}

	if filters.StartDate != "" {
		if start, err := dateutils.ParseDate(filters.StartDate); err == nil {
			providerFilter.StartDate = &start
		}
	}
	if filters.EndDate != "" {
		if end, err := dateutils.ParseDate(filters.EndDate); err == nil {
			providerFilter.EndDate = &end
		}
	}
	if filters.MinAmount != nil {
		min := decimal.NewFromFloat(*filters.MinAmount)
		providerFilter.MinAmount = &min
	}
	providerFilter.Limit = filters.Limit
	if providerFilter.Limit <= 0 {
		providerFilter.Limit = maxListResults
	}

	txs := e.provider.GetTransactions(ctx, userID, providerFilter)

	// Criteria the provider cannot evaluate are applied here.
	filtered := txs[:0:0]
	for _, t := range txs {
		if filters.MaxAmount != nil && t.Amount.GreaterThan(decimal.NewFromFloat(*filters.MaxAmount)) {
			continue
		}
		if filters.Merchant != "" && !strings.Contains(strings.ToLower(t.Merchant), strings.ToLower(filters.Merchant)) {
			continue
		}
		filtered = append(filtered, t)
	}

	capped := filtered
	if len(capped) > maxListResults {
		capped = capped[:maxListResults]
	}

	details := make([]*TransactionDetail, 0, len(capped))
	for _, t := range capped {
		details = append(details, toDetail(t))
	}

	return &TransactionList{
		Count:        len(filtered),
		Transactions: details,
	}
}
