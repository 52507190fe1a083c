// Package analytics implements the deterministic financial analysis
// operations exposed to the assistant as tools. All computation happens over
// a read-only snapshot of the user's records; monetary values accumulate
// unrounded and are rounded to 2 decimal places only at the output boundary.
package analytics

import (
	"sort"
	"time"

	"accountanta/finassist/internal/dateutils"
	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/records"

	"github.com/shopspring/decimal"
)

// Engine performs pure analytics over one user's financial records. It holds
// no mutable state beyond its injected dependencies and is safe for
// concurrent use by independent orchestration runs.
type Engine struct {
	provider records.Provider
	log      logging.Logger
	clock    func() time.Time
}

// NewEngine creates an analytics engine over the given records provider.
func NewEngine(provider records.Provider, logger logging.Logger) *Engine {
	return &Engine{
		provider: provider,
		log:      logger,
		clock:    time.Now,
	}
}

// SetClock overrides the engine's notion of "now". Used by tests and by jobs
// that evaluate analytics at a fixed instant.
func (e *Engine) SetClock(clock func() time.Time) {
	if clock != nil {
		e.clock = clock
	}
}

// TransactionDetail is the boundary representation of a transaction, with the
// amount rounded for output.
type TransactionDetail struct {
	ID       string  `json:"id,omitempty"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Merchant string  `json:"merchant"`
}

// CategoryAggregate is the spend attributed to one category. Transactions
// without a category aggregate under the empty key rather than being dropped,
// so the per-category sums always add up to the overall total.
type CategoryAggregate struct {
	Category string  `json:"category"`
	Spent    float64 `json:"spent"`
}

// MerchantAggregate is the spend attributed to one merchant.
type MerchantAggregate struct {
	Merchant string  `json:"merchant"`
	Spent    float64 `json:"spent"`
}

func toDetail(t models.Transaction) *TransactionDetail {
	return &TransactionDetail{
		ID:       t.ID,
		Date:     dateutils.ToISODate(t.Date),
		Amount:   models.Round2(t.Amount),
		Category: t.Category,
		Merchant: t.Merchant,
	}
}

// aggregateByCategory groups transactions by category and returns the
// aggregates sorted by spend descending. Ties keep first-encountered order.
func aggregateByCategory(txs []models.Transaction) []CategoryAggregate {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range txs {
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].GreaterThan(totals[order[j]])
	})

	aggregates := make([]CategoryAggregate, 0, len(order))
	for _, category := range order {
		aggregates = append(aggregates, CategoryAggregate{
			Category: category,
			Spent:    models.Round2(totals[category]),
		})
	}
	return aggregates
}

// largestTransaction picks the transaction with the highest amount; the first
// encountered wins a tie. Returns nil for an empty set.
func largestTransaction(txs []models.Transaction) *TransactionDetail {
	var best *models.Transaction
	for i := range txs {
		if best == nil || txs[i].Amount.GreaterThan(best.Amount) {
			best = &txs[i]
		}
	}
	if best == nil {
		return nil
	}
	return toDetail(*best)
}

// smallestTransaction picks the transaction with the lowest amount; the first
// encountered wins a tie. Returns nil for an empty set.
func smallestTransaction(txs []models.Transaction) *TransactionDetail {
	var best *models.Transaction
	for i := range txs {
		if best == nil || txs[i].Amount.LessThan(best.Amount) {
			best = &txs[i]
		}
	}
	if best == nil {
		return nil
	}
	return toDetail(*best)
}

// percentageOf computes part/whole*100 rounded to 2 places, with a zero
// denominator yielding 0 rather than a division error.
func percentageOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return models.Round2(part.Div(whole).Mul(decimal.NewFromInt(100)))
}
