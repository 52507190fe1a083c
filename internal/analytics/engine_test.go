package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/records"
)

const testUser = "user-1"

// Wednesday, 2025-06-18.
var testNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, provider records.Provider) *Engine {
	t.Helper()
	engine := NewEngine(provider, logging.NewMockLogger())
	engine.SetClock(func() time.Time { return testNow })
	return engine
}

func tx(date string, amount float64, category, merchant string) models.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Date:     d,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Merchant: merchant,
	}
}

func seedTransactions(provider *records.MemoryProvider, txs ...models.Transaction) {
	provider.Transactions[testUser] = append(provider.Transactions[testUser], txs...)
}

func requirePercentage(t *testing.T, expected, actual float64) {
	t.Helper()
	require.InDelta(t, expected, actual, 0.001)
}
