package records

import (
	"context"
	"os"
	"path/filepath"

	"accountanta/finassist/internal/dateutils"
	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// LocalProvider reads financial records from fixture files in a data
// directory, laid out per user: <dir>/<userID>/transactions.csv plus
// budgets.yaml, debts.yaml, and savings_goals.yaml. It backs the development
// CLI and the test suite; production deployments swap in a remote provider
// behind the same interface.
type LocalProvider struct {
	dir string
	log logging.Logger
}

// NewLocalProvider creates a provider rooted at the given data directory.
func NewLocalProvider(dir string, logger logging.Logger) *LocalProvider {
	return &LocalProvider{dir: dir, log: logger}
}

// transactionRow is the CSV row shape; dates and amounts arrive as strings
// and are converted when loading.
type transactionRow struct {
	ID       string `csv:"ID"`
	Date     string `csv:"Date"`
	Amount   string `csv:"Amount"`
	Category string `csv:"Category"`
	Merchant string `csv:"Merchant"`
}

type budgetsFile struct {
	Budgets []struct {
		Category string `yaml:"category"`
		Limit    string `yaml:"limit"`
	} `yaml:"budgets"`
}

type debtsFile struct {
	Debts []struct {
		Name           string  `yaml:"name"`
		Balance        string  `yaml:"balance"`
		MonthlyPayment string  `yaml:"monthly_payment"`
		InterestRate   float64 `yaml:"interest_rate"`
		DueDate        string  `yaml:"due_date"`
	} `yaml:"debts"`
}

type goalsFile struct {
	Goals []struct {
		Name          string `yaml:"name"`
		TargetAmount  string `yaml:"target_amount"`
		CurrentAmount string `yaml:"current_amount"`
		Deadline      string `yaml:"deadline"`
	} `yaml:"goals"`
}

// GetTransactions loads and filters the user's transactions. Missing or
// malformed files yield an empty slice, never an error.
func (p *LocalProvider) GetTransactions(_ context.Context, userID string, filter TransactionFilter) []models.Transaction {
	path := filepath.Join(p.dir, userID, "transactions.csv")
	f, err := os.Open(path)
	if err != nil {
		p.logMiss("transactions", path, err)
		return nil
	}
	defer f.Close()

	var rows []*transactionRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		p.logMiss("transactions", path, err)
		return nil
	}

	txs := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		date, err := dateutils.ParseDate(row.Date)
		if err != nil {
			p.log.WithError(err).WithField(logging.FieldUserID, userID).
				Warn("Skipping transaction with unparseable date")
			continue
		}
		txs = append(txs, models.Transaction{
			ID:       row.ID,
			Date:     date,
			Amount:   parseDecimal(row.Amount),
			Category: row.Category,
			Merchant: row.Merchant,
		})
	}

	return applyFilter(txs, filter)
}

// GetBudgets loads the user's budget limits.
func (p *LocalProvider) GetBudgets(_ context.Context, userID string) []models.Budget {
	var file budgetsFile
	if !p.loadYAML(userID, "budgets.yaml", &file) {
		return nil
	}
	budgets := make([]models.Budget, 0, len(file.Budgets))
	for _, b := range file.Budgets {
		budgets = append(budgets, models.Budget{
			Category: b.Category,
			Limit:    parseDecimal(b.Limit),
		})
	}
	return budgets
}

// GetDebts loads the user's debts.
func (p *LocalProvider) GetDebts(_ context.Context, userID string) []models.Debt {
	var file debtsFile
	if !p.loadYAML(userID, "debts.yaml", &file) {
		return nil
	}
	debts := make([]models.Debt, 0, len(file.Debts))
	for _, d := range file.Debts {
		debts = append(debts, models.Debt{
			Name:           d.Name,
			Balance:        parseDecimal(d.Balance),
			MonthlyPayment: parseDecimal(d.MonthlyPayment),
			InterestRate:   d.InterestRate,
			DueDate:        d.DueDate,
		})
	}
	return debts
}

// GetSavingsGoals loads the user's savings goals.
func (p *LocalProvider) GetSavingsGoals(_ context.Context, userID string) []models.SavingsGoal {
	var file goalsFile
	if !p.loadYAML(userID, "savings_goals.yaml", &file) {
		return nil
	}
	goals := make([]models.SavingsGoal, 0, len(file.Goals))
	for _, g := range file.Goals {
		goals = append(goals, models.SavingsGoal{
			Name:          g.Name,
			TargetAmount:  parseDecimal(g.TargetAmount),
			CurrentAmount: parseDecimal(g.CurrentAmount),
			Deadline:      g.Deadline,
		})
	}
	return goals
}

func (p *LocalProvider) loadYAML(userID, filename string, out interface{}) bool {
	path := filepath.Join(p.dir, userID, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		p.logMiss(filename, path, err)
		return false
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		p.logMiss(filename, path, err)
		return false
	}
	return true
}

func (p *LocalProvider) logMiss(kind, path string, err error) {
	p.log.WithError(err).WithFields(
		logging.Field{Key: "kind", Value: kind},
		logging.Field{Key: "path", Value: path},
	).Debug("Records fixture unavailable, treating as empty")
}

// parseDecimal converts a string amount, falling back to zero on bad input so
// absent data reads as zero rather than an error.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
