package tools

// Tool names. The dispatcher's handler table and the catalog below must
// cover exactly this set; Dispatcher.Verify enforces the parity.
const (
	ToolSpendingSummary  = "get_spending_summary"
	ToolBudgetStatus     = "get_budget_status"
	ToolCategoryAnalysis = "get_category_analysis"
	ToolTransactionList  = "get_transaction_list"
	ToolSpendingTrends   = "get_spending_trends"
	ToolComparePeriods   = "compare_periods"
	ToolDebtStatus       = "get_debt_status"
	ToolSavingsProgress  = "get_savings_progress"
)

const periodDescription = "Time period: 'today', 'yesterday', 'this week', 'last week', " +
	"'this month', 'last month', 'this year', or custom 'YYYY-MM-DD to YYYY-MM-DD'"

// Catalog returns the static declarations advertised to the language model.
// The slice is rebuilt on each call so callers cannot mutate shared state.
func Catalog() []Declaration {
	return []Declaration{
		{
			Name: ToolSpendingSummary,
			Description: "Get total spending for a specified period with breakdown by category. " +
				"Use this when user asks about how much they spent.",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"period":   {Type: TypeString, Description: periodDescription},
					"category": {Type: TypeString, Description: "Optional: Filter by specific category (e.g., 'Dining', 'Transportation')"},
				},
				Required: []string{"period"},
			},
		},
		{
			Name: ToolBudgetStatus,
			Description: "Get current budget status showing how much has been spent vs budget limits " +
				"for each category. Use when user asks about budget status or if they're on track.",
			Parameters: &Schema{Type: TypeObject},
		},
		{
			Name:        ToolCategoryAnalysis,
			Description: "Deep dive into spending for a specific category, including top merchants and transaction patterns.",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"category": {Type: TypeString, Description: "Category name to analyze"},
					"period":   {Type: TypeString, Description: "Time period to analyze"},
				},
				Required: []string{"category", "period"},
			},
		},
		{
			Name:        ToolTransactionList,
			Description: "Search and filter transactions by various criteria. Use when user wants to find specific transactions.",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"filters": {
						Type: TypeObject,
						Properties: map[string]*Schema{
							"start_date": {Type: TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: TypeString, Description: "End date (YYYY-MM-DD)"},
							"category":   {Type: TypeString, Description: "Category filter"},
							"merchant":   {Type: TypeString, Description: "Merchant name filter"},
							"min_amount": {Type: TypeNumber, Description: "Minimum amount"},
							"max_amount": {Type: TypeNumber, Description: "Maximum amount"},
							"limit":      {Type: TypeInteger, Description: "Max results (default 100)"},
						},
					},
				},
			},
		},
		{
			Name:        ToolSpendingTrends,
			Description: "Analyze spending patterns over multiple months to identify trends.",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"months": {Type: TypeInteger, Description: "Number of months to analyze (default 6)"},
				},
			},
		},
		{
			Name:        ToolComparePeriods,
			Description: "Compare spending between two time periods.",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"period1": {Type: TypeString, Description: "First period to compare"},
					"period2": {Type: TypeString, Description: "Second period to compare"},
				},
				Required: []string{"period1", "period2"},
			},
		},
		{
			Name:        ToolDebtStatus,
			Description: "Get information about user's debts, balances, and payment schedules.",
			Parameters:  &Schema{Type: TypeObject},
		},
		{
			Name:        ToolSavingsProgress,
			Description: "Check progress toward savings goals.",
			Parameters:  &Schema{Type: TypeObject},
		},
	}
}
