package tools

import (
	"context"
	"fmt"
	"sort"

	"accountanta/finassist/internal/analytics"
	"accountanta/finassist/internal/apperrors"
	"accountanta/finassist/internal/logging"
)

// Handler executes one tool against the analytics engine. Failures are
// reported through the error return; the dispatcher converts them into error
// payloads so a single bad call never aborts the orchestration loop.
type Handler func(ctx context.Context, userID string, args Arguments) (interface{}, error)

// Dispatcher maps tool names onto engine invocations through a static table
// built once at construction, so catalog/handler parity can be checked
// up front rather than discovered at call time.
type Dispatcher struct {
	handlers map[string]Handler
	log      logging.Logger
}

// NewDispatcher builds the dispatch table over the given engine.
func NewDispatcher(engine *analytics.Engine, logger logging.Logger) *Dispatcher {
	d := &Dispatcher{log: logger}
	d.handlers = map[string]Handler{
		ToolSpendingSummary: func(ctx context.Context, userID string, args Arguments) (interface{}, error) {
			period, ok := args.String("period")
			if !ok || period == "" {
				return nil, &apperrors.MissingArgumentError{Tool: ToolSpendingSummary, Argument: "period"}
			}
			category := args.StringOr("category", "")
			return engine.SpendingSummary(ctx, userID, period, category), nil
		},
		ToolBudgetStatus: func(ctx context.Context, userID string, _ Arguments) (interface{}, error) {
			return engine.BudgetStatus(ctx, userID), nil
		},
		ToolCategoryAnalysis: func(ctx context.Context, userID string, args Arguments) (interface{}, error) {
			category, ok := args.String("category")
			if !ok || category == "" {
				return nil, &apperrors.MissingArgumentError{Tool: ToolCategoryAnalysis, Argument: "category"}
			}
			period, ok := args.String("period")
			if !ok || period == "" {
				return nil, &apperrors.MissingArgumentError{Tool: ToolCategoryAnalysis, Argument: "period"}
			}
			return engine.CategoryAnalysis(ctx, userID, category, period), nil
		},
		ToolTransactionList: func(ctx context.Context, userID string, args Arguments) (interface{}, error) {
			filters, _ := args.Map("filters")
			return engine.TransactionList(ctx, userID, listFiltersFrom(filters)), nil
		},
		ToolSpendingTrends: func(ctx context.Context, userID string, args Arguments) (interface{}, error) {
			months, ok := args.Int("months")
			if !ok {
				months = analytics.DefaultTrendMonths
			}
			return engine.SpendingTrends(ctx, userID, months), nil
		},
		ToolComparePeriods: func(ctx context.Context, userID string, args Arguments) (interface{}, error) {
			period1, ok := args.String("period1")
			if !ok || period1 == "" {
				return nil, &apperrors.MissingArgumentError{Tool: ToolComparePeriods, Argument: "period1"}
			}
			period2, ok := args.String("period2")
			if !ok || period2 == "" {
				return nil, &apperrors.MissingArgumentError{Tool: ToolComparePeriods, Argument: "period2"}
			}
			return engine.ComparePeriods(ctx, userID, period1, period2), nil
		},
		ToolDebtStatus: func(ctx context.Context, userID string, _ Arguments) (interface{}, error) {
			return engine.DebtStatus(ctx, userID), nil
		},
		ToolSavingsProgress: func(ctx context.Context, userID string, _ Arguments) (interface{}, error) {
			return engine.SavingsProgress(ctx, userID), nil
		},
	}
	return d
}

// Dispatch executes a named tool and always produces a result payload: data
// on success, a {"error": ...} map on any failure. Unknown names and handler
// errors are isolated here so the orchestration loop keeps running.
func (d *Dispatcher) Dispatch(ctx context.Context, userID, name string, rawArgs map[string]interface{}) interface{} {
	handler, ok := d.handlers[name]
	if !ok {
		err := &apperrors.UnknownToolError{Name: name}
		d.log.WithField(logging.FieldTool, name).Warn("Model requested unknown tool")
		return errorPayload(err.Error())
	}

	result, err := handler(ctx, userID, NormalizeArguments(rawArgs))
	if err != nil {
		execErr := &apperrors.ToolExecutionError{Name: name, Err: err}
		d.log.WithError(err).WithField(logging.FieldTool, name).Error("Tool execution failed")
		return errorPayload(execErr.Error())
	}
	return result
}

// Names returns the registered tool names, sorted.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Verify checks both directions of catalog/handler parity: every declared
// tool has a handler, and every handler is declared.
func (d *Dispatcher) Verify(catalog []Declaration) error {
	declared := make(map[string]bool, len(catalog))
	for _, decl := range catalog {
		declared[decl.Name] = true
		if _, ok := d.handlers[decl.Name]; !ok {
			return fmt.Errorf("declared tool %q has no handler", decl.Name)
		}
	}
	for name := range d.handlers {
		if !declared[name] {
			return fmt.Errorf("handler %q is not declared in the catalog", name)
		}
	}
	return nil
}

func errorPayload(message string) map[string]interface{} {
	return map[string]interface{}{"error": message}
}

// listFiltersFrom converts the filters argument bag into typed list filters.
// Unparseable entries are ignored rather than failing the call.
func listFiltersFrom(args Arguments) analytics.ListFilters {
	if args == nil {
		return analytics.ListFilters{}
	}

	filters := analytics.ListFilters{
		StartDate: args.StringOr("start_date", ""),
		EndDate:   args.StringOr("end_date", ""),
		Category:  args.StringOr("category", ""),
		Merchant:  args.StringOr("merchant", ""),
	}
	if min, ok := args.Float("min_amount"); ok {
		filters.MinAmount = &min
	}
	if max, ok := args.Float("max_amount"); ok {
		filters.MaxAmount = &max
	}
	if limit, ok := args.Int("limit"); ok {
		filters.Limit = limit
	}
	return filters
}
