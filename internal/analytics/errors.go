package analytics

import "fmt"

// InvalidInputError reports malformed or out-of-range request parameters.
// These are caller faults and are surfaced directly, never retried.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// InsufficientDataError reports that too few historical points were available
// to fit a forecast model.
type InsufficientDataError struct {
	Points      int
	MinRequired int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d historical points, need at least %d", e.Points, e.MinRequired)
}

// EmptyPortfolioError reports that rankings were requested over an empty
// property set. KPI totals still resolve to zero in that case.
type EmptyPortfolioError struct{}

func (e *EmptyPortfolioError) Error() string {
	return "cannot rank properties: portfolio is empty"
}
