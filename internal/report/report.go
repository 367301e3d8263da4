// Package report builds the canned instruction templates behind the
// server's prompts. The functions are pure: they compute a date range
// from their parameters and a reference time, then render a fixed text
// block for an external agent to follow. They never touch the store.
package report

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// DefaultTrendMonths is the analysis window used when the caller does
// not supply one.
const DefaultTrendMonths = 3

// Monthly renders the monthly-report instructions for the given month
// and year. Empty month or year default to now. The end of the range is
// the true last day of the month, December included.
func Monthly(month, year string, now time.Time) (string, error) {
	if month == "" {
		month = strconv.Itoa(int(now.Month()))
	}
	if year == "" {
		year = strconv.Itoa(now.Year())
	}

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", fmt.Errorf("invalid month %q: must be 1-12", month)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 {
		return "", fmt.Errorf("invalid year %q", year)
	}

	startDate := fmt.Sprintf("%d-%02d-01", y, m)
	// Day zero of the next month is the last day of this one, which also
	// handles December by rolling into the next year.
	lastDay := time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	endDate := fmt.Sprintf("%d-%02d-%02d", y, m, lastDay)

	return fmt.Sprintf(`Please generate a comprehensive expense report for %s/%s.

1. First, list all expenses from %s to %s
2. Then, summarize the expenses by category
3. Calculate the total spending for the month
4. Identify the top 3 spending categories
5. Provide insights on spending patterns and recommendations for the next month

Make the report clear, formatted, and easy to understand.`,
		month, year, startDate, endDate), nil
}

// BudgetAnalysis renders the budget-analysis instructions. Missing
// bounds default to the start of the current month through today.
func BudgetAnalysis(budget float64, startDate, endDate string, now time.Time) string {
	if startDate == "" {
		startDate = fmt.Sprintf("%d-%02d-01", now.Year(), int(now.Month()))
	}
	if endDate == "" {
		endDate = now.Format(dateLayout)
	}

	b := strconv.FormatFloat(budget, 'f', -1, 64)

	return fmt.Sprintf(`Analyze my spending against my budget of $%s for the period %s to %s.

1. Get all expenses for this period
2. Calculate total spending
3. Compare against the budget of $%s
4. Show spending by category
5. Calculate percentage of budget used
6. Identify if I'm on track or over budget
7. Provide specific recommendations to stay within or get back to budget

Present the analysis with clear numbers and actionable advice.`,
		b, startDate, endDate, b)
}

// SpendingTrends renders the trend-analysis instructions over the past
// months (30-day blocks back from now). Non-positive months fall back
// to the default window; an empty category means all categories.
func SpendingTrends(category string, months int, now time.Time) string {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	startDate := now.AddDate(0, 0, -months*30).Format(dateLayout)
	endDate := now.Format(dateLayout)

	categoryText := " across all categories"
	if category != "" {
		categoryText = fmt.Sprintf(" for the '%s' category", category)
	}

	return fmt.Sprintf(`Analyze my spending trends%s over the past %d months.

1. Get expenses from %s to %s
2. Break down spending by month
3. Calculate month-over-month changes
4. Identify spending patterns (increasing, decreasing, stable)
5. Highlight any unusual spikes or drops
6. Provide insights on trends and recommendations

Present with clear month-by-month comparison.`,
		categoryText, months, startDate, endDate)
}

// QuickAdd renders the instructions for adding an expense from a
// natural-language description.
func QuickAdd(description string) string {
	return fmt.Sprintf(`Add an expense based on this description: "%s"

Please:
1. Extract the amount, category, and any other relevant details
2. Use today's date unless a different date is mentioned
3. Choose the most appropriate category from available categories
4. Add the expense
5. Confirm what was added with a summary

If anything is unclear, ask for clarification before adding.`, description)
}
