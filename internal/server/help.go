package server

const helpDocument = `# Expense Tracker Help

## Available Tools

### add_expense
Add a new expense to the tracker.
- **date**: Date in YYYY-MM-DD format
- **amount**: Amount spent (positive number)
- **category**: One of the available categories
- **subcategory** (optional): Subcategory for more detail
- **note** (optional): Additional notes

### list_expenses
List expenses within a date range.
- **start_date**: Start date (YYYY-MM-DD)
- **end_date**: End date (YYYY-MM-DD)

### summarize_expenses
Get spending summary by category.
- **start_date**: Start date (YYYY-MM-DD)
- **end_date**: End date (YYYY-MM-DD)
- **category** (optional): Filter by specific category

### delete_expense
Delete an expense by ID.
- **expense_id**: The ID of the expense to delete

### update_expense
Update an existing expense.
- **expense_id**: The ID to update
- Other fields are optional

## Available Prompts

### monthly_report
Generate a comprehensive monthly expense report.

### budget_analysis
Analyze spending against a budget.

### spending_trends
Analyze spending patterns over time.

### quick_add
Add expense from natural language.

## Example Queries

- "Add a $45.50 expense for groceries today"
- "Show me all my expenses from January"
- "What did I spend on food last month?"
- "Generate a monthly report for December 2024"
- "Am I within my $2000 budget this month?"
- "Show spending trends for the past 3 months"
`
