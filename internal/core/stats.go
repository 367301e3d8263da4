package core

// Statistics is a whole-table rollup, computed fresh on every read.
type Statistics struct {
	TotalExpenses int64          `json:"total_expenses"`
	TotalAmount   float64        `json:"total_amount"`
	DateRange     DateRange      `json:"date_range"`
	ByCategory    []CategoryStat `json:"by_category"`
}

// DateRange bounds the dates present in the ledger. Both fields are nil
// when the table is empty.
type DateRange struct {
	FirstExpense *string `json:"first_expense"`
	LastExpense  *string `json:"last_expense"`
}

// CategoryStat is one entry of the per-category breakdown.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	Total    float64 `json:"total"`
}
