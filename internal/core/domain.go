package core

type (
	// Expense is one ledger entry. Dates are stored as YYYY-MM-DD text and
	// compared lexicographically, so range filters only behave when callers
	// keep that format.
	Expense struct {
		ID          int64   `json:"id"`
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Subcategory string  `json:"subcategory"`
		Note        string  `json:"note"`
	}

	// ExpensePatch carries a partial update. A nil field is left untouched;
	// a non-nil field is applied even when it holds a zero value, so
	// presence is what matters, not truthiness.
	ExpensePatch struct {
		Date        *string
		Amount      *float64
		Category    *string
		Subcategory *string
		Note        *string
	}

	// CategorySummary is one row of a per-category rollup over a date range.
	CategorySummary struct {
		Category    string  `json:"category"`
		TotalAmount float64 `json:"total_amount"`
		Count       int64   `json:"count"`
	}
)

// IsEmpty reports whether the patch carries no fields at all.
func (p ExpensePatch) IsEmpty() bool {
	return p.Date == nil && p.Amount == nil && p.Category == nil &&
		p.Subcategory == nil && p.Note == nil
}
