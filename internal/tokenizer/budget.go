package tokenizer

// Budget tracks the running token total of one analysis run.
// A zero or negative limit means the budget is unlimited.
type Budget struct {
	limit int
	used  int
}

// NewBudget returns an empty budget capped at limit tokens.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Fits reports whether admitting tokens more would keep the running total within the limit.
func (budget *Budget) Fits(tokens int) bool {
	if budget.limit <= 0 {
		return true
	}
	return budget.used+tokens <= budget.limit
}

// Admit adds tokens to the running total.
func (budget *Budget) Admit(tokens int) {
	budget.used += tokens
}

// Used returns the running token total.
func (budget *Budget) Used() int {
	return budget.used
}

// Limit returns the configured limit, zero when unlimited.
func (budget *Budget) Limit() int {
	if budget.limit < 0 {
		return 0
	}
	return budget.limit
}
