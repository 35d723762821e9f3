package tokenizer

import (
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "one character rounds down", input: "a", expected: 0},
		{name: "half rounds up", input: "ab", expected: 1},
		{name: "three characters", input: "abc", expected: 1},
		{name: "four characters", input: "abcd", expected: 1},
		{name: "eight characters", input: "abcdefgh", expected: 2},
		{name: "ten characters", input: strings.Repeat("x", 10), expected: 3},
		{name: "counts runes not bytes", input: "äöüß", expected: 1},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := Estimate(testCase.input); actual != testCase.expected {
				t.Fatalf("expected %d tokens for %q, got %d", testCase.expected, testCase.input, actual)
			}
		})
	}
}

func TestEstimateDependsOnlyOnLength(t *testing.T) {
	first := Estimate("function main() {}")
	second := Estimate(strings.Repeat("z", len("function main() {}")))
	if first != second {
		t.Fatalf("expected equal estimates for equal lengths, got %d and %d", first, second)
	}
}

func TestBudgetStopsBeforeExceedingLimit(t *testing.T) {
	budget := NewBudget(25)
	costs := []int{10, 10, 10, 10}
	admitted := 0
	for _, cost := range costs {
		if !budget.Fits(cost) {
			break
		}
		budget.Admit(cost)
		admitted++
	}
	if admitted != 2 {
		t.Fatalf("expected 2 admitted entries, got %d", admitted)
	}
	if budget.Used() != 20 {
		t.Fatalf("expected 20 used tokens, got %d", budget.Used())
	}
}

func TestBudgetUnlimited(t *testing.T) {
	for _, limit := range []int{0, -5} {
		budget := NewBudget(limit)
		budget.Admit(1 << 20)
		if !budget.Fits(1 << 20) {
			t.Fatalf("limit %d: expected unlimited budget to accept any cost", limit)
		}
		if budget.Limit() != 0 {
			t.Fatalf("limit %d: expected reported limit 0, got %d", limit, budget.Limit())
		}
	}
}

func TestBudgetExactFit(t *testing.T) {
	budget := NewBudget(20)
	budget.Admit(10)
	if !budget.Fits(10) {
		t.Fatalf("expected cost reaching the limit exactly to fit")
	}
	if budget.Fits(11) {
		t.Fatalf("expected cost exceeding the limit to be rejected")
	}
}
