package finance

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type Metrics struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// SeriesPoint is one day of the income/expense chart.
type SeriesPoint struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

func amount(t Transaction) decimal.Decimal {
	return decimal.NewFromFloat(t.Cost).Mul(decimal.NewFromFloat(t.Quantity))
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ComputeMetrics sums income and expense amounts.
func ComputeMetrics(txs []Transaction) Metrics {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case TypeIncome:
			income = income.Add(amount(t))
		case TypeExpense:
			expense = expense.Add(amount(t))
		}
	}
	return Metrics{
		Income:  cents(income),
		Expense: cents(expense),
		Balance: cents(income.Sub(expense)),
	}
}

// Series groups amounts by date, oldest first.
func Series(txs []Transaction) []SeriesPoint {
	type acc struct{ income, expense decimal.Decimal }
	byDate := map[string]*acc{}
	for _, t := range txs {
		a, ok := byDate[t.Date]
		if !ok {
			a = &acc{income: decimal.Zero, expense: decimal.Zero}
			byDate[t.Date] = a
		}
		if t.Type == TypeIncome {
			a.income = a.income.Add(amount(t))
		} else {
			a.expense = a.expense.Add(amount(t))
		}
	}

	out := make([]SeriesPoint, 0, len(byDate))
	for date, a := range byDate {
		out = append(out, SeriesPoint{Date: date, Income: cents(a.income), Expense: cents(a.expense)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Search keeps transactions whose description or category contains q,
// ignoring case. An empty q keeps everything.
func Search(txs []Transaction, q string) []Transaction {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if strings.Contains(strings.ToLower(t.Description), q) || strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, t)
		}
	}
	return out
}

// SortNewestFirst orders by date descending, keeping insertion order for ties.
func SortNewestFirst(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date > txs[j].Date })
}
