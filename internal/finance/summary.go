package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"dreamplan/internal/store"
)

// Summary holds one period's totals.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Summarize totals the transactions inside the period around the anchor.
func Summarize(s store.Store, p Period, anchor time.Time) Summary {
	sum := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range s.Transactions {
		if !InPeriod(t.Date, p, anchor) {
			continue
		}
		switch t.Type {
		case store.TxIncome:
			sum.Income = sum.Income.Add(t.Amount)
		case store.TxExpense:
			sum.Expense = sum.Expense.Add(t.Amount)
		}
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	return sum
}

// CategoryGroup is one category's slice of a period, with its full
// transaction list for the breakdown and charts.
type CategoryGroup struct {
	Category     store.Category
	Total        decimal.Decimal
	Transactions []store.Transaction
}

// uncategorized is the display fallback for a dangling categoryId; a
// deleted category is a degradation, never an error.
func uncategorized(id string) store.Category {
	return store.Category{ID: id, Name: "Uncategorized", Icon: "📦", Color: "#95A5A6"}
}

// GroupByCategory buckets one period's transactions of a type per
// category, sorted descending by total.
func GroupByCategory(s store.Store, txType store.TransactionType, p Period, anchor time.Time) []CategoryGroup {
	byCat := map[string]*CategoryGroup{}
	var order []string
	for _, t := range s.Transactions {
		if t.Type != txType || !InPeriod(t.Date, p, anchor) {
			continue
		}
		g, ok := byCat[t.CategoryID]
		if !ok {
			cat := s.CategoryByID(t.CategoryID)
			if cat == nil {
				fallback := uncategorized(t.CategoryID)
				cat = &fallback
			}
			g = &CategoryGroup{Category: *cat, Total: decimal.Zero}
			byCat[t.CategoryID] = g
			order = append(order, t.CategoryID)
		}
		g.Total = g.Total.Add(t.Amount)
		g.Transactions = append(g.Transactions, t)
	}

	out := make([]CategoryGroup, 0, len(order))
	for _, id := range order {
		out = append(out, *byCat[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}
