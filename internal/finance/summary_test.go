package finance

import (
	"testing"
	"time"

	"dreamplan/internal/store"
)

func recordAt(t *testing.T, s store.Store, typ store.TransactionType, amount int64, catID, date string, offset int) store.Store {
	t.Helper()
	now := testClock.Add(time.Duration(offset) * time.Second)
	s, _, err := RecordTransaction(s, TransactionInput{Type: typ, Amount: dec(amount), CategoryID: catID, Date: date}, now)
	if err != nil {
		t.Fatalf("record %s %d: %v", typ, amount, err)
	}
	return s
}

func TestSummarizeByMonth(t *testing.T) {
	s := seededStore()
	s = recordAt(t, s, store.TxIncome, 1000, "cat_salary", "2026-08-01", 0)
	s = recordAt(t, s, store.TxExpense, 300, "cat_food", "2026-08-15", 1)
	s = recordAt(t, s, store.TxExpense, 999, "cat_food", "2026-07-31", 2)

	anchor := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
	sum := Summarize(s, PeriodMonth, anchor)
	if !sum.Income.Equal(dec(1000)) || !sum.Expense.Equal(dec(300)) || !sum.Balance.Equal(dec(700)) {
		t.Fatalf("summary = %+v", sum)
	}

	// The July expense shows up one step back.
	back := Summarize(s, PeriodMonth, Navigate(PeriodMonth, anchor, -1))
	if !back.Expense.Equal(dec(999)) {
		t.Fatalf("previous month expense = %s, want 999", back.Expense)
	}
}

func TestSummarizeQuarterAndYear(t *testing.T) {
	s := seededStore()
	s = recordAt(t, s, store.TxIncome, 100, "cat_salary", "2026-07-01", 0)
	s = recordAt(t, s, store.TxIncome, 200, "cat_salary", "2026-09-30", 1)
	s = recordAt(t, s, store.TxIncome, 400, "cat_salary", "2026-10-01", 2)

	anchor := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	if sum := Summarize(s, PeriodQuarter, anchor); !sum.Income.Equal(dec(300)) {
		t.Fatalf("Q3 income = %s, want 300", sum.Income)
	}
	if sum := Summarize(s, PeriodYear, anchor); !sum.Income.Equal(dec(700)) {
		t.Fatalf("year income = %s, want 700", sum.Income)
	}
}

func TestNavigateRoundTrips(t *testing.T) {
	for _, day := range []int{15, 29, 30, 31} {
		anchor := time.Date(2026, 1, day, 0, 0, 0, 0, time.Local)
		for _, p := range []Period{PeriodMonth, PeriodQuarter, PeriodYear} {
			back := Navigate(p, Navigate(p, anchor, 1), -1)
			if back.Month() != anchor.Month() || back.Year() != anchor.Year() {
				t.Fatalf("%s from day %d: +1 then -1 landed in %s %d", p, day, back.Month(), back.Year())
			}
		}
	}

	anchor := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	if got := Navigate(PeriodMonth, anchor, -1).Month(); got != time.July {
		t.Fatalf("month -1 = %s, want July", got)
	}
	if got := Navigate(PeriodQuarter, anchor, 1).Month(); got != time.November {
		t.Fatalf("quarter +1 = %s, want November", got)
	}
	// Jan 31 has no counterpart in February; the step still lands there.
	if got := Navigate(PeriodMonth, time.Date(2026, 1, 31, 0, 0, 0, 0, time.Local), 1).Month(); got != time.February {
		t.Fatalf("month +1 from Jan 31 = %s, want February", got)
	}
}

func TestLabel(t *testing.T) {
	anchor := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)
	if got := Label(PeriodMonth, anchor); got != "August 2026" {
		t.Fatalf("month label = %q", got)
	}
	if got := Label(PeriodQuarter, anchor); got != "Q3 2026" {
		t.Fatalf("quarter label = %q", got)
	}
	if got := Label(PeriodYear, anchor); got != "2026" {
		t.Fatalf("year label = %q", got)
	}
}

func TestGroupByCategorySortsAndFallsBack(t *testing.T) {
	s := seededStore()
	s = recordAt(t, s, store.TxExpense, 50, "cat_food", "2026-08-01", 0)
	s = recordAt(t, s, store.TxExpense, 70, "cat_food", "2026-08-02", 1)
	s = recordAt(t, s, store.TxExpense, 200, "cat_transport", "2026-08-03", 2)
	s = recordAt(t, s, store.TxExpense, 10, "cat_gone", "2026-08-04", 3)
	s = recordAt(t, s, store.TxIncome, 9999, "cat_salary", "2026-08-05", 4)

	anchor := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
	groups := GroupByCategory(s, store.TxExpense, PeriodMonth, anchor)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	if groups[0].Category.ID != "cat_transport" || !groups[0].Total.Equal(dec(200)) {
		t.Fatalf("biggest group wrong: %+v", groups[0])
	}
	if groups[1].Category.ID != "cat_food" || !groups[1].Total.Equal(dec(120)) || len(groups[1].Transactions) != 2 {
		t.Fatalf("food group wrong: %+v", groups[1])
	}
	if groups[2].Category.Name != "Uncategorized" || groups[2].Category.ID != "cat_gone" {
		t.Fatalf("dangling category did not fall back: %+v", groups[2].Category)
	}
}
