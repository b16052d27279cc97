package finance

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dreamplan/internal/store"
)

var testClock = time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

func seededStore() store.Store {
	return EnsureDefaults(store.Default())
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func fundBalance(t *testing.T, s store.Store, fundID string) decimal.Decimal {
	t.Helper()
	f := s.FundByID(fundID)
	if f == nil {
		t.Fatalf("fund %s not found", fundID)
	}
	return f.Balance
}

func TestEnsureDefaultsSeedsOnce(t *testing.T) {
	s := seededStore()
	if len(s.FinanceCategories) == 0 || len(s.Funds) != 2 {
		t.Fatalf("defaults missing: %d categories, %d funds", len(s.FinanceCategories), len(s.Funds))
	}
	if s.Transactions == nil {
		t.Fatal("transactions must be initialized with the seed")
	}

	// An emptied-by-the-user collection stays empty.
	s.FinanceCategories = []store.Category{}
	s = EnsureDefaults(s)
	if len(s.FinanceCategories) != 0 {
		t.Fatal("reseeded over a deliberately emptied collection")
	}
}

func TestIncomeFeedsFundsByRule(t *testing.T) {
	s := seededStore()
	s, _, err := SaveFund(s, FundInput{Name: "Whatever", Icon: "🎁", RuleType: store.FundRuleChoice}, testClock)
	if err != nil {
		t.Fatalf("add choice fund: %v", err)
	}
	choiceID := s.Funds[2].ID

	s, _, err = RecordTransaction(s, TransactionInput{Type: store.TxIncome, Amount: dec(1000), CategoryID: "cat_salary"}, testClock)
	if err != nil {
		t.Fatalf("record income: %v", err)
	}

	// 10% of 1000 for the percent rule, the flat 5000 for the fixed one,
	// nothing for choice.
	if got := fundBalance(t, s, "fund_emergency"); !got.Equal(dec(100)) {
		t.Fatalf("emergency = %s, want 100", got)
	}
	if got := fundBalance(t, s, "fund_vacation"); !got.Equal(dec(5000)) {
		t.Fatalf("vacation = %s, want 5000", got)
	}
	if got := fundBalance(t, s, choiceID); !got.Equal(decimal.Zero) {
		t.Fatalf("choice fund = %s, want 0", got)
	}
}

func TestExpenseDebitsFundFlooredAtZero(t *testing.T) {
	s := seededStore()
	var err error
	if s, err = SetFundBalance(s, "fund_emergency", dec(50)); err != nil {
		t.Fatalf("set balance: %v", err)
	}

	s, _, err = RecordTransaction(s, TransactionInput{
		Type: store.TxExpense, Amount: dec(80), CategoryID: "cat_food", FundID: "fund_emergency",
	}, testClock)
	if err != nil {
		t.Fatalf("record expense: %v", err)
	}
	if got := fundBalance(t, s, "fund_emergency"); !got.Equal(decimal.Zero) {
		t.Fatalf("balance = %s, want 0 (floored)", got)
	}

	// An expense without a fund touches no balances.
	before := TotalFundBalance(s)
	s, _, err = RecordTransaction(s, TransactionInput{Type: store.TxExpense, Amount: dec(30), CategoryID: "cat_food"}, testClock.Add(time.Second))
	if err != nil {
		t.Fatalf("record plain expense: %v", err)
	}
	if got := TotalFundBalance(s); !got.Equal(before) {
		t.Fatalf("balances moved: %s -> %s", before, got)
	}
}

func TestRecordTransactionValidation(t *testing.T) {
	s := seededStore()
	if _, _, err := RecordTransaction(s, TransactionInput{Type: store.TxIncome, Amount: dec(0)}, testClock); !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("zero amount: got %v", err)
	}
	if _, _, err := RecordTransaction(s, TransactionInput{Type: store.TxIncome, Amount: dec(-5)}, testClock); !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("negative amount: got %v", err)
	}
	if _, _, err := RecordTransaction(s, TransactionInput{Type: "transfer", Amount: dec(5)}, testClock); err == nil {
		t.Fatal("invalid type must be refused")
	}

	// Date defaults to the wall-clock day.
	s, txn, err := RecordTransaction(s, TransactionInput{Type: store.TxIncome, Amount: dec(5)}, testClock)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if txn.Date != store.DayKey(testClock) {
		t.Fatalf("date = %q, want today", txn.Date)
	}
	_ = s
}

func TestUpdateTransactionLeavesFundsAlone(t *testing.T) {
	s := seededStore()
	s, txn, err := RecordTransaction(s, TransactionInput{Type: store.TxIncome, Amount: dec(1000), CategoryID: "cat_salary"}, testClock)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	before := TotalFundBalance(s)

	txn.Amount = dec(2000)
	txn.Comment = "corrected"
	s, err = UpdateTransaction(s, txn)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := TotalFundBalance(s); !got.Equal(before) {
		t.Fatalf("editing re-ran allocation: %s -> %s", before, got)
	}
	if got := s.Transactions[0]; !got.Amount.Equal(dec(2000)) || got.Comment != "corrected" {
		t.Fatalf("ledger not updated: %+v", got)
	}

	s, err = DeleteTransaction(s, txn.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := TotalFundBalance(s); !got.Equal(before) {
		t.Fatalf("deleting reversed allocation: %s -> %s", before, got)
	}
	if len(s.Transactions) != 0 {
		t.Fatal("ledger entry not removed")
	}
}

func TestSaveFundKeepsBalanceOnEdit(t *testing.T) {
	s := seededStore()
	var err error
	if s, err = SetFundBalance(s, "fund_vacation", dec(700)); err != nil {
		t.Fatalf("set balance: %v", err)
	}

	s, f, err := SaveFund(s, FundInput{ID: "fund_vacation", Name: "Big trip", Icon: "✈️", RuleType: store.FundRuleFixed, RuleValue: dec(6000)}, testClock)
	if err != nil {
		t.Fatalf("edit fund: %v", err)
	}
	if !f.Balance.Equal(dec(700)) {
		t.Fatalf("balance lost on edit: %s", f.Balance)
	}
	if f.Name != "Big trip" || !f.RuleValue.Equal(dec(6000)) {
		t.Fatalf("edit not applied: %+v", f)
	}
}

func TestSetFundBalanceRejectsNegative(t *testing.T) {
	s := seededStore()
	if _, err := SetFundBalance(s, "fund_vacation", dec(-1)); err == nil {
		t.Fatal("negative balance must be refused")
	}
}

func TestSaveAndDeleteCategory(t *testing.T) {
	s := seededStore()
	s, c, err := SaveCategory(s, store.Category{Name: "Books", Type: store.TxExpense, Icon: "📚"}, testClock)
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if s.CategoryByID(c.ID) == nil {
		t.Fatal("category not inserted")
	}

	c.Name = "Reading"
	s, c2, err := SaveCategory(s, c, testClock)
	if err != nil {
		t.Fatalf("edit category: %v", err)
	}
	if c2.ID != c.ID || s.CategoryByID(c.ID).Name != "Reading" {
		t.Fatal("edit must replace, not append")
	}

	s = DeleteCategory(s, c.ID)
	if s.CategoryByID(c.ID) != nil {
		t.Fatal("category not removed")
	}
}
