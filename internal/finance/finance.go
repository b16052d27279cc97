// Package finance keeps the categorized ledger, the earmarked funds with
// their allocation rules, and the calendar-period aggregates.
package finance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dreamplan/internal/store"
)

// ErrAmountNotPositive refuses transactions with a zero or negative amount.
var ErrAmountNotPositive = errors.New("amount must be positive")

// DefaultCategories are seeded the first time the finance screen is used.
func DefaultCategories() []store.Category {
	return []store.Category{
		{ID: "cat_salary", Name: "Salary", Type: store.TxIncome, Icon: "💼", Color: "#27AE60"},
		{ID: "cat_freelance", Name: "Freelance", Type: store.TxIncome, Icon: "💻", Color: "#3498DB"},
		{ID: "cat_other_income", Name: "Other income", Type: store.TxIncome, Icon: "💰", Color: "#9B59B6"},
		{ID: "cat_food", Name: "Food", Type: store.TxExpense, Icon: "🍽️", Color: "#E74C3C"},
		{ID: "cat_transport", Name: "Transport", Type: store.TxExpense, Icon: "🚗", Color: "#3498DB"},
		{ID: "cat_housing", Name: "Housing", Type: store.TxExpense, Icon: "🏠", Color: "#9B59B6"},
		{ID: "cat_entertainment", Name: "Entertainment", Type: store.TxExpense, Icon: "🎮", Color: "#E67E22"},
		{ID: "cat_other_expense", Name: "Other", Type: store.TxExpense, Icon: "📦", Color: "#95A5A6"},
	}
}

// DefaultFunds are the starter savings buckets: a 10% safety cushion and
// a fixed-amount vacation fund.
func DefaultFunds() []store.Fund {
	return []store.Fund{
		{ID: "fund_emergency", Name: "Safety cushion", Icon: "🛡️", RuleType: store.FundRulePercent, RuleValue: decimal.NewFromInt(10)},
		{ID: "fund_vacation", Name: "Vacation", Icon: "✈️", RuleType: store.FundRuleFixed, RuleValue: decimal.NewFromInt(5000)},
	}
}

// EnsureDefaults seeds categories and funds on first use. A nil category
// collection means the finance screens were never opened; an empty one
// means the user deleted everything, which is respected.
func EnsureDefaults(s store.Store) store.Store {
	if s.FinanceCategories != nil {
		return s
	}
	s.FinanceCategories = DefaultCategories()
	s.Funds = DefaultFunds()
	s.Transactions = []store.Transaction{}
	return s
}

// SaveCategory inserts or replaces a category by id.
func SaveCategory(s store.Store, c store.Category, now time.Time) (store.Store, store.Category, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return s, store.Category{}, errors.New("name is required")
	}
	if !c.Type.IsValid() {
		return s, store.Category{}, fmt.Errorf("invalid category type: %q", c.Type)
	}
	c.Name = name
	if c.ID == "" {
		c.ID = store.NewID("cat", now)
	}

	out := make([]store.Category, 0, len(s.FinanceCategories)+1)
	replaced := false
	for _, cur := range s.FinanceCategories {
		if cur.ID == c.ID {
			cur = c
			replaced = true
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, c)
	}
	s.FinanceCategories = out
	return s, c, nil
}

// DeleteCategory removes a category unconditionally. Transactions keep
// the dangling id and render as uncategorized.
func DeleteCategory(s store.Store, categoryID string) store.Store {
	out := s.FinanceCategories[:0:0]
	for _, c := range s.FinanceCategories {
		if c.ID != categoryID {
			out = append(out, c)
		}
	}
	s.FinanceCategories = out
	return s
}

type FundInput struct {
	ID        string // empty creates
	Name      string
	Icon      string
	RuleType  store.FundRule
	RuleValue decimal.Decimal
}

// SaveFund inserts or replaces a fund. The running balance survives
// edits; only the fund edit form and transaction side effects move it.
func SaveFund(s store.Store, in FundInput, now time.Time) (store.Store, store.Fund, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return s, store.Fund{}, errors.New("name is required")
	}
	if !in.RuleType.IsValid() {
		return s, store.Fund{}, fmt.Errorf("invalid fund rule: %q", in.RuleType)
	}

	f := store.Fund{
		ID:        in.ID,
		Name:      name,
		Icon:      in.Icon,
		RuleType:  in.RuleType,
		RuleValue: in.RuleValue,
		CreatedAt: now,
	}
	if f.ID == "" {
		f.ID = store.NewID("fund", now)
	}

	out := make([]store.Fund, 0, len(s.Funds)+1)
	replaced := false
	for _, cur := range s.Funds {
		if cur.ID == f.ID {
			f.Balance = cur.Balance
			f.CreatedAt = cur.CreatedAt
			cur = f
			replaced = true
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, f)
	}
	s.Funds = out
	return s, f, nil
}

// SetFundBalance overwrites a fund balance from the edit form.
func SetFundBalance(s store.Store, fundID string, balance decimal.Decimal) (store.Store, error) {
	if balance.IsNegative() {
		return s, errors.New("balance cannot be negative")
	}
	out := make([]store.Fund, len(s.Funds))
	found := false
	for i, f := range s.Funds {
		if f.ID == fundID {
			f.Balance = balance
			found = true
		}
		out[i] = f
	}
	if !found {
		return s, fmt.Errorf("fund %s not found", fundID)
	}
	s.Funds = out
	return s, nil
}

// DeleteFund removes a fund unconditionally; its balance is gone with it
// and transactions keep the dangling id.
func DeleteFund(s store.Store, fundID string) store.Store {
	out := s.Funds[:0:0]
	for _, f := range s.Funds {
		if f.ID != fundID {
			out = append(out, f)
		}
	}
	s.Funds = out
	return s
}

type TransactionInput struct {
	Type       store.TransactionType
	Amount     decimal.Decimal
	CategoryID string
	Comment    string
	Date       string // day key
	FundID     string // expenses only
}

// RecordTransaction inserts a ledger entry and applies fund side effects:
// income feeds every fund by its rule (percent of the amount, or the
// fixed value flat; choice-rule funds take nothing automatically), an
// expense with a fund debits that fund, floored at zero. Side effects run
// on insert only; UpdateTransaction deliberately re-runs nothing.
func RecordTransaction(s store.Store, in TransactionInput, now time.Time) (store.Store, store.Transaction, error) {
	if !in.Type.IsValid() {
		return s, store.Transaction{}, fmt.Errorf("invalid transaction type: %q", in.Type)
	}
	if !in.Amount.IsPositive() {
		return s, store.Transaction{}, ErrAmountNotPositive
	}
	if in.Date == "" {
		in.Date = store.DayKey(now)
	}

	t := store.Transaction{
		ID:         store.NewID("txn", now),
		Type:       in.Type,
		Amount:     in.Amount,
		CategoryID: in.CategoryID,
		Comment:    in.Comment,
		Date:       in.Date,
		CreatedAt:  now,
	}
	if t.Type == store.TxExpense {
		t.FundID = in.FundID
	}

	switch t.Type {
	case store.TxIncome:
		s.Funds = allocateIncome(s.Funds, t.Amount)
	case store.TxExpense:
		if t.FundID != "" {
			s.Funds = debitFund(s.Funds, t.FundID, t.Amount)
		}
	}

	s.Transactions = append(append([]store.Transaction{}, s.Transactions...), t)
	return s, t, nil
}

func allocateIncome(funds []store.Fund, amount decimal.Decimal) []store.Fund {
	out := make([]store.Fund, len(funds))
	for i, f := range funds {
		out[i] = f
		out[i].Balance = f.Balance.Add(Contribution(f, amount))
	}
	return out
}

// Contribution is the amount a fund takes from one income transaction.
func Contribution(f store.Fund, amount decimal.Decimal) decimal.Decimal {
	switch f.RuleType {
	case store.FundRulePercent:
		return amount.Mul(f.RuleValue).Div(decimal.NewFromInt(100))
	case store.FundRuleFixed:
		return f.RuleValue
	default: // choice: manual only
		return decimal.Zero
	}
}

func debitFund(funds []store.Fund, fundID string, amount decimal.Decimal) []store.Fund {
	out := make([]store.Fund, len(funds))
	for i, f := range funds {
		if f.ID == fundID {
			f.Balance = decimal.Max(decimal.Zero, f.Balance.Sub(amount))
		}
		out[i] = f
	}
	return out
}

// UpdateTransaction replaces the ledger entry only. Fund balances are
// not reversed or reapplied; the allocation already happened at insert.
func UpdateTransaction(s store.Store, t store.Transaction) (store.Store, error) {
	if !t.Amount.IsPositive() {
		return s, ErrAmountNotPositive
	}
	out := make([]store.Transaction, len(s.Transactions))
	found := false
	for i, cur := range s.Transactions {
		if cur.ID == t.ID {
			t.CreatedAt = cur.CreatedAt
			cur = t
			found = true
		}
		out[i] = cur
	}
	if !found {
		return s, fmt.Errorf("transaction %s not found", t.ID)
	}
	s.Transactions = out
	return s, nil
}

// DeleteTransaction removes the ledger entry. Fund balances stay put.
func DeleteTransaction(s store.Store, txnID string) (store.Store, error) {
	out := s.Transactions[:0:0]
	found := false
	for _, t := range s.Transactions {
		if t.ID == txnID {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return s, fmt.Errorf("transaction %s not found", txnID)
	}
	s.Transactions = out
	return s, nil
}

// TotalFundBalance sums every fund's running balance.
func TotalFundBalance(s store.Store) decimal.Decimal {
	total := decimal.Zero
	for _, f := range s.Funds {
		total = total.Add(f.Balance)
	}
	return total
}
