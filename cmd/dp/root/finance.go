package root

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"dreamplan/internal/finance"
	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func newFinanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "finance",
		Aliases: []string{"fin"},
		Short:   "Track money: transactions, categories and funds",
	}
	cmd.AddCommand(
		newFinIncomeCmd(),
		newFinExpenseCmd(),
		newFinSummaryCmd(),
		newFinTxnCmd(),
		newFinCategoryCmd(),
		newFinFundCmd(),
	)
	return cmd
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

func newFinIncomeCmd() *cobra.Command {
	var category string
	var comment string
	var date string

	cmd := &cobra.Command{
		Use:   "income <amount>",
		Short: "Record an income (feeds funds by their rules)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return recordTxn(cmd, finance.TransactionInput{
				Type:       store.TxIncome,
				Amount:     amount,
				CategoryID: category,
				Comment:    comment,
				Date:       date,
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, defaults to today)")

	return cmd
}

func newFinExpenseCmd() *cobra.Command {
	var category string
	var comment string
	var date string
	var fundID string

	cmd := &cobra.Command{
		Use:   "expense <amount>",
		Short: "Record an expense (optionally paid from a fund)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return recordTxn(cmd, finance.TransactionInput{
				Type:       store.TxExpense,
				Amount:     amount,
				CategoryID: category,
				Comment:    comment,
				Date:       date,
				FundID:     fundID,
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category id")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&fundID, "fund", "", "Debit this fund")

	return cmd
}

func recordTxn(cmd *cobra.Command, in finance.TransactionInput) error {
	var created store.Transaction
	err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
		s = finance.EnsureDefaults(s)
		next, t, err := finance.RecordTransaction(s, in, time.Now())
		created = t
		return next, err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s %s\n",
		ui.Good.Render(ui.IconWallet+" Recorded "+string(created.Type)+":"),
		created.Amount.StringFixed(2), created.Date, ui.Muted.Render("("+created.ID+")"))
	return nil
}

func newFinSummaryCmd() *cobra.Command {
	var period string
	var shift int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Income, expense and fund balances for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := finance.Period(period)
			if !p.IsValid() {
				return fmt.Errorf("invalid period %q (want month, quarter or year)", period)
			}

			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			s = finance.EnsureDefaults(s)

			anchor := finance.Navigate(p, time.Now(), shift)
			sum := finance.Summarize(s, p, anchor)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconWallet, finance.Label(p, anchor)))
			fmt.Fprintln(out, ui.LabelValue("Income", ui.Good.Render(sum.Income.StringFixed(2))))
			fmt.Fprintln(out, ui.LabelValue("Expense", ui.Bad.Render(sum.Expense.StringFixed(2))))
			fmt.Fprintln(out, ui.LabelValue("Balance", sum.Balance.StringFixed(2)))

			for _, g := range finance.GroupByCategory(s, store.TxExpense, p, anchor) {
				fmt.Fprintf(out, "  %s %s %s\n", g.Category.Icon, g.Category.Name, g.Total.StringFixed(2))
			}

			if len(s.Funds) > 0 {
				fmt.Fprintln(out, ui.Heading(ui.IconFund, "Funds"))
				for _, f := range s.Funds {
					fmt.Fprintf(out, "  %s %s %s %s\n", f.Icon, f.Name, f.Balance.StringFixed(2), ui.Dim.Render(fundRuleText(f)))
				}
				fmt.Fprintln(out, ui.LabelValue("Total saved", finance.TotalFundBalance(s).StringFixed(2)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "month", "Period: month, quarter, year")
	cmd.Flags().IntVar(&shift, "shift", 0, "Navigate periods back (-1) or forward (+1)")

	return cmd
}

func fundRuleText(f store.Fund) string {
	switch f.RuleType {
	case store.FundRulePercent:
		return "· " + f.RuleValue.String() + "% of income"
	case store.FundRuleFixed:
		return "· " + f.RuleValue.StringFixed(2) + " per income"
	default:
		return "· manual"
	}
}

func newFinTxnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txn",
		Short: "List and correct ledger entries",
	}

	var period string
	var shift int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a period's transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := finance.Period(period)
			if !p.IsValid() {
				return fmt.Errorf("invalid period %q (want month, quarter or year)", period)
			}
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			anchor := finance.Navigate(p, time.Now(), shift)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconWallet, finance.Label(p, anchor)))
			for _, t := range s.Transactions {
				if !finance.InPeriod(t.Date, p, anchor) {
					continue
				}
				sign := "+"
				style := ui.Good
				if t.Type == store.TxExpense {
					sign = "-"
					style = ui.Bad
				}
				line := fmt.Sprintf("  %s %s%s %s", ui.Key.Render(t.Date), style.Render(sign), t.Amount.StringFixed(2), ui.Muted.Render("("+t.ID+")"))
				if c := s.CategoryByID(t.CategoryID); c != nil {
					line += " " + c.Icon + " " + c.Name
				}
				if t.Comment != "" {
					line += " " + ui.Dim.Render("· "+t.Comment)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&period, "period", "p", "month", "Period: month, quarter, year")
	listCmd.Flags().IntVar(&shift, "shift", 0, "Navigate periods back (-1) or forward (+1)")

	var amount string
	var comment string
	var category string

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Correct a ledger entry (fund balances stay put)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				var cur *store.Transaction
				for i := range s.Transactions {
					if s.Transactions[i].ID == args[0] {
						t := s.Transactions[i]
						cur = &t
					}
				}
				if cur == nil {
					return s, fmt.Errorf("transaction %s not found", args[0])
				}
				if cmd.Flags().Changed("amount") {
					v, err := parseAmount(amount)
					if err != nil {
						return s, err
					}
					cur.Amount = v
				}
				if cmd.Flags().Changed("comment") {
					cur.Comment = comment
				}
				if cmd.Flags().Changed("category") {
					cur.CategoryID = category
				}
				return finance.UpdateTransaction(s, *cur)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Updated:"), args[0])
			return nil
		},
	}
	editCmd.Flags().StringVar(&amount, "amount", "", "New amount")
	editCmd.Flags().StringVarP(&comment, "comment", "m", "", "New comment")
	editCmd.Flags().StringVarP(&category, "category", "c", "", "New category id")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a ledger entry (fund balances stay put)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return finance.DeleteTransaction(s, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Removed:"), args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, editCmd, removeCmd)
	return cmd
}

func newFinCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage transaction categories",
	}

	var income bool
	var icon string
	var color string

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := store.Category{
				Name:  args[0],
				Type:  store.TxExpense,
				Icon:  icon,
				Color: color,
			}
			if income {
				c.Type = store.TxIncome
			}
			var created store.Category
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				s = finance.EnsureDefaults(s)
				next, saved, err := finance.SaveCategory(s, c, time.Now())
				created = saved
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render("Added category:"), created.Name, ui.Muted.Render("("+created.ID+")"))
			return nil
		},
	}
	addCmd.Flags().BoolVar(&income, "income", false, "Income category (expense otherwise)")
	addCmd.Flags().StringVar(&icon, "icon", "📦", "Icon")
	addCmd.Flags().StringVar(&color, "color", "#95A5A6", "Hex color")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			s = finance.EnsureDefaults(s)

			for _, c := range s.FinanceCategories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", c.Icon, c.Name, ui.Dim.Render(string(c.Type)), ui.Muted.Render("("+c.ID+")"))
			}
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a category (past transactions keep the id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				s = finance.EnsureDefaults(s)
				return finance.DeleteCategory(s, args[0]), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Removed category:"), args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd)
	return cmd
}

func newFinFundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Manage savings funds",
	}

	var icon string
	var rule string
	var value string

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleValue := decimal.Zero
			if value != "" {
				v, err := parseAmount(value)
				if err != nil {
					return err
				}
				ruleValue = v
			}
			in := finance.FundInput{
				Name:      args[0],
				Icon:      icon,
				RuleType:  store.FundRule(rule),
				RuleValue: ruleValue,
			}
			var created store.Fund
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				s = finance.EnsureDefaults(s)
				next, f, err := finance.SaveFund(s, in, time.Now())
				created = f
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconFund+" Added fund:"), created.Name, ui.Muted.Render("("+created.ID+")"))
			return nil
		},
	}
	addCmd.Flags().StringVar(&icon, "icon", "💰", "Icon")
	addCmd.Flags().StringVar(&rule, "rule", "choice", "Allocation rule: percent, fixed, choice")
	addCmd.Flags().StringVar(&value, "value", "", "Rule value (percent or fixed amount)")

	setCmd := &cobra.Command{
		Use:   "set <id> <balance>",
		Short: "Set a fund's balance by hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			err = withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return finance.SetFundBalance(s, args[0], balance)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", ui.Good.Render("Balance set:"), args[0], balance.StringFixed(2))
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return finance.DeleteFund(s, args[0]), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Removed fund:"), args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, setCmd, removeCmd)
	return cmd
}
