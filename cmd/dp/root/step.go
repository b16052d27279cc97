package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/plan"
	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func newStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Manage monthly steps under milestones",
	}
	cmd.AddCommand(newStepAddCmd(), newStepEditCmd(), newStepToggleCmd(), newStepFailCmd())
	return cmd
}

func newStepAddCmd() *cobra.Command {
	var description string
	var month int
	var deadline string

	cmd := &cobra.Command{
		Use:   "add <milestone-id> <title>",
		Short: "Add a step to a milestone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if month == 0 {
				month = int(now.Month())
			}
			in := plan.StepInput{
				MilestoneID: args[0],
				Title:       args[1],
				Description: description,
				Month:       month,
				Year:        now.Year(),
				Deadline:    deadline,
			}
			var created store.Step
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				next, st, err := plan.CreateStep(s, in, now)
				created = st
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconStep+" Added step:"), created.Title,
				ui.Key.Render(monthName(created.Month)), ui.Muted.Render("("+created.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (defaults to the current one)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")

	return cmd
}

func newStepEditCmd() *cobra.Command {
	var title string
	var month int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a step (the month must stay in the quarter)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				var cur *store.Step
				for i := range s.Steps {
					if s.Steps[i].ID == args[0] {
						st := s.Steps[i]
						cur = &st
					}
				}
				if cur == nil {
					return s, fmt.Errorf("step %s not found", args[0])
				}
				if cmd.Flags().Changed("title") {
					cur.Title = title
				}
				if cmd.Flags().Changed("month") {
					cur.Month = month
				}
				return plan.UpdateStep(s, *cur)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Updated:"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "New month 1-12")

	return cmd
}

func newStepToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a step between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return plan.ToggleStep(s, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Step toggled:"), args[0])
			return nil
		},
	}
}

func newStepFailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fail <id>",
		Short: "Mark a step failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return plan.SetStepStatus(s, args[0], store.StepFailed)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Step failed:"), args[0])
			return nil
		},
	}
}
