package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/agenda"
	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func newActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "action",
		Aliases: []string{"todo"},
		Short:   "Manage day-plan actions",
	}
	cmd.AddCommand(
		newActionAddCmd(),
		newActionDayCmd(),
		newActionEditCmd(),
		newActionDoneCmd(),
		newActionCancelCmd(),
		newActionRemoveCmd(),
		newActionSubtaskCmd(),
	)
	return cmd
}

func newActionAddCmd() *cobra.Command {
	var description string
	var date string
	var at string
	var deadline string
	var priority string
	var strength string
	var stepID string
	var repeat string
	var interval int
	var subtasks []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an action (no date puts it in the backlog)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := agenda.ActionInput{
				Title:          args[0],
				Description:    description,
				Date:           date,
				Time:           at,
				Deadline:       deadline,
				Priority:       store.ActionPriority(priority),
				Strength:       store.ActionStrength(strength),
				StepID:         stepID,
				RepeatType:     store.RepeatType(repeat),
				RepeatInterval: interval,
				Subtasks:       subtasks,
			}
			var created store.Action
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				next, a, err := agenda.CreateAction(s, in, time.Now())
				created = a
				return next, err
			})
			if err != nil {
				return err
			}
			where := "backlog"
			if created.Date != "" {
				where = created.Date
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconAction+" Added:"), created.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %s)", created.ID, where)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD); empty for the backlog")
	cmd.Flags().StringVar(&at, "at", "", "Time of day (HH:MM)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: can_wait, not_important, important, critical, urgent")
	cmd.Flags().StringVar(&strength, "strength", "", "Strength: positive, neutral, negative")
	cmd.Flags().StringVar(&stepID, "step", "", "Monthly step this action serves")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Repeat: none, daily, weekly, monthly, weekdays, custom")
	cmd.Flags().IntVar(&interval, "every", 0, "Custom repeat interval in days")
	cmd.Flags().StringArrayVar(&subtasks, "sub", nil, "Subtask title (repeatable)")

	return cmd
}

func newActionDayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show the plan for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			day := date
			if day == "" {
				day = store.DayKey(time.Now())
			}
			if _, err := store.ParseDayKey(day); err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", day)
			}

			p := agenda.PlanFor(s, day)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconAction, "Plan for "+day))
			for _, a := range p.Timed {
				fmt.Fprintln(out, "  "+actionLine(a, false))
			}
			for _, a := range p.Untimed {
				fmt.Fprintln(out, "  "+actionLine(a, false))
			}
			for _, a := range p.Done {
				fmt.Fprintln(out, "  "+actionLine(a, true))
			}
			if len(p.Timed)+len(p.Untimed)+len(p.Done) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  Nothing planned."))
			}
			if n := len(p.Undated); n > 0 {
				fmt.Fprintln(out, ui.Dim.Render(fmt.Sprintf("  + %d in the backlog", n)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (defaults to today)")

	return cmd
}

func actionLine(a store.Action, done bool) string {
	box := "[ ]"
	if done {
		box = "[x]"
	}
	line := box
	if a.Time != "" {
		line += " " + ui.Key.Render(a.Time)
	}
	title := a.Title
	if done {
		title = ui.Muted.Render(title)
	}
	line += " " + title
	if n := len(a.Subtasks); n > 0 {
		doneSubs := 0
		for _, sub := range a.Subtasks {
			if sub.IsCompleted {
				doneSubs++
			}
		}
		line += " " + ui.Dim.Render(fmt.Sprintf("[%d/%d]", doneSubs, n))
	}
	if a.Priority == store.ActionUrgent || a.Priority == store.ActionCritical {
		line += " " + ui.Bad.Render("!")
	}
	line += " " + ui.Muted.Render("("+a.ID+")")
	return line
}

func newActionEditCmd() *cobra.Command {
	var title string
	var date string
	var at string
	var priority string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an action's title, day, time or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				a := s.ActionByID(args[0])
				if a == nil {
					return s, fmt.Errorf("action %s not found", args[0])
				}
				if cmd.Flags().Changed("title") {
					a.Title = title
				}
				if cmd.Flags().Changed("date") {
					a.Date = date
				}
				if cmd.Flags().Changed("at") {
					a.Time = at
				}
				if cmd.Flags().Changed("priority") {
					a.Priority = store.ActionPriority(priority)
				}
				return agenda.UpdateAction(s, *a, time.Now())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Updated:"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVar(&date, "date", "", "New day (empty moves it to the backlog)")
	cmd.Flags().StringVar(&at, "at", "", "New time of day (HH:MM)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")

	return cmd
}

func newActionDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return agenda.CompleteAction(s, args[0], time.Now())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Done:"), args[0])
			return nil
		},
	}
}

func newActionCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return agenda.CancelAction(s, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Cancelled:"), args[0])
			return nil
		},
	}
}

func newActionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return agenda.DeleteAction(s, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Removed:"), args[0])
			return nil
		},
	}
}

func newActionSubtaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subtask <action-id> <subtask-id>",
		Short: "Toggle a subtask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return agenda.ToggleSubtask(s, args[0], args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Subtask toggled"))
			return nil
		},
	}
}
