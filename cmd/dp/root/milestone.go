package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/plan"
	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func newMilestoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage quarterly milestones",
	}
	cmd.AddCommand(newMilestoneAddCmd(), newMilestoneListCmd(), newMilestoneEditCmd(), newMilestonePassCmd(), newMilestoneFailCmd(), newMilestoneReopenCmd())
	return cmd
}

func parseQuarter(raw string) (store.Quarter, error) {
	q := store.Quarter(strings.ToUpper(strings.TrimSpace(raw)))
	if !q.IsValid() {
		return "", fmt.Errorf("invalid quarter %q (want Q1..Q4)", raw)
	}
	return q, nil
}

func newMilestoneAddCmd() *cobra.Command {
	var description string
	var criteria string
	var deadline string
	var year int

	cmd := &cobra.Command{
		Use:   "add <goal-id> <quarter> <title>",
		Short: "Add the milestone for a goal's quarter",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuarter(args[1])
			if err != nil {
				return err
			}
			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			in := plan.MilestoneInput{
				GoalID:      args[0],
				Quarter:     q,
				Year:        year,
				Title:       args[2],
				Description: description,
				Criteria:    criteria,
				Deadline:    deadline,
			}
			var created store.Milestone
			err = withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				next, m, err := plan.CreateMilestone(s, in, now)
				created = m
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconFlag+" Added milestone:"), created.Title,
				ui.Key.Render(fmt.Sprintf("%s %d", created.Quarter, created.Year)),
				ui.Muted.Render("("+created.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&criteria, "criteria", "", "Completion criteria note")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().IntVar(&year, "year", 0, "Year (defaults to the current one)")

	return cmd
}

func newMilestoneListCmd() *cobra.Command {
	var goalID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List milestones with their steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			shown := 0
			for _, m := range s.Milestones {
				if goalID != "" && m.GoalID != goalID {
					continue
				}
				shown++
				line := fmt.Sprintf("%s %s %s %s %s", ui.IconFlag,
					ui.Key.Render(fmt.Sprintf("%s %d", m.Quarter, m.Year)),
					m.Title, ui.StatusText(string(m.Status)), ui.Muted.Render("("+m.ID+")"))
				if g := s.GoalByID(m.GoalID); g != nil {
					line += " " + ui.Dim.Render("· "+g.Title)
				}
				fmt.Fprintln(out, line)
				for _, st := range plan.StepsFor(s, m.ID) {
					box := "[ ]"
					switch st.Status {
					case store.StepCompleted:
						box = "[x]"
					case store.StepFailed:
						box = "[!]"
					}
					fmt.Fprintf(out, "  %s %s %s %s\n", box, monthName(st.Month), st.Title, ui.Muted.Render("("+st.ID+")"))
				}
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No milestones yet. Add one with `dp milestone add`."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&goalID, "goal", "", "Only this goal's milestones")

	return cmd
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("month %d", m)
	}
	return time.Month(m).String()
}

func newMilestoneEditCmd() *cobra.Command {
	var title string
	var quarter string
	var notes string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a milestone, optionally moving it to a free quarter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				m := s.MilestoneByID(args[0])
				if m == nil {
					return s, fmt.Errorf("milestone %s not found", args[0])
				}
				if cmd.Flags().Changed("title") {
					m.Title = title
				}
				if cmd.Flags().Changed("quarter") {
					q, err := parseQuarter(quarter)
					if err != nil {
						return s, err
					}
					m.Quarter = q
				}
				if cmd.Flags().Changed("notes") {
					m.Notes = notes
				}
				return plan.UpdateMilestone(s, *m)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Updated:"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&quarter, "quarter", "q", "", "Move to this quarter (Q1..Q4)")
	cmd.Flags().StringVar(&notes, "notes", "", "Retro notes")

	return cmd
}

func newMilestonePassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <id>",
		Short: "Mark a milestone passed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setMilestoneStatus(cmd, args[0], store.MilestonePassed)
		},
	}
}

func newMilestoneFailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fail <id>",
		Short: "Mark a milestone failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setMilestoneStatus(cmd, args[0], store.MilestoneFailed)
		},
	}
}

func newMilestoneReopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id>",
		Short: "Put a milestone back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setMilestoneStatus(cmd, args[0], store.MilestonePending)
		},
	}
}

func setMilestoneStatus(cmd *cobra.Command, id string, status store.MilestoneStatus) error {
	err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
		return plan.SetMilestoneStatus(s, id, status)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Milestone "+string(status)+":"), id)
	return nil
}
