package root

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/agenda"
	"dreamplan/internal/plan"
	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage yearly goals and their criteria",
	}
	cmd.AddCommand(
		newGoalAddCmd(),
		newGoalListCmd(),
		newGoalShowCmd(),
		newGoalEditCmd(),
		newGoalCriteriaCmd(),
		newGoalProgressCmd(),
		newGoalArchiveCmd(),
		newGoalAchieveCmd(),
	)
	return cmd
}

func newGoalAddCmd() *cobra.Command {
	var description string
	var dreamID string
	var priority string
	var deadline string
	var reward string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal for the current year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := plan.GoalInput{
				Title:       args[0],
				Description: description,
				DreamID:     dreamID,
				Priority:    store.GoalPriority(priority),
				Deadline:    deadline,
				RewardText:  reward,
			}
			var created store.Goal
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				next, g, err := plan.CreateGoal(s, in, time.Now())
				created = g
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconGoal+" Added goal:"), created.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %d)", created.ID, created.Year)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&dreamID, "dream", "", "Dream id this goal serves")
	cmd.Flags().StringVarP(&priority, "priority", "p", "none", "Priority: none, important, strategic_focus")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reward, "reward", "", "Reward note")

	return cmd
}

func newGoalListCmd() *cobra.Command {
	var all bool
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			by := plan.SortByDeadline
			switch sortBy {
			case "dream":
				by = plan.SortByDream
			case "priority":
				by = plan.SortByPriority
			}

			shown := 0
			for _, g := range plan.SortGoals(s.Goals, by, s.Dreams) {
				if !all && g.Status != store.DreamActive {
					continue
				}
				shown++
				pct := plan.GoalProgress(g, plan.CriteriaFor(s, g.ID))
				line := fmt.Sprintf("%s %s %s %s", ui.IconGoal, g.Title, ui.ProgressBar(pct), ui.Muted.Render("("+g.ID+")"))
				if g.Priority == store.PriorityStrategicFocus {
					line = ui.IconLeading + " " + line
				}
				if g.Deadline != "" {
					if days, err := agenda.DaysUntil(g.Deadline, time.Now()); err == nil {
						line += " " + ui.Dim.Render(fmt.Sprintf("· %d day(s) left", days))
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No goals yet. Add one with `dp goal add`."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include archived and achieved goals")
	cmd.Flags().StringVar(&sortBy, "sort", "deadline", "Sort: deadline, dream, priority")

	return cmd
}

func newGoalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a goal with criteria and quarterly milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			g := s.GoalByID(args[0])
			if g == nil {
				return fmt.Errorf("goal %s not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGoal, g.Title))
			if d := s.DreamByID(g.DreamID); d != nil {
				fmt.Fprintln(out, ui.LabelValue("Dream", d.Title))
			}
			fmt.Fprintln(out, ui.LabelValue("Year", g.Year))
			fmt.Fprintln(out, ui.LabelValue("Status", ui.StatusText(string(g.Status))))

			criteria := plan.CriteriaFor(s, g.ID)
			fmt.Fprintf(out, "%s %s %d%%\n", ui.Key.Render("Progress:"), ui.ProgressBar(plan.GoalProgress(*g, criteria)), plan.GoalProgress(*g, criteria))
			for _, c := range criteria {
				switch c.Type {
				case store.CriterionNumeric:
					fmt.Fprintf(out, "  %s %s: %s / %s %s\n", ui.IconStep, c.Name,
						strconv.FormatFloat(c.ActualValue, 'f', -1, 64),
						strconv.FormatFloat(c.TargetValue, 'f', -1, 64), c.Unit)
				default:
					box := "[ ]"
					if c.IsCompleted {
						box = "[x]"
					}
					fmt.Fprintf(out, "  %s %s %s\n", ui.IconStep, box, c.Name)
				}
			}

			for _, q := range []store.Quarter{store.Q1, store.Q2, store.Q3, store.Q4} {
				if m := plan.MilestoneFor(s, g.ID, q, g.Year); m != nil {
					fmt.Fprintf(out, "%s %s %s %s\n", ui.IconFlag, ui.Key.Render(string(q)+":"), m.Title, ui.StatusText(string(m.Status)))
				}
			}
			return nil
		},
	}
}

func newGoalEditCmd() *cobra.Command {
	var title string
	var description string
	var priority string
	var deadline string
	var reward string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a goal (the year never changes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				g := s.GoalByID(args[0])
				if g == nil {
					return s, fmt.Errorf("goal %s not found", args[0])
				}
				if cmd.Flags().Changed("title") {
					g.Title = title
				}
				if cmd.Flags().Changed("desc") {
					g.Description = description
				}
				if cmd.Flags().Changed("priority") {
					p := store.GoalPriority(priority)
					if !p.IsValid() {
						return s, fmt.Errorf("invalid priority %q", priority)
					}
					g.Priority = p
				}
				if cmd.Flags().Changed("deadline") {
					g.Deadline = deadline
				}
				if cmd.Flags().Changed("reward") {
					g.RewardText = reward
				}
				return plan.UpdateGoal(s, *g)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Updated:"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "New description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")
	cmd.Flags().StringVar(&deadline, "deadline", "", "New deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reward, "reward", "", "New reward note")

	return cmd
}

func newGoalCriteriaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "criteria <goal-id> <spec>...",
		Short: "Replace a goal's achievement criteria",
		Long: `Replace the criteria set of a goal. Each spec is either
"name=target[unit]" for a numeric criterion or a bare name for a
checkbox one, e.g.:

  dp goal criteria goal_1 "books read=12" "publish the essay"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := make([]plan.CriterionInput, 0, len(args)-1)
			for _, spec := range args[1:] {
				inputs = append(inputs, parseCriterionSpec(spec))
			}
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return plan.UpdateGoalCriteria(s, args[0], inputs, time.Now())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d criterion(s) set\n", ui.Good.Render("Criteria updated:"), len(inputs))
			return nil
		},
	}
	return cmd
}

// parseCriterionSpec turns "name=12" into a numeric criterion and a bare
// name into a text one.
func parseCriterionSpec(spec string) plan.CriterionInput {
	name, raw, ok := strings.Cut(spec, "=")
	if !ok {
		return plan.CriterionInput{Type: store.CriterionText, Name: strings.TrimSpace(spec)}
	}
	raw = strings.TrimSpace(raw)
	i := 0
	for i < len(raw) && (raw[i] == '.' || (raw[i] >= '0' && raw[i] <= '9')) {
		i++
	}
	target, err := strconv.ParseFloat(raw[:i], 64)
	if err != nil {
		return plan.CriterionInput{Type: store.CriterionText, Name: strings.TrimSpace(spec)}
	}
	unit := strings.TrimSpace(raw[i:])
	return plan.CriterionInput{
		Type:        store.CriterionNumeric,
		Name:        strings.TrimSpace(name),
		TargetValue: target,
		Unit:        unit,
	}
}

func newGoalProgressCmd() *cobra.Command {
	var check bool
	var uncheck bool

	cmd := &cobra.Command{
		Use:   "progress <criterion-id> [value]",
		Short: "Record progress on a criterion",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				var cur *store.Criterion
				for i := range s.GoalCriteria {
					if s.GoalCriteria[i].ID == args[0] {
						c := s.GoalCriteria[i]
						cur = &c
					}
				}
				if cur == nil {
					return s, fmt.Errorf("criterion %s not found", args[0])
				}
				switch {
				case check:
					cur.IsCompleted = true
				case uncheck:
					cur.IsCompleted = false
				case len(args) == 2:
					v, err := strconv.ParseFloat(args[1], 64)
					if err != nil {
						return s, fmt.Errorf("invalid value: %q", args[1])
					}
					cur.ActualValue = v
				default:
					return s, fmt.Errorf("give a value, --check or --uncheck")
				}
				return plan.UpdateCriterion(s, *cur)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Progress recorded"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Mark a text criterion done")
	cmd.Flags().BoolVar(&uncheck, "uncheck", false, "Mark a text criterion not done")

	return cmd
}

func newGoalArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return plan.ArchiveGoal(s, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Archived goal:"), args[0])
			return nil
		},
	}
}

func newGoalAchieveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achieve <id>",
		Short: "Mark a goal achieved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return plan.AchieveGoal(s, args[0], time.Now())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconTrophy+" Achieved goal:"), args[0])
			return nil
		},
	}
}
