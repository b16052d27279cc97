package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/plan"
	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func newDreamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dream",
		Short: "Manage dreams and focus slots",
	}
	cmd.AddCommand(
		newDreamAddCmd(),
		newDreamListCmd(),
		newDreamEditCmd(),
		newDreamFocusCmd(),
		newDreamReplaceCmd(),
		newDreamLeadCmd(),
		newDreamArchiveCmd(),
		newDreamAchieveCmd(),
	)
	return cmd
}

func newDreamAddCmd() *cobra.Command {
	var description string
	var sphereID string
	var prayer bool
	var prayerText string
	var years int
	var targetDate string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a dream (or a prayer)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := plan.DreamInput{
				Type:        store.DreamTypeDream,
				Title:       args[0],
				Description: description,
				SphereID:    sphereID,
				PrayerText:  prayerText,
			}
			if prayer {
				in.Type = store.DreamTypePrayer
			}
			switch {
			case targetDate != "":
				in.PeriodKind = store.PeriodDate
				in.PeriodDate = targetDate
			case years > 0:
				in.PeriodKind = store.PeriodYears
				in.PeriodYears = years
			}

			var created store.Dream
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				next, d, err := plan.CreateDream(s, in, time.Now())
				created = d
				return next, err
			})
			if err != nil {
				return err
			}
			icon := ui.IconDream
			if prayer {
				icon = ui.IconPrayer
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(icon+" Added"), created.Title, ui.Muted.Render("("+created.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&sphereID, "sphere", "s", "", "Life sphere id")
	cmd.Flags().BoolVar(&prayer, "prayer", false, "Create a prayer instead of a dream")
	cmd.Flags().StringVar(&prayerText, "text", "", "Prayer text")
	cmd.Flags().IntVar(&years, "years", 0, "Horizon in years")
	cmd.Flags().StringVar(&targetDate, "by", "", "Target date (YYYY-MM-DD)")

	return cmd
}

func newDreamListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dreams in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			dreams := plan.SortDreams(s.Dreams)
			shown := 0
			for _, d := range dreams {
				if !all && d.Status != store.DreamActive {
					continue
				}
				shown++
				icon := ui.DreamIcon(d.Type == store.DreamTypePrayer, d.IsLeading, d.IsFocused)
				line := fmt.Sprintf("%s %s %s", icon, d.Title, ui.Muted.Render("("+d.ID+")"))
				if d.Status != store.DreamActive {
					line += " " + ui.StatusText(string(d.Status))
				}
				if sp := sphereName(s, d.SphereID); sp != "" {
					line += " " + ui.Dim.Render("· "+sp)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No dreams yet. Add one with `dp dream add`."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include archived and achieved dreams")

	return cmd
}

func sphereName(s store.Store, sphereID string) string {
	if sphereID == "" {
		return ""
	}
	for _, sp := range s.Spheres {
		if sp.ID == sphereID {
			return sp.Name
		}
	}
	return ""
}

func newDreamEditCmd() *cobra.Command {
	var title string
	var description string
	var sphereID string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a dream's title, description or sphere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				d := s.DreamByID(args[0])
				if d == nil {
					return s, fmt.Errorf("dream %s not found", args[0])
				}
				if cmd.Flags().Changed("title") {
					d.Title = title
				}
				if cmd.Flags().Changed("desc") {
					d.Description = description
				}
				if cmd.Flags().Changed("sphere") {
					d.SphereID = sphereID
				}
				return plan.UpdateDream(s, *d)
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
	cmd.Flags().StringVarP(&sphereID, "sphere", "s", "", "New life sphere id")

	return cmd
}

func newDreamFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus <id>",
		Short: "Toggle a dream's focus slot (max 3 in focus)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDreamOp(cmd.Context(), cmd, args[0], "Focus toggled", func(s store.Store) (store.Store, error) {
				return plan.ToggleDreamFocus(s, args[0])
			})
		},
	}
	return cmd
}

func newDreamReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <old-id> <new-id>",
		Short: "Swap a focus slot to another dream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDreamOp(cmd.Context(), cmd, args[1], "Focus replaced", func(s store.Store) (store.Store, error) {
				return plan.ReplaceFocus(s, args[0], args[1])
			})
		},
	}
	return cmd
}

func newDreamLeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead <id>",
		Short: "Make a focused dream the leading one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDreamOp(cmd.Context(), cmd, args[0], ui.IconLeading+" Leading dream set", func(s store.Store) (store.Store, error) {
				return plan.SetLeadingDream(s, args[0])
			})
		},
	}
	return cmd
}

func newDreamArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a dream (frees its focus slot)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDreamOp(cmd.Context(), cmd, args[0], "Archived", func(s store.Store) (store.Store, error) {
				return plan.ArchiveDream(s, args[0])
			})
		},
	}
	return cmd
}

func newDreamAchieveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achieve <id>",
		Short: "Mark a dream achieved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDreamOp(cmd.Context(), cmd, args[0], ui.IconTrophy+" Achieved", func(s store.Store) (store.Store, error) {
				return plan.AchieveDream(s, args[0], time.Now())
			})
		},
	}
	return cmd
}

func runDreamOp(ctx context.Context, cmd *cobra.Command, id, note string, op func(store.Store) (store.Store, error)) error {
	var title string
	err := withStore(ctx, func(s store.Store) (store.Store, error) {
		if d := s.DreamByID(id); d != nil {
			title = d.Title
		}
		return op(s)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(note+":"), title)
	return nil
}
