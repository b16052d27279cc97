package root

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/store"
	"dreamplan/internal/track"
	"dreamplan/internal/ui"
)

func newTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Time tracking: one running session at a time",
	}
	cmd.AddCommand(
		newTrackStartCmd(),
		newTrackSwitchCmd(),
		newTrackStopCmd(),
		newTrackDayCmd(),
		newTrackWeekCmd(),
		newTrackMonthCmd(),
		newTrackSessionCmd(),
		newTrackActivityCmd(),
	)
	return cmd
}

func newTrackStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <activity-id>",
		Short: "Start the timer on an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				s = track.EnsureDefaults(s)
				return track.StartSession(s, args[0], time.Now())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconClock+" Started:"), args[0])
			return nil
		},
	}
}

func newTrackSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <activity-id>",
		Short: "Stop the running timer and start another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				s = track.EnsureDefaults(s)
				return track.SwitchSession(s, args[0], time.Now())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconClock+" Switched to:"), args[0])
			return nil
		},
	}
}

func newTrackStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			stopped := false
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				stopped = s.RunningSession() != nil
				return track.StopSession(s, time.Now()), nil
			})
			if err != nil {
				return err
			}
			if !stopped {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No timer running."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconClock+" Stopped"))
			return nil
		},
	}
}

func newTrackDayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Minutes per activity for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			s = track.EnsureDefaults(s)

			now := time.Now()
			day := date
			if day == "" {
				day = store.DayKey(now)
			}
			if _, err := store.ParseDayKey(day); err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", day)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, "Tracked on "+day))
			for _, ad := range track.DayStats(s, day) {
				line := fmt.Sprintf("  %s %s %s", ad.Activity.Icon, ad.Activity.Name, ui.Minutes(ad.Minutes))
				if pct, ok := track.GoalProgress(ad.Activity, ad.Minutes); ok {
					line += " " + ui.ProgressBar(pct)
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, ui.LabelValue("Total", ui.Minutes(track.TotalDayMinutes(s, day))))
			if sess := s.RunningSession(); sess != nil {
				if a := s.ActivityByID(sess.ActivityID); a != nil {
					fmt.Fprintf(out, "%s %s %s\n", ui.IconClock, a.Name, ui.Gold.Render("running "+track.Elapsed(*sess, now).Round(time.Second).String()))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (defaults to today)")

	return cmd
}

func newTrackWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Minutes per day for the current week",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now()
			chart := track.WeekChart(s, now)
			start := track.WeekStart(now)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, "Week of "+store.DayKey(start)))
			max := 0
			for _, m := range chart {
				if m > max {
					max = m
				}
			}
			for i, m := range chart {
				day := start.AddDate(0, 0, i)
				bar := ""
				if max > 0 {
					bar = ui.ProgressBar(m * 100 / max)
				}
				fmt.Fprintf(out, "  %s %s %s\n", ui.Key.Render(day.Format("Mon")), bar, ui.Minutes(m))
			}
			return nil
		},
	}
}

func newTrackMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Minutes per week for the current month",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now()
			chart := track.MonthChart(s, now)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconClock, now.Format("January 2006")))
			max := 0
			for _, m := range chart {
				if m > max {
					max = m
				}
			}
			for i, m := range chart {
				bar := ""
				if max > 0 {
					bar = ui.ProgressBar(m * 100 / max)
				}
				fmt.Fprintf(out, "  %s %s %s\n", ui.Key.Render(fmt.Sprintf("Week %d", i+1)), bar, ui.Minutes(m))
			}
			return nil
		},
	}
}

func newTrackSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and correct logged sessions",
	}

	var date string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's sessions",
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
			out := cmd.OutOrStdout()
			for _, sess := range s.Sessions {
				if sess.Date != day {
					continue
				}
				name := sess.ActivityID
				if a := s.ActivityByID(sess.ActivityID); a != nil {
					name = a.Icon + " " + a.Name
				}
				line := fmt.Sprintf("  %s %s %s", ui.Key.Render(sess.StartAt.Format("15:04")), name, ui.Muted.Render("("+sess.ID+")"))
				if sess.Running() {
					line += " " + ui.Gold.Render("running")
				} else {
					line += " " + ui.Minutes(sess.DurationMinutes)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&date, "date", "", "Day (defaults to today)")

	editCmd := &cobra.Command{
		Use:   "edit <id> <start> <end>",
		Short: "Rewrite a session's bounds (RFC 3339 times)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := time.Parse(time.RFC3339, args[1])
			if err != nil {
				return fmt.Errorf("invalid start %q: %w", args[1], err)
			}
			endAt, err := time.Parse(time.RFC3339, args[2])
			if err != nil {
				return fmt.Errorf("invalid end %q: %w", args[2], err)
			}
			err = withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return track.UpdateSession(s, args[0], startAt, endAt)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Updated:"), args[0])
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a session record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return track.DeleteSession(s, args[0])
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

func newTrackActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage activities",
	}

	var icon string
	var color string
	var favorite bool
	var goalMinutes int

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := track.ActivityInput{
				Name:       args[0],
				Icon:       icon,
				Color:      color,
				IsFavorite: favorite,
				DailyGoal:  goalMinutes,
			}
			var created store.Activity
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				s = track.EnsureDefaults(s)
				next, a, err := track.SaveActivity(s, in, time.Now())
				created = a
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render("Added activity:"), created.Name, ui.Muted.Render("("+created.ID+")"))
			return nil
		},
	}
	addCmd.Flags().StringVar(&icon, "icon", "⏱️", "Icon")
	addCmd.Flags().StringVar(&color, "color", "#3498DB", "Hex color")
	addCmd.Flags().BoolVar(&favorite, "favorite", false, "Always show in day stats")
	addCmd.Flags().IntVar(&goalMinutes, "goal", 0, "Daily goal in minutes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			s = track.EnsureDefaults(s)

			for _, a := range s.Activities {
				if a.IsArchived {
					continue
				}
				line := fmt.Sprintf("%s %s %s", a.Icon, a.Name, ui.Muted.Render("("+a.ID+")"))
				if a.IsFavorite {
					line += " " + ui.Gold.Render("★")
				}
				if a.DailyGoal > 0 {
					line += " " + ui.Dim.Render("· goal "+strconv.Itoa(a.DailyGoal)+"m/day")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an activity (its sessions stay)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return track.DeleteActivity(s, args[0]), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Removed activity:"), args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd)
	return cmd
}
