package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/agenda"
	"dreamplan/internal/finance"
	"dreamplan/internal/plan"
	"dreamplan/internal/store"
	"dreamplan/internal/track"
	"dreamplan/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "One-screen overview of the day",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now()
			day := store.DayKey(now)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, now.Format("Monday, 2 January 2006")))

			focused := plan.FocusedDreams(s)
			if len(focused) > 0 {
				for _, d := range focused {
					icon := ui.DreamIcon(d.Type == store.DreamTypePrayer, d.IsLeading, true)
					fmt.Fprintf(out, "%s %s\n", icon, d.Title)
				}
			} else {
				fmt.Fprintln(out, ui.Muted.Render("No dreams in focus."))
			}

			p := agenda.PlanFor(s, day)
			open := len(p.Timed) + len(p.Untimed)
			fmt.Fprintln(out, ui.LabelValue("Actions", fmt.Sprintf("%d open, %d done, %d in backlog", open, len(p.Done), len(p.Undated))))

			if sess := s.RunningSession(); sess != nil {
				name := sess.ActivityID
				if a := s.ActivityByID(sess.ActivityID); a != nil {
					name = a.Icon + " " + a.Name
				}
				fmt.Fprintln(out, ui.LabelValue("Timer", name+" "+ui.Gold.Render(track.Elapsed(*sess, now).Round(time.Second).String())))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Timer", ui.Muted.Render("idle")))
			}
			fmt.Fprintln(out, ui.LabelValue("Tracked today", ui.Minutes(track.TotalDayMinutes(s, day))))

			sum := finance.Summarize(s, finance.PeriodMonth, now)
			fmt.Fprintln(out, ui.LabelValue("This month", fmt.Sprintf("+%s / -%s", sum.Income.StringFixed(2), sum.Expense.StringFixed(2))))
			return nil
		},
	}
}
