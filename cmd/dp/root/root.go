package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dreamplan/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "dp",
	Short:         "Dreamplan, a local-first life planner",
	Long:          "Dreamplan is a local-first CLI/TUI planner: dreams, yearly goals, quarterly milestones, daily actions, time tracking and personal finance.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newDreamCmd(),
		newSphereCmd(),
		newGoalCmd(),
		newMilestoneCmd(),
		newStepCmd(),
		newActionCmd(),
		newFinanceCmd(),
		newTrackCmd(),
		newPinCmd(),
		newStatusCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
