package root

import (
	"github.com/spf13/cobra"

	"dreamplan/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive day board",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := openGateway(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.RunBoard(cmd.Context(), gw, cmd.OutOrStdout())
		},
	}
}
