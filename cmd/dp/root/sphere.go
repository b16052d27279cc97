package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dreamplan/internal/plan"
	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func newSphereCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sphere",
		Short: "Manage life spheres",
	}
	cmd.AddCommand(newSphereListCmd(), newSphereAddCmd(), newSphereRenameCmd(), newSphereRemoveCmd())
	return cmd
}

func newSphereListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List life spheres",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			for _, sp := range s.Spheres {
				active := 0
				for _, d := range s.Dreams {
					if d.SphereID == sp.ID && d.Status == store.DreamActive {
						active++
					}
				}
				line := fmt.Sprintf("%s %s %s", sp.IconID, sp.Name, ui.Muted.Render("("+sp.ID+")"))
				if active > 0 {
					line += " " + ui.Dim.Render(fmt.Sprintf("· %d dream(s)", active))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newSphereAddCmd() *cobra.Command {
	var icon string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a life sphere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var created store.Sphere
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				next, sp, err := plan.CreateSphere(s, args[0], icon, time.Now())
				created = sp
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render("Added sphere:"), created.Name, ui.Muted.Render("("+created.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "🔷", "Sphere icon")

	return cmd
}

func newSphereRenameCmd() *cobra.Command {
	var icon string

	cmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a life sphere",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				sp := store.Sphere{ID: args[0], Name: args[1], IconID: icon}
				for _, cur := range s.Spheres {
					if cur.ID == args[0] {
						sp.IsDefault = cur.IsDefault
						sp.SortOrder = cur.SortOrder
						if icon == "" {
							sp.IconID = cur.IconID
						}
					}
				}
				return plan.UpdateSphere(s, sp)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Renamed sphere:"), args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Replace the icon too")

	return cmd
}

func newSphereRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a sphere no active dream uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				return plan.DeleteSphere(s, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Removed sphere:"), args[0])
			return nil
		},
	}
}
