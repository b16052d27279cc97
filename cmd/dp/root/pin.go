package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dreamplan/internal/store"
	"dreamplan/internal/ui"
)

func newPinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Protect the board with a PIN code",
	}
	cmd.AddCommand(newPinSetCmd(), newPinClearCmd(), newPinCheckCmd())
	return cmd
}

func validPIN(pin string) error {
	if len(pin) != 4 {
		return errors.New("PIN must be 4 digits")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return errors.New("PIN must be 4 digits")
		}
	}
	return nil
}

func newPinSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <pin>",
		Short: "Set a 4-digit PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validPIN(args[0]); err != nil {
				return err
			}
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				s.PIN = args[0]
				return s, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("PIN set"))
			return nil
		},
	}
}

func newPinClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <pin>",
		Short: "Remove the PIN (requires the current one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withStore(cmd.Context(), func(s store.Store) (store.Store, error) {
				if s.PIN == "" {
					return s, errors.New("no PIN is set")
				}
				if s.PIN != args[0] {
					return s, errors.New("wrong PIN")
				}
				s.PIN = ""
				return s, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("PIN removed"))
			return nil
		},
	}
}

func newPinCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <pin>",
		Short: "Verify a PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := readStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if s.PIN == "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No PIN is set."))
				return nil
			}
			if s.PIN != args[0] {
				return errors.New("wrong PIN")
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("PIN ok"))
			return nil
		},
	}
}
