package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/fieldlog/internal/keyring"
	"github.com/spf13/cobra"
)

func newDSNCmd(app *App, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dsn",
		Short: "Store the PostgreSQL connection string in the OS keyring",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set DSN",
			Short: "Save the connection string",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := keyring.SetConnectionString(args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Connection string saved to the keyring.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the saved connection string",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := confirm(app, g, "Remove the saved connection string?", ""); err != nil {
					return err
				}
				err := keyring.DeleteConnectionString()
				if errors.Is(err, keyring.ErrNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "No connection string was saved.")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Connection string removed.")
				return nil
			},
		},
	)
	return cmd
}
