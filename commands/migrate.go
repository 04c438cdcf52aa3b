package commands

import (
	"fmt"

	"github.com/krishkalaria12/blogly/database"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and posts tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			reset, _ := cmd.Flags().GetBool("reset")

			_, _, db, err := open()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if reset {
				if err := database.Reset(db); err != nil {
					return fmt.Errorf("failed to reset database: %w", err)
				}
				success(cmd.OutOrStdout(), "Dropped and recreated all tables")
				return nil
			}

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			success(cmd.OutOrStdout(), "Database schema is up to date")
			return nil
		},
	}

	cmd.Flags().Bool("reset", false, "Drop every table before migrating (destroys data)")

	return cmd
}
