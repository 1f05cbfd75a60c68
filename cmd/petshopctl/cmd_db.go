// AngelaMos | 2026
// cmd_db.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/petshop-backend/internal/core"
	"github.com/carterperez-dev/petshop-backend/internal/seed"
	"github.com/carterperez-dev/petshop-backend/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		applied, err := core.Migrate(cmd.Context(), e.db.DB, migrations.FS)
		if err != nil {
			return err
		}

		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		}
		for _, v := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the bootstrap admin and starter catalog on an empty database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		res, err := seed.New(e.users(), e.catalog()).Run(cmd.Context(), e.cfg.Seed)
		if err != nil {
			return err
		}

		if res.Skipped {
			fmt.Fprintln(cmd.OutOrStdout(), "users already exist, nothing seeded")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"seeded admin #%d, %d products, %d services\n",
			res.AdminID, res.Products, res.Services,
		)
		if res.GeneratedPassword != "" {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"generated password for %s: %s\nchange it after first login\n",
				e.cfg.Seed.AdminEmail, res.GeneratedPassword,
			)
		}
		return nil
	},
}
