// AngelaMos | 2026
// cmd_admin.go

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const adminPasswordEnv = "PETSHOP_ADMIN_PASSWORD"

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage back-office accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	Long: "Create an admin account. The password is read from " +
		adminPasswordEnv + " so it never appears in shell history.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")

		password := os.Getenv(adminPasswordEnv)
		if password == "" {
			return errors.New(adminPasswordEnv + " is not set")
		}

		e, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		admin, err := e.users().CreateAdmin(cmd.Context(), email, password, name)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created admin #%d <%s>\n", admin.ID, admin.Email)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().String("email", "", "admin email address")
	adminCreateCmd.Flags().String("name", "Admin User", "display name")
	_ = adminCreateCmd.MarkFlagRequired("email")

	adminCmd.AddCommand(adminCreateCmd)
}
