// AngelaMos | 2026
// cmd_sessions.go

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Maintain login sessions",
}

var sessionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired and revoked sessions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		retention, _ := cmd.Flags().GetDuration("retention")

		e, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		n, err := e.sessions().PruneExpired(cmd.Context(), retention)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d sessions\n", n)
		return nil
	},
}

var sessionsRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Sign a user out of every device",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, _ := cmd.Flags().GetInt64("user")

		e, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		n, err := e.sessions().RevokeAllForUser(cmd.Context(), userID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "revoked %d sessions for user #%d\n", n, userID)
		return nil
	},
}

func init() {
	sessionsPruneCmd.Flags().Duration(
		"retention",
		24*time.Hour,
		"keep rows that ended within this window",
	)

	sessionsRevokeCmd.Flags().Int64("user", 0, "user id")
	_ = sessionsRevokeCmd.MarkFlagRequired("user")

	sessionsCmd.AddCommand(sessionsPruneCmd)
	sessionsCmd.AddCommand(sessionsRevokeCmd)
}
