package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbourn/depicts-backend/internal/services"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	for _, admin := range []bool{true, false} {
		admin := admin
		use, short, done := "grant-admin <username>", "Give a user admin rights", "granted"
		if !admin {
			use, short, done = "revoke-admin <username>", "Take admin rights away", "revoked"
		}
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc := &services.UserService{DB: a.db}
				if err := svc.SetAdmin(cmd.Context(), args[0], admin); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s for %s\n", done, args[0])
				return nil
			},
		})
	}
	return cmd
}
