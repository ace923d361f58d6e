package main

import (
	"fmt"

	"github.com/SundayYogurt/claim_service/internal/bootstrap"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/pkg/database"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func bootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the schema and seed the admin and account details, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			res, err := bootstrap.Run(cmd.Context(), db, helper.SetupAuth(bcrypt.DefaultCost), bootstrap.Seed{
				AdminEmail:    cfg.AdminEmail,
				AdminPassword: cfg.AdminPass,
			})
			if err != nil {
				return err
			}

			fmt.Printf("admin created: %t\naccount details created: %t\n", res.AdminCreated, res.AccountDetailsCreated)
			return nil
		},
	}
}
