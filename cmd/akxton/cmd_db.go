package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/config"
	"github.com/shashiranjanraj/akxton/database/seeders"
	"github.com/shashiranjanraj/akxton/pkg/database"
)

// akxton seed creates the default records (the admin account).
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = config.Load()

		ctx := cmd.Context()
		db, err := database.Connect(ctx, config.MongoURI(), config.MongoDB())
		if err != nil {
			return err
		}
		defer database.Disconnect(context.Background(), db) //nolint:errcheck

		if err := models.EnsureIndexes(ctx, db); err != nil {
			return err
		}

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, db)
	},
}
