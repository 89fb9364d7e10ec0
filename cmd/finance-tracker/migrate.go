package main

import (
	"finance-tracker-go/internal/app"
	"finance-tracker-go/pkg/logger"
	"github.com/spf13/cobra"
)

func migrateCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  `Applies the embedded SQL migrations for the configured DB_DRIVER and exits.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.Migrate(log)
		},
	}
}
