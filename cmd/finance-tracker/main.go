package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"finance-tracker-go/pkg/logger"
	"github.com/spf13/cobra"
)

func rootCmd(log logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "finance-tracker",
		Short:         "Personal finance tracker API",
		Long:          `Serves the finance tracker HTTP API: expenses, incomes, categories, budgets and the dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), log)
		},
	}

	cmd.AddCommand(serveCmd(log))
	cmd.AddCommand(migrateCmd(log))

	return cmd
}

func main() {
	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd(log).ExecuteContext(ctx)
	stop()

	if err != nil {
		log.Critical("app: exited with error", "err", err)
		os.Exit(1)
	}
}
